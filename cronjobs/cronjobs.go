package cronjobs

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"go-scds/weather"
)

// Quarter-hourly keeps the coordinate cache from holding history much past
// its TTL.
const sweepSchedule = "*/15 * * * *"

// Init schedules background maintenance. The caller starts and stops the
// returned cron.
func Init(cache *weather.Cache) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(sweepSchedule, func() {
		removed := cache.Sweep()
		log.Info().
			Int("removed", removed).
			Int("remaining", cache.Len()).
			Msg("weather cache sweep")
	})
	if err != nil {
		log.Error().Err(err).Msg("error scheduling weather cache sweep")
	}

	return c
}
