package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// HistoryProvider supplies the daily climate history signals are derived from.
type HistoryProvider interface {
	FetchDailyHistory(ctx context.Context, lat, lng float64) (DailySeries, error)
}

// DailySeries holds per-day aggregates for one location over the lookback
// window. Slices are index-aligned.
type DailySeries struct {
	Dates            []string
	TemperatureMean  []float64
	PrecipitationSum []float64
}

const (
	lookbackDays   = 90
	requestTimeout = 10 * time.Second
)

// Client fetches daily history from the Open-Meteo archive API. Responses
// are cached per rounded coordinate and concurrent fetches for the same
// coordinate share a single request.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	group   singleflight.Group
}

func NewClient(baseURL string, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		cache:   NewCache(cacheTTL),
	}
}

// Cache exposes the client's cache so maintenance jobs can sweep it.
func (c *Client) Cache() *Cache { return c.cache }

type archiveResponse struct {
	Daily struct {
		Time              []string  `json:"time"`
		Temperature2mMean []float64 `json:"temperature_2m_mean"`
		PrecipitationSum  []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// FetchDailyHistory returns the last 90 days of daily temperature means and
// precipitation sums for the coordinate.
func (c *Client) FetchDailyHistory(ctx context.Context, lat, lng float64) (DailySeries, error) {
	key := cacheKey(lat, lng)
	if series, ok := c.cache.Get(key); ok {
		log.Debug().Str("key", key).Msg("daily history served from cache")
		return series, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		series, err := c.fetch(ctx, lat, lng)
		if err != nil {
			return DailySeries{}, err
		}
		c.cache.Set(key, series)
		return series, nil
	})
	if err != nil {
		return DailySeries{}, err
	}
	return v.(DailySeries), nil
}

func (c *Client) fetch(ctx context.Context, lat, lng float64) (DailySeries, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lng))
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	q.Set("daily", "temperature_2m_mean,precipitation_sum")
	q.Set("timezone", "auto")

	endpoint := c.baseURL + "/v1/archive?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return DailySeries{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return DailySeries{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DailySeries{}, errors.New("weather archive returned status: " + resp.Status)
	}

	var payload archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return DailySeries{}, err
	}

	series := DailySeries{
		Dates:            payload.Daily.Time,
		TemperatureMean:  payload.Daily.Temperature2mMean,
		PrecipitationSum: payload.Daily.PrecipitationSum,
	}
	if err := series.validate(); err != nil {
		return DailySeries{}, err
	}

	log.Debug().
		Float64("lat", lat).
		Float64("lng", lng).
		Int("days", len(series.TemperatureMean)).
		Msg("fetched daily history")

	return series, nil
}

func (s DailySeries) validate() error {
	if len(s.TemperatureMean) < 2 || len(s.PrecipitationSum) < 2 {
		return errors.New("daily history too short to derive a signal")
	}
	if len(s.TemperatureMean) != len(s.PrecipitationSum) {
		return errors.New("daily history series lengths differ")
	}
	return nil
}

// cacheKey rounds coordinates so nearby requests share an entry.
func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.3f,%.3f", lat, lng)
}
