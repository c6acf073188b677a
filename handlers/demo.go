package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go-scds/llm"
	"go-scds/pipeline"
	"go-scds/types"
	"go-scds/weather"
)

// demoHistory serves a canned dry season so the demo needs no network.
type demoHistory struct{}

func (demoHistory) FetchDailyHistory(context.Context, float64, float64) (weather.DailySeries, error) {
	return demoSeries(), nil
}

func demoSeries() weather.DailySeries {
	var series weather.DailySeries
	day := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		rain := 0.0
		if i%6 == 0 {
			rain = 3.5
		}
		series.Dates = append(series.Dates, day.Format("2006-01-02"))
		series.TemperatureMean = append(series.TemperatureMean, 26.0+float64(i%5)*0.7)
		series.PrecipitationSum = append(series.PrecipitationSum, rain)
		day = day.AddDate(0, 0, 1)
	}
	return series
}

func demoRequest() types.AnalyzeRequest {
	return types.AnalyzeRequest{
		Location:   types.Location{Lat: -1.366, Lng: 38.016, Name: "Kitui County, Kenya"},
		RadiusKm:   50,
		Priorities: types.Priorities{Economic: 40, Environmental: 35, Social: 25},
	}
}

// Demo runs the whole pipeline offline: canned climate history and template
// narration, returned as one JSON document. Lets client work proceed with no
// API key and no upstream services.
func Demo(c *gin.Context) {
	runID := uuid.NewString()
	pipe := pipeline.New(demoHistory{}, llm.TemplateGenerator{})

	var stages []types.StageOutput
	final, err := pipe.Run(c.Request.Context(), types.NewState(demoRequest()), func(out types.StageOutput) {
		stages = append(stages, out)
	})
	if err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("demo run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":   runID,
		"location": final.Location,
		"stages":   stages,
		"strategy": final.Strategy,
		"impact":   final.Impact,
	})
}
