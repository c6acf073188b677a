package handlers

import (
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go-scds/pipeline"
	"go-scds/types"
)

// Analyze runs the agent pipeline for a location and streams each stage's
// output as a data-only SSE frame the moment the stage lands. The final
// frame carries the synthesized strategy and impact.
func Analyze(c *gin.Context, pipe *pipeline.Pipeline) {
	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID := uuid.NewString()
	log.Info().
		Str("run_id", runID).
		Str("location", req.Location.Name).
		Msg("analysis run starting")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	writeFrame(c, types.StreamEvent{
		Role:    types.RoleSystem,
		Content: "Starting climate analysis...",
	})

	final, err := pipe.Run(c.Request.Context(), types.NewState(req), func(out types.StageOutput) {
		writeFrame(c, out.Event())
	})
	if err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("analysis run failed")
		writeFrame(c, types.StreamEvent{
			Role:    types.RoleSystem,
			Content: "Error during analysis: " + err.Error(),
			Error:   true,
			RunID:   runID,
		})
		return
	}

	writeFrame(c, types.StreamEvent{
		Role:     types.RoleSystem,
		Content:  "Analysis complete",
		Strategy: final.Strategy,
		Impact:   final.Impact,
		RunID:    runID,
	})
	log.Info().Str("run_id", runID).Msg("analysis run complete")
}

// writeFrame encodes one data-only SSE event and flushes immediately so the
// client sees stages as they finish, not when the run ends.
func writeFrame(c *gin.Context, event types.StreamEvent) {
	if err := sse.Encode(c.Writer, sse.Event{Data: event}); err != nil {
		log.Warn().Err(err).Msg("stream write failed")
		return
	}
	c.Writer.Flush()
}
