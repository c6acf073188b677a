package pipeline

import (
	"context"

	"github.com/rs/zerolog/log"

	"go-scds/agronomy"
	"go-scds/economics"
	"go-scds/llm"
	"go-scds/meteorology"
	"go-scds/planner"
	"go-scds/types"
	"go-scds/weather"
)

// Stage is one agent in the fixed sequence. Analyze receives the state
// snapshot by value and returns only its delta; the pipeline does the merge,
// so a stage can never edit what an earlier stage wrote.
type Stage interface {
	Name() string
	Analyze(ctx context.Context, st types.State) (types.Update, error)
}

// Observer receives each stage's output as soon as it is merged. The SSE
// handler uses it to stream progress; nil is fine.
type Observer func(types.StageOutput)

// Pipeline runs the agents strictly in order: meteorologist, agronomist,
// economist, planner. Stage N+1 only ever sees fully merged output from
// stage N.
type Pipeline struct {
	stages []Stage
}

// New wires the standard four-stage pipeline.
func New(history weather.HistoryProvider, generator llm.Generator) *Pipeline {
	return &Pipeline{stages: []Stage{
		meteorology.NewStage(history, generator),
		agronomy.NewStage(generator),
		economics.NewStage(generator),
		planner.NewStage(),
	}}
}

// Run executes every stage in order, merging each update into the state
// before the next stage reads it. The first failing stage aborts the run;
// the returned state still holds whatever the completed stages produced.
func (p *Pipeline) Run(ctx context.Context, st types.State, observe Observer) (types.State, error) {
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		log.Info().
			Str("stage", stage.Name()).
			Str("location", st.Location.Name).
			Msg("stage starting")

		update, err := stage.Analyze(ctx, st)
		if err != nil {
			log.Error().Err(err).Str("stage", stage.Name()).Msg("stage failed")
			return st, &types.StageError{Stage: stage.Name(), Err: err}
		}

		st = st.Apply(update)
		if update.Output != nil && observe != nil {
			observe(*update.Output)
		}
		log.Info().Str("stage", stage.Name()).Msg("stage complete")
	}
	return st, nil
}
