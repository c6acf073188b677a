package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"go-scds/config"
	"go-scds/cronjobs"
	"go-scds/llm"
	"go-scds/logging"
	"go-scds/pipeline"
	"go-scds/routes"
	"go-scds/weather"
)

func main() {
	// Load .env file; values already in the process environment win
	envErr := godotenv.Load()

	cfg := config.Load()
	logging.Init(cfg.Debug)
	if envErr != nil {
		log.Info().Msg("no .env file found, using process environment")
	}

	var generator llm.Generator
	if cfg.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, narrating with the template backend")
		generator = llm.TemplateGenerator{}
	} else {
		generator = llm.NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel)
	}

	client := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherCacheTTL)
	pipe := pipeline.New(client, generator)

	jobs := cronjobs.Init(client.Cache())
	jobs.Start()
	defer jobs.Stop()

	log.Info().
		Str("port", cfg.Port).
		Str("client_url", cfg.ClientURL).
		Msg("scds agent api starting")

	r := routes.SetupRouter(cfg, pipe)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
