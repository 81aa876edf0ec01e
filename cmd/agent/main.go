package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"

	"github.com/petasbytes/wardrobe-agent/internal/catalog"
	"github.com/petasbytes/wardrobe-agent/internal/config"
	"github.com/petasbytes/wardrobe-agent/internal/logging"
	"github.com/petasbytes/wardrobe-agent/internal/provider"
	"github.com/petasbytes/wardrobe-agent/internal/runner"
	"github.com/petasbytes/wardrobe-agent/internal/telemetry"
	"github.com/petasbytes/wardrobe-agent/internal/upstream"
	"github.com/petasbytes/wardrobe-agent/internal/weather"
	"github.com/petasbytes/wardrobe-agent/tools"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config:\n%v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	fetcher := upstream.NewFetcher(upstream.NewHTTPClient(cfg.HTTPTimeout))
	events := telemetry.NewSink(cfg.EventsDir, cfg.ObserveEvents)
	defs := tools.Registry(tools.Deps{
		Weather: weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, fetcher, log),
		Catalog: catalog.NewClient(cfg.CatalogBaseURL, fetcher, cfg.DefaultMaxResults, log),
		Events:  events,
	})

	r := runner.New(provider.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL), defs)
	r.Model = anthropic.Model(cfg.Model)
	r.MaxTokens = cfg.MaxTokens
	r.Temperature = cfg.Temperature
	r.Budget = cfg.TokenBudget
	r.MaxSteps = cfg.MaxSteps
	r.Log = log.With().Str("component", "runner").Logger()
	r.Events = events

	// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	s := &session{runner: r, errOut: os.Stderr}

	if len(os.Args) > 1 {
		if err := s.send(ctx, strings.Join(os.Args[1:], " ")); err != nil {
			os.Exit(1)
		}
		return
	}
	s.loop(ctx, os.Stdin, os.Stdout)
}
