package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/choisw0823/callplanner/internal/gateway"
	"github.com/choisw0823/callplanner/internal/llm"
	"github.com/choisw0823/callplanner/internal/observability"
	"github.com/choisw0823/callplanner/internal/planner"
	"github.com/choisw0823/callplanner/internal/store"
	"github.com/choisw0823/callplanner/internal/summary"
	"github.com/choisw0823/callplanner/internal/templates"
	"github.com/choisw0823/callplanner/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the config file (JSON or YAML)")
	flag.Parse()

	observability.PrintBanner()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	tgCfg, ok := cfg.GetTelegramConfig()
	if !ok {
		log.Fatal("Telegram gateway is not enabled or token is missing")
	}

	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		log.Fatal("No enabled provider found in config")
	}

	client, err := llm.NewClient(pName, llm.Options{
		APIKey:      pCfg.APIKey,
		Model:       pCfg.Model,
		BaseURL:     pCfg.BaseURL,
		Temperature: pCfg.Temperature,
	})
	if err != nil {
		log.Fatal(err)
	}

	logger := observability.NewLogger()
	library := templates.NewLibrary(cfg.Planner.PromptDir)
	pipeline := planner.New(client, library, logger)
	summarizer := summary.New(client, library, logger)

	var archive *store.ArchiveStore
	if cfg.Memory.Path != "" {
		archive, err = store.NewArchiveStore(cfg.Memory.Path)
		if err != nil {
			log.Fatal(err)
		}
		defer archive.Close()
	}

	tg, err := gateway.NewTelegramGateway(tgCfg.Token, pipeline, summarizer, archive, logger, cfg.Planner.RefinementIterations)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := tg.Start(); err != nil {
			log.Printf("Gateway error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	if err := tg.Stop(); err != nil {
		log.Printf("Error stopping gateway: %v", err)
	}

	// Give a short time for final logs/syncs
	time.Sleep(500 * time.Millisecond)
	log.Println("Shutdown complete.")
}
