package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/choisw0823/callplanner/internal/llm"
	"github.com/choisw0823/callplanner/internal/observability"
	"github.com/choisw0823/callplanner/internal/planner"
	"github.com/choisw0823/callplanner/internal/store"
	"github.com/choisw0823/callplanner/internal/templates"
	"github.com/choisw0823/callplanner/pkg/config"
)

const sampleRequest = "Want to ask insurance company about my car insurance. when my insurance is expired, and I want to renew."

func main() {
	configPath := flag.String("config", "config.json", "path to the config file (JSON or YAML)")
	iterations := flag.Int("iterations", -1, "refinement iterations (-1 uses the config value)")
	flag.Parse()

	observability.PrintBanner()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	request := strings.Join(flag.Args(), " ")
	if request == "" {
		request = sampleRequest
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

	runIterations := cfg.Planner.RefinementIterations
	if *iterations >= 0 {
		runIterations = *iterations
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx, request, runIterations)
	if err != nil {
		log.Fatalf("Planning failed: %v", err)
	}

	intentJSON, _ := json.MarshalIndent(res.Intent, "", "  ")
	fmt.Println("\n[Generated Intent]")
	fmt.Println(string(intentJSON))

	planJSON, _ := json.MarshalIndent(res.Plan, "", "  ")
	fmt.Println("\n[Call Plan]")
	fmt.Println(string(planJSON))

	if err := res.Plan.Validate(); err != nil {
		log.Printf("Warning: plan failed validation: %v", err)
	}

	fmt.Println("\n[Final System Prompt]")
	fmt.Println(res.SystemPrompt)

	if bundle, err := res.Bundle(); err == nil {
		fmt.Println("\n[First Message]")
		fmt.Println(bundle.FirstMessage)
	} else {
		log.Printf("Warning: synthesis output is not a JSON envelope: %v", err)
	}

	if cfg.Memory.Path != "" {
		archive, err := store.NewArchiveStore(cfg.Memory.Path)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer archive.Close()

		compactPlan, _ := json.Marshal(res.Plan)
		compactIntent, _ := json.Marshal(res.Intent)
		if _, err := archive.SavePlan(res.RunID, request, string(compactIntent), string(compactPlan), res.SystemPrompt); err != nil {
			log.Printf("Warning: failed to archive plan: %v", err)
		}
	}
}
