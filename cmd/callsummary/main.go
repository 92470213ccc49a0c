package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/choisw0823/callplanner/internal/llm"
	"github.com/choisw0823/callplanner/internal/observability"
	"github.com/choisw0823/callplanner/internal/store"
	"github.com/choisw0823/callplanner/internal/summary"
	"github.com/choisw0823/callplanner/internal/templates"
	"github.com/choisw0823/callplanner/pkg/config"
)

const sampleTranscript = `Hello Tony, this is Seo calling to confirm our meeting time scheduled for 7pm.

I'm sorry, I can't go to the apartment.

I understand, Tony. Could you let me know if there's a different time that works better for you, or if there's a reason for the change? I want to make sure we have the correct details.

Because my car is broken, so can we make another appointment next week?

I see, Tony. Thank you for letting me know. I will note that your car is currently unavailable and that you'd prefer to reschedule for next week. I will verify the new appointment time and follow up with you soon. Is there anything else I can assist you with today?

Oh thank you Dan! I want you to let me know how faster when your appointment is available.

I'll make sure to check the earliest available appointment for next week and get back to you as soon as possible. If there's anything else you need, feel free to let me know.

Oh thanks! It's okay.

Thank you, Tony. I'll follow up with you soon regarding the new appointment time. Have a great day!

Tool called: end_call`

func main() {
	configPath := flag.String("config", "config.json", "path to the config file (JSON or YAML)")
	transcriptPath := flag.String("transcript", "", "path to a transcript file ('-' reads stdin; empty uses the sample)")
	flag.Parse()

	observability.PrintBanner()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	transcript := sampleTranscript
	switch *transcriptPath {
	case "":
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Failed to read stdin: %v", err)
		}
		transcript = string(data)
	default:
		data, err := os.ReadFile(*transcriptPath)
		if err != nil {
			log.Fatalf("Failed to read transcript: %v", err)
		}
		transcript = string(data)
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
	summarizer := summary.New(client, library, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cs, err := summarizer.Summarize(ctx, transcript)
	if err != nil {
		log.Fatalf("Summarization failed: %v", err)
	}

	out, _ := json.MarshalIndent(cs, "", "  ")
	fmt.Println("\n[Call Record Summary]")
	fmt.Println(string(out))

	if cfg.Memory.Path != "" {
		archive, err := store.NewArchiveStore(cfg.Memory.Path)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer archive.Close()

		compact, _ := json.Marshal(cs)
		if _, err := archive.SaveSummary(transcript, string(compact)); err != nil {
			log.Printf("Warning: failed to archive summary: %v", err)
		}
	}
}
