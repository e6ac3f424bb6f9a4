// Package main analyzes a single token mint address and prints the result
// as a Markdown report or JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tokenbrain/internal/analyzer"
	"tokenbrain/internal/explain"
	"tokenbrain/internal/risk"
	"tokenbrain/internal/tokendata"
)

func main() {
	_ = godotenv.Load()

	heliusKey := flag.String("helius-api-key", os.Getenv("HELIUS_API_KEY"), "Helius API key")
	openrouterKey := flag.String("openrouter-api-key", os.Getenv("OPENROUTER_API_KEY"), "OpenRouter API key (empty = template narration)")
	useStub := flag.Bool("use-stub", false, "Use deterministic stub token data instead of Helius")
	asJSON := flag.Bool("json", false, "Print the full report as JSON instead of Markdown")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall analysis timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: analyze [flags] <mint-address>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	address := flag.Arg(0)

	if !*useStub && *heliusKey == "" {
		fmt.Fprintln(os.Stderr, "Error: --helius-api-key is required (use --use-stub for deterministic test data)")
		os.Exit(1)
	}

	var provider tokendata.Provider
	if *useStub {
		provider = tokendata.NewStubProvider()
	} else {
		provider = tokendata.NewHeliusProvider(*heliusKey)
	}

	var narrator explain.Narrator
	if *openrouterKey != "" {
		narrator = explain.NewOpenRouterNarrator(*openrouterKey)
	} else {
		narrator = explain.NewFallbackNarrator()
	}

	svc := analyzer.New(analyzer.Options{
		Provider: provider,
		Engine:   risk.NewDefaultEngine(),
		Narrator: narrator,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := svc.Analyze(ctx, address)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrInvalidAddress):
			fmt.Fprintf(os.Stderr, "Error: %q is not a valid Solana mint address\n", address)
		case errors.Is(err, tokendata.ErrUnavailable):
			fmt.Fprintln(os.Stderr, "Error: token data source unavailable, try again later")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: encode report: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(risk.RenderMarkdown(report.Token, report.Result))
	fmt.Printf("Summary: %s\n", report.Analysis.Summary)
	for _, why := range report.Analysis.Why {
		fmt.Printf("  - %s\n", why)
	}
}
