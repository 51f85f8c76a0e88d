// Package report runs the full results pipeline for one entry export: read,
// aggregate, allocate gift cards, render every artifact, then write them.
//
// Nothing is written unless every earlier step succeeds, so a failed run never
// leaves a partial set of reports behind.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/brewresults/internal/core"
	"github.com/JonMunkholm/brewresults/internal/logging"
	"github.com/JonMunkholm/brewresults/internal/render"
)

// Output file suffixes, appended to the input file's base name.
const (
	EngravingsSuffix = "_medal_engravings.txt"
	ResultsSuffix    = "_results.html"
	GiftCardsSuffix  = "_gift_cards.html"
	DebugSuffix      = "_debug_results.txt"
)

// Options configures a single run.
type Options struct {
	InputPath string
	OutputDir string // empty: alongside the input file
	Year      string // printed on engravings
	Debug     bool   // also write the YAML model dump
	Policy    core.AllocationPolicy
}

// Paths are the artifact locations for a run. Debug is empty when the dump is
// disabled.
type Paths struct {
	Engravings string
	Results    string
	GiftCards  string
	Debug      string
}

// OutputPaths derives artifact paths from the input path.
func OutputPaths(input, outputDir string, debug bool) Paths {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	p := Paths{
		Engravings: filepath.Join(dir, base+EngravingsSuffix),
		Results:    filepath.Join(dir, base+ResultsSuffix),
		GiftCards:  filepath.Join(dir, base+GiftCardsSuffix),
	}
	if debug {
		p.Debug = filepath.Join(dir, base+DebugSuffix)
	}
	return p
}

// Summary describes a completed run.
type Summary struct {
	Records       int
	Skipped       int
	Groups        int
	Placements    int
	Vendors       int
	GiftCardTotal int
	Files         []string
	Duration      time.Duration
}

// artifact is a rendered file waiting to be written.
type artifact struct {
	path string
	data []byte
}

// Run executes the pipeline described by opts.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	log := logging.WithFields(ctx, "input", opts.InputPath)

	records, stats, err := core.ReadEntriesFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	log.Info("entries read", "rows", stats.Rows, "bytes", stats.BytesRead)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("operation cancelled: %w", err)
	}

	skipped := 0
	model, err := core.Aggregate(records, core.AggregateOptions{
		OnSkip: func(rec core.EntryRecord, reason string) {
			skipped++
			log.Debug("record skipped", "line", rec.Line, "reason", reason,
				"brewer", rec.BrewerName(), "score", rec.Score)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	log.Info("results aggregated", "groups", len(model.Groups),
		"placements", model.Placements(), "skipped", skipped)

	ledger, err := core.Allocate(model, opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("allocate gift cards: %w", err)
	}
	log.Info("gift cards allocated", "vendors", len(ledger.Vendors), "total", ledger.Total())

	paths := OutputPaths(opts.InputPath, opts.OutputDir, opts.Debug)
	artifacts, err := renderAll(ctx, model, ledger, opts.Year, paths)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	if err := writeAll(opts.OutputDir, artifacts); err != nil {
		return nil, err
	}

	summary := &Summary{
		Records:       len(records),
		Skipped:       skipped,
		Groups:        len(model.Groups),
		Placements:    model.Placements(),
		Vendors:       len(ledger.Vendors),
		GiftCardTotal: ledger.Total(),
		Duration:      time.Since(start),
	}
	for _, a := range artifacts {
		summary.Files = append(summary.Files, a.path)
	}

	log.Info("reports written", "files", len(summary.Files), "duration", summary.Duration)
	return summary, nil
}

func renderAll(ctx context.Context, model *core.ResultModel, ledger *core.GiftCardLedger, year string, paths Paths) ([]artifact, error) {
	var engravings, results, giftCards bytes.Buffer

	if err := render.WriteEngravings(&engravings, model, year); err != nil {
		return nil, fmt.Errorf("engravings: %w", err)
	}
	if err := render.ResultsHTML(model).Render(ctx, &results); err != nil {
		return nil, fmt.Errorf("results html: %w", err)
	}
	if err := render.GiftCardsHTML(ledger).Render(ctx, &giftCards); err != nil {
		return nil, fmt.Errorf("gift cards html: %w", err)
	}

	out := []artifact{
		{paths.Engravings, engravings.Bytes()},
		{paths.Results, results.Bytes()},
		{paths.GiftCards, giftCards.Bytes()},
	}

	if paths.Debug != "" {
		var debug bytes.Buffer
		if err := render.WriteDebug(&debug, model); err != nil {
			return nil, fmt.Errorf("debug dump: %w", err)
		}
		out = append(out, artifact{paths.Debug, debug.Bytes()})
	}

	return out, nil
}

func writeAll(outputDir string, artifacts []artifact) error {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	for _, a := range artifacts {
		if err := os.WriteFile(a.path, a.data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(a.path), err)
		}
	}
	return nil
}
