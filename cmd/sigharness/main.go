// Command sigharness loads pattern records and queries, runs cuckoo and
// Aho-Corasick scenarios over them, and writes measurement JSON to an
// output directory.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/coregx/sigharness/ahocorasick"
	"github.com/coregx/sigharness/harness"
	"github.com/coregx/sigharness/harnessconfig"
	"github.com/coregx/sigharness/ingest"
	"github.com/coregx/sigharness/pattern"
	"github.com/coregx/sigharness/runlog"
	"github.com/coregx/sigharness/statsio"
)

func main() {
	recordsPath := flag.String("records", "", "path to the NDJSON pattern records file (required)")
	queriesPath := flag.String("queries", "", "path to the JSON query file (optional)")
	outDir := flag.String("out", "out", "output directory for measurement JSON")
	numTrials := flag.Int("trials", -1, "override SIGHARNESS_NUM_TRIALS")
	flag.Parse()

	logger := runlog.New("sigharness")

	if *recordsPath == "" {
		logger.Error("missing required -records flag")
		os.Exit(2)
	}

	cfg, err := harnessconfig.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *numTrials >= 0 {
		cfg.NumTrials = *numTrials
	}

	if err := run(logger, cfg, *recordsPath, *queriesPath, *outDir); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg harnessconfig.Config, recordsPath, queriesPath, outDir string) error {
	recordsFile, err := os.Open(recordsPath)
	if err != nil {
		return fmt.Errorf("opening records file: %w", err)
	}
	defer recordsFile.Close()

	patterns, parseErrs := ingest.LoadPatternRecords(recordsFile)
	for _, e := range parseErrs {
		logger.Warn("skipped malformed pattern record", "error", e)
	}
	logger.Info("patterns loaded", "count", patterns.Len(), "skipped", len(parseErrs))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	h := harness.New(patterns, logger)

	cuckooResult, err := h.RunCuckoo(harness.Scenario{
		L:             cfg.L,
		G:             cfg.G,
		MaxLoadFactor: cfg.MaxLoadFactor,
		MaxBytes:      cfg.MaxBytes,
		NumTrials:     cfg.NumTrials,
	})
	if err != nil {
		return fmt.Errorf("cuckoo scenario: %w", err)
	}
	if err := writeCuckooStats(outDir, cuckooResult); err != nil {
		return err
	}

	opts := ahocorasick.Options{
		AllowOverlaps:   cfg.AllowOverlaps,
		OnlyWholeWords:  cfg.OnlyWholeWords,
		CaseInsensitive: cfg.CaseInsensitive,
	}
	ac, acResult, err := h.BuildAhoCorasick(opts)
	if err != nil {
		return fmt.Errorf("aho-corasick scenario: %w", err)
	}
	if err := writeACStats(outDir, acResult, cfg); err != nil {
		return err
	}

	if queriesPath == "" {
		return nil
	}
	return runQueries(logger, h, ac, patterns, queriesPath, outDir)
}

func runQueries(logger *slog.Logger, h *harness.Harness, ac *ahocorasick.AhoCorasick, patterns *pattern.Set, queriesPath, outDir string) error {
	queriesFile, err := os.Open(queriesPath)
	if err != nil {
		return fmt.Errorf("opening queries file: %w", err)
	}
	defer queriesFile.Close()

	queries, err := ingest.LoadQueries(queriesFile)
	if err != nil {
		return fmt.Errorf("loading queries: %w", err)
	}
	logger.Info("queries loaded", "count", len(queries))

	results := make([]statsio.SearchResult, 0, len(queries))
	for _, q := range queries {
		r := h.Search(ac, q.Bytes, q.SIDs)
		results = append(results, toStatsioSearchResult(r))
	}

	return writeSearchResults(outDir, results)
}

func toStatsioSearchResult(r harness.SearchResult) statsio.SearchResult {
	histogram := make(map[string]int, len(r.Histogram))
	for sid, count := range r.Histogram {
		histogram[fmt.Sprintf("%d", sid)] = count
	}
	return statsio.SearchResult{
		SearchKey:       fmt.Sprintf("%x", r.Query),
		ExpectedSIDs:    r.ExpectedSIDs,
		SIDHitHistogram: histogram,
		SizeBytes:       r.SizeBytes,
	}
}

// writeCuckooStats writes one CuckooStats record averaged across every
// trial, matching the original harness's practice of reporting mean
// load factor and run time over repeated trials rather than each trial
// individually.
func writeCuckooStats(outDir string, result harness.CuckooScenarioResult) error {
	f, err := os.Create(filepath.Join(outDir, "cuckoo_stats.json"))
	if err != nil {
		return fmt.Errorf("creating cuckoo stats file: %w", err)
	}
	defer f.Close()

	var loadFactorSum, runTimeSum float64
	var admittedSum, rulesSum int
	for _, trial := range result.Trials {
		loadFactorSum += trial.LoadFactor
		runTimeSum += trial.WallTime
		admittedSum += trial.AdmittedCount
		rulesSum += len(trial.SIDsCovered)
	}
	n := len(result.Trials)
	stats := statsio.CuckooStats{
		HashTableSize:  result.TableBytes,
		AdditionalSize: result.AdditionalBytes,
	}
	if n > 0 {
		stats.LoadFactor = loadFactorSum / float64(n)
		stats.NumberOfRulesInserted = rulesSum / n
		stats.NumberOfSubstringsInserted = admittedSum / n
		stats.AverageRunTime = runTimeSum / float64(n)
	}
	return statsio.WriteCuckooStats(f, stats)
}

func writeACStats(outDir string, result harness.ACScenarioResult, cfg harnessconfig.Config) error {
	f, err := os.Create(filepath.Join(outDir, "ac_stats.json"))
	if err != nil {
		return fmt.Errorf("creating ac stats file: %w", err)
	}
	defer f.Close()

	stats := statsio.ACStats{
		NodesSize:              result.Shape.BytesExcludingEmits,
		TotalEdges:             result.Shape.EdgeCount,
		SizeInTheory:           result.Shape.BytesExcludingEmits,
		AhoCorasickSize:        result.Shape.BytesIncludingEmits,
		AhoCorasickNoEmitsSize: result.Shape.BytesExcludingEmits,
		ExactMatchesInserted:   result.PatternsInserted,
		Threshold:              cfg.L,
		RunTime:                result.RunTime,
	}
	return statsio.WriteACStats(f, stats)
}

func writeSearchResults(outDir string, results []statsio.SearchResult) error {
	f, err := os.Create(filepath.Join(outDir, "search_results.json"))
	if err != nil {
		return fmt.Errorf("creating search results file: %w", err)
	}
	defer f.Close()
	return statsio.WriteSearchResults(f, results)
}
