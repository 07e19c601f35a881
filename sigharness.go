// Package sigharness provides a bounded-resource signature matching
// harness for measuring exact-match indexing strategies over network
// intrusion detection rule sets.
//
// sigharness loads hex-literal pattern records and query byte strings,
// extracts fixed-width substrings at a configurable window/stride, and
// indexes them two ways so their resource/accuracy tradeoffs can be
// measured side by side:
//   - a bounded-capacity cuckoo hash table, admission-gated by a byte
//     budget and load factor, with bounded eviction chains
//   - a from-scratch Aho-Corasick automaton with arena-based failure
//     links and overlap/whole-word post-filtering
//
// Basic usage:
//
//	patterns, errs := ingest.LoadPatternRecords(recordsFile)
//	cfg := harnessconfig.Default()
//	h := harness.New(patterns, runlog.New("sigharness"))
//
//	result, err := h.RunCuckoo(harness.Scenario{
//	    L: cfg.L, G: cfg.G,
//	    MaxLoadFactor: cfg.MaxLoadFactor, MaxBytes: cfg.MaxBytes,
//	    NumTrials: cfg.NumTrials,
//	})
//
// Component packages:
//   - hexcodec: hex literal <-> byte conversion
//   - pattern: the (bytes, SID set) record model
//   - substring: fixed-width window extraction and bag deduplication
//   - hashfn: the custom width-parameterized finalizer
//   - cuckoo: the bounded bucketized hash table
//   - ahocorasick: the trie/failure-link/emit automaton
//   - interval: interval tree and greedy overlap removal
//   - ingest: NDJSON/JSON record and query loading
//   - statsio: measurement serialization matching the original harness's
//     field names
//   - harnessconfig: typed, validated, env-overlaid configuration
//   - runlog: structured logging setup
//   - harness: the orchestration surface tying the above together
package sigharness

import (
	"github.com/coregx/sigharness/ahocorasick"
	"github.com/coregx/sigharness/harness"
	"github.com/coregx/sigharness/harnessconfig"
	"github.com/coregx/sigharness/pattern"
)

// Run is the top-level convenience entry point: given a loaded pattern
// set and a validated Config, it runs the cuckoo scenario described by
// cfg and builds an Aho-Corasick automaton over the same patterns,
// returning both results for serialization by the caller.
//
// Run does not perform any file or network I/O; callers are expected to
// have already produced patterns via ingest.LoadPatternRecords.
func Run(patterns *pattern.Set, cfg harnessconfig.Config, h *harness.Harness) (RunResult, error) {
	cuckooResult, err := h.RunCuckoo(harness.Scenario{
		L:             cfg.L,
		G:             cfg.G,
		MaxLoadFactor: cfg.MaxLoadFactor,
		MaxBytes:      cfg.MaxBytes,
		NumTrials:     cfg.NumTrials,
	})
	if err != nil {
		return RunResult{}, err
	}

	opts := ahocorasick.Options{
		AllowOverlaps:   cfg.AllowOverlaps,
		OnlyWholeWords:  cfg.OnlyWholeWords,
		CaseInsensitive: cfg.CaseInsensitive,
	}
	ac, acResult, err := h.BuildAhoCorasick(opts)
	if err != nil {
		return RunResult{}, err
	}

	return RunResult{
		Cuckoo:      cuckooResult,
		AhoCorasick: acResult,
		ac:          ac,
	}, nil
}

// RunResult bundles both scenario results from Run, plus the built
// automaton so callers can run searches against it without rebuilding.
type RunResult struct {
	Cuckoo      harness.CuckooScenarioResult
	AhoCorasick harness.ACScenarioResult
	ac          *ahocorasick.AhoCorasick
}

// Automaton returns the Aho-Corasick automaton built by Run, for use
// with harness.Harness.Search.
func (r RunResult) Automaton() *ahocorasick.AhoCorasick {
	return r.ac
}
