// Package harness provides the thin orchestration surface that builds
// indexes from a PatternSet, runs insertion trials and search scenarios,
// and returns per-scenario hit histograms and shape measurements. It
// performs no I/O itself; callers (ingest, statsio, cmd/sigharness)
// serialize the structures it returns.
package harness

import (
	"log/slog"

	"github.com/coregx/sigharness/ahocorasick"
	"github.com/coregx/sigharness/pattern"
)

// Scenario is the configuration for one run of the harness against a
// PatternSet: the substring extraction parameters, the cuckoo admission
// policy, and the number of insertion trials.
type Scenario struct {
	L             int
	G             int
	MaxLoadFactor float64
	MaxBytes      int
	NumTrials     int
}

// CuckooTrialResult is one insertion trial's measurement.
type CuckooTrialResult struct {
	LoadFactor    float64
	AdmittedCount int
	SIDsCovered   map[pattern.SID]struct{}
	WallTime      float64 // seconds
}

// CuckooScenarioResult aggregates every trial plus the static table sizing.
type CuckooScenarioResult struct {
	TableBytes      int64
	AdditionalBytes int64
	Trials          []CuckooTrialResult
}

// ACScenarioResult is the Aho-Corasick shape measurement for one build.
type ACScenarioResult struct {
	Shape            ahocorasick.ShapeStats
	PatternsInserted int
	LengthThreshold  int
	RunTime          float64
}

// SIDHistogram maps a SID to the number of emits/hits attributable to it
// for one query.
type SIDHistogram map[pattern.SID]int

// SearchResult is one query's measurement against a built index.
type SearchResult struct {
	Query        []byte
	ExpectedSIDs []pattern.SID
	Histogram    SIDHistogram
	SizeBytes    int64
}

// Harness ties a PatternSet to the logger used for phase-boundary and
// per-trial logging.
type Harness struct {
	patterns *pattern.Set
	logger   *slog.Logger
}

// New constructs a Harness over patterns. If logger is nil, slog.Default()
// is used.
func New(patterns *pattern.Set, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harness{patterns: patterns, logger: logger}
}
