package harness

import (
	"math/rand"
	"time"

	"github.com/coregx/sigharness/ahocorasick"
	"github.com/coregx/sigharness/cuckoo"
	"github.com/coregx/sigharness/internal/conv"
	"github.com/coregx/sigharness/pattern"
	"github.com/coregx/sigharness/substring"
)

// shuffleSeed fixes the PRNG seed used to reshuffle the substring bag
// between insertion trials, so repeated runs over the same PatternSet
// observe the same trial-to-trial variance.
const shuffleSeed = 0xC0FFEE

// RunCuckoo extracts SubstringBag(sc.L, sc.G) from patterns and runs
// sc.NumTrials independent insertion trials, reshuffling the bag's
// insertion order between trials with a seeded PRNG. Every key's value
// handle is its bag index; SIDsCovered is the union of SID sets across
// every admitted key in that trial.
func (h *Harness) RunCuckoo(sc Scenario) (CuckooScenarioResult, error) {
	h.logger.Info("cuckoo scenario starting", "l", sc.L, "g", sc.G, "trials", sc.NumTrials)

	bag, err := substring.Extract(h.patterns, sc.L, sc.G)
	if err != nil {
		return CuckooScenarioResult{}, err
	}

	entries := bag.Values()
	rng := rand.New(rand.NewSource(shuffleSeed))

	result := CuckooScenarioResult{}
	for trial := 0; trial < sc.NumTrials; trial++ {
		order := make([]int, len(entries))
		for i := range order {
			order[i] = i
		}
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		idx := cuckoo.New(len(entries), sc.MaxLoadFactor, sc.MaxBytes)
		start := time.Now()

		admitted := 0
		covered := make(map[pattern.SID]struct{})
		for _, pos := range order {
			e := entries[pos]
			outcome := idx.Insert(e.Value, conv.IntToUint32(pos))
			if outcome == cuckoo.Admitted {
				admitted++
				for sid := range e.SIDs {
					covered[sid] = struct{}{}
				}
			}
		}

		trialResult := CuckooTrialResult{
			LoadFactor:    idx.LoadFactor(),
			AdmittedCount: admitted,
			SIDsCovered:   covered,
			WallTime:      time.Since(start).Seconds(),
		}
		result.Trials = append(result.Trials, trialResult)

		if trial == 0 {
			result.TableBytes = int64(idx.CapacityBytes())
		}

		h.logger.Debug("cuckoo trial complete", "trial", trial, "admitted", admitted, "load_factor", trialResult.LoadFactor)
	}

	h.logger.Info("cuckoo scenario complete", "bag_size", len(entries))
	return result, nil
}

// BuildAhoCorasick inserts every pattern in h.patterns into a fresh
// AhoCorasick automaton built with opts, forces the failure graph to
// build, and returns its shape measurement.
func (h *Harness) BuildAhoCorasick(opts ahocorasick.Options) (*ahocorasick.AhoCorasick, ACScenarioResult, error) {
	h.logger.Info("aho-corasick scenario starting", "pattern_count", h.patterns.Len())

	start := time.Now()
	ac := ahocorasick.New(opts)
	for _, rec := range h.patterns.All() {
		ac.Insert(rec.Bytes)
	}
	// Force the failure graph to build now rather than lazily on first
	// Scan, so RunTime reflects construction cost.
	ac.Scan(nil)
	runTime := time.Since(start).Seconds()

	shape := ac.Traverse()
	result := ACScenarioResult{
		Shape:            shape,
		PatternsInserted: h.patterns.Len(),
		RunTime:          runTime,
	}

	h.logger.Info("aho-corasick scenario complete", "node_count", shape.NodeCount, "run_time", runTime)
	return ac, result, nil
}

// Search scans queryBytes against a previously-built AhoCorasick, and
// returns the histogram of SID hits: for every emit, every SID attached
// to a pattern record with those exact bytes accrues one hit.
func (h *Harness) Search(ac *ahocorasick.AhoCorasick, queryBytes []byte, expectedSIDs []pattern.SID) SearchResult {
	bytesToSIDs := h.patterns.BytesToSIDs()

	emits := ac.Scan(queryBytes)
	histogram := make(SIDHistogram)
	for _, e := range emits {
		sids, ok := bytesToSIDs[string(e.PatternBytes)]
		if !ok {
			continue
		}
		for sid := range sids {
			histogram[sid]++
		}
	}

	h.logger.Debug("search complete", "query_len", len(queryBytes), "emits", len(emits))

	return SearchResult{
		Query:        queryBytes,
		ExpectedSIDs: expectedSIDs,
		Histogram:    histogram,
		SizeBytes:    int64(len(queryBytes)),
	}
}
