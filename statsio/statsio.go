// Package statsio serializes harness measurement structures to JSON, using
// the field names the original cuckoo and Aho-Corasick measurement
// harnesses wrote, so downstream tooling built against those field names
// keeps working unmodified.
package statsio

import (
	"encoding/json"
	"io"
)

// CuckooStats is one cuckoo scenario's measurement record.
type CuckooStats struct {
	HashTableSize                     int64   `json:"hash_table_size"`
	AdditionalSize                    int64   `json:"additional_size"`
	LoadFactor                        float64 `json:"load_factor"`
	NumberOfRulesInserted             int     `json:"number_of_rules_inserted"`
	PercentageOfRulesInserted         float64 `json:"percentage_of_rules_inserted"`
	NumberOfSubstringsInserted        int     `json:"number_of_substrings_inserted"`
	PercentageOfAllSubstringsInserted float64 `json:"percentage_of_all_substrings_inserted"`
	HashPower                         float64 `json:"hash_power"`
	AverageRunTime                    float64 `json:"average_run_time"`
}

// ACStats is one Aho-Corasick scenario's measurement record.
type ACStats struct {
	NodesSize              int64   `json:"nodes_size"`
	TotalEdges             int     `json:"total_edges"`
	SizeInTheory           int64   `json:"size_in_theory"`
	AhoCorasickSize        int64   `json:"aho_corasick_size"`
	AhoCorasickNoEmitsSize int64   `json:"aho_corasick_no_emits_size"`
	ExactMatchesInserted   int     `json:"exact_matches_inserted"`
	Threshold              int     `json:"threshold"`
	RunTime                float64 `json:"run_time"`
}

// SearchResult is one per-query search measurement: the query, its expected
// SIDs, the observed per-SID hit histogram, and a byte-size figure plus
// IBLT-size projections.
type SearchResult struct {
	SearchKey          string         `json:"search_key"`
	ExpectedSIDs       []uint32       `json:"expected_sids"`
	SIDHitHistogram    map[string]int `json:"sid_hit_histogram"`
	SizeBytes          int64          `json:"size_bytes"`
	IBLTSizeProjection int64          `json:"iblt_size_projection"`
}

// WriteCuckooStats marshals stats as a single JSON object to w.
func WriteCuckooStats(w io.Writer, stats CuckooStats) error {
	return encode(w, stats)
}

// WriteACStats marshals stats as a single JSON object to w.
func WriteACStats(w io.Writer, stats ACStats) error {
	return encode(w, stats)
}

// WriteSearchResults marshals results as a single JSON array to w.
func WriteSearchResults(w io.Writer, results []SearchResult) error {
	return encode(w, results)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
