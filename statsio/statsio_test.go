package statsio

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestCuckooStatsRoundTrip(t *testing.T) {
	want := CuckooStats{
		HashTableSize:             4096,
		AdditionalSize:            128,
		LoadFactor:                0.75,
		NumberOfRulesInserted:     42,
		PercentageOfRulesInserted: 95.5,
		HashPower:                 12,
		AverageRunTime:            1.23,
	}

	var buf bytes.Buffer
	if err := WriteCuckooStats(&buf, want); err != nil {
		t.Fatalf("WriteCuckooStats error: %v", err)
	}

	var got CuckooStats
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestACStatsFieldNames(t *testing.T) {
	stats := ACStats{NodesSize: 10, TotalEdges: 20, Threshold: 4}

	var buf bytes.Buffer
	if err := WriteACStats(&buf, stats); err != nil {
		t.Fatalf("WriteACStats error: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	for _, key := range []string{"nodes_size", "total_edges", "size_in_theory", "aho_corasick_size", "aho_corasick_no_emits_size", "exact_matches_inserted", "threshold", "run_time"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing expected JSON field %q", key)
		}
	}
}

func TestWriteSearchResults(t *testing.T) {
	results := []SearchResult{
		{SearchKey: "0xFF", ExpectedSIDs: []uint32{1, 2}, SIDHitHistogram: map[string]int{"1": 3}},
	}
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, results); err != nil {
		t.Fatalf("WriteSearchResults error: %v", err)
	}

	var got []SearchResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(got) != 1 || got[0].SearchKey != "0xFF" {
		t.Errorf("got %+v", got)
	}
}
