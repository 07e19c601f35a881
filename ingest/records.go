// Package ingest decodes the newline-delimited JSON pattern record file and
// the single-JSON-array query file into the core's PatternSet and Query
// types. This is an external collaborator in the original spec's terms —
// I/O and JSON framing, not one of the algorithmic subsystems — but is
// carried here as part of the ambient stack a complete repository needs.
package ingest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/coregx/sigharness/hexcodec"
	"github.com/coregx/sigharness/pattern"
)

// ErrRecordParse wraps any error encountered decoding a single input line.
var ErrRecordParse = errors.New("ingest: record parse error")

// rawRecord mirrors the input record format: exact_match_hex and rules are
// the only fields the core cares about; every other key present in the
// input (exact_match, signature, signature_type, ...) is ignored because
// it is simply not a field of this struct.
type rawRecord struct {
	ExactMatchHex []string `json:"exact_match_hex"`
	Rules         []int    `json:"rules"`
}

// LoadPatternRecords decodes one JSON record per line from r into a
// pattern.Set. Malformed lines are collected as errors and skipped rather
// than aborting the whole load; the returned Set contains every
// successfully parsed record.
func LoadPatternRecords(r io.Reader) (*pattern.Set, []error) {
	set := pattern.NewSet()
	var errs []error

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: line %d: %v", ErrRecordParse, lineNum, err))
			continue
		}
		set.Add(rec)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrRecordParse, err))
	}

	return set, errs
}

func parseRecord(line []byte) (pattern.Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return pattern.Record{}, err
	}

	var patternBytes []byte
	for _, hexByte := range raw.ExactMatchHex {
		decoded, err := hexcodec.Decode(hexByte)
		if err != nil {
			return pattern.Record{}, fmt.Errorf("exact_match_hex entry %q: %w", hexByte, err)
		}
		patternBytes = append(patternBytes, decoded...)
	}

	sids := make([]pattern.SID, 0, len(raw.Rules))
	for _, r := range raw.Rules {
		sids = append(sids, pattern.SID(r))
	}

	return pattern.NewRecord(patternBytes, sids), nil
}
