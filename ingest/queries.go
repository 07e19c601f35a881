package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/coregx/sigharness/hexcodec"
	"github.com/coregx/sigharness/pattern"
)

// Query is one query-file entry: the expected SIDs and the decoded query
// payload bytes.
type Query struct {
	SIDs  []pattern.SID
	Bytes []byte
}

// rawQuery mirrors the query file's per-entry JSON shape.
type rawQuery struct {
	SIDs             []int  `json:"sids"`
	HexStringExample string `json:"hex_string_example"`
}

// LoadQueries decodes a single JSON array of query entries from r.
// hex_string_example is a whitespace-separated sequence of two-hex-digit
// bytes, optionally "0x"-prefixed after concatenation.
func LoadQueries(r io.Reader) ([]Query, error) {
	var raw []rawQuery
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordParse, err)
	}

	out := make([]Query, 0, len(raw))
	for i, rq := range raw {
		decoded, err := decodeHexStringExample(rq.HexStringExample)
		if err != nil {
			return nil, fmt.Errorf("%w: query %d: %v", ErrRecordParse, i, err)
		}
		sids := make([]pattern.SID, len(rq.SIDs))
		for j, s := range rq.SIDs {
			sids[j] = pattern.SID(s)
		}
		out = append(out, Query{SIDs: sids, Bytes: decoded})
	}
	return out, nil
}

// decodeHexStringExample concatenates whitespace-separated two-digit hex
// bytes (e.g. "FF 00 3A") into a single literal and decodes it.
func decodeHexStringExample(s string) ([]byte, error) {
	fields := strings.Fields(s)
	var joined strings.Builder
	for _, f := range fields {
		joined.WriteString(strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X"))
	}
	return hexcodec.Decode(joined.String())
}
