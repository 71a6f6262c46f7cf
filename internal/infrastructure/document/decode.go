package document

import (
	"bytes"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

const (
	sentinelMetaKey   = "_meta"
	sentinelMetaValue = "temporada_activa"
	sentinelValueKey  = "valor"
)

// ErrMalformedDocument marks a payload that is not JSON at all.
var ErrMalformedDocument = crerr.New("malformed league document")

// Decode parses one raw league document. Shape is not checked here; rows are
// coerced later by the Parser.
func Decode(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, crerr.Mark(crerr.New("empty document body"), ErrMalformedDocument)
	}

	var doc any
	if err := sonic.Unmarshal(trimmed, &doc); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "decode league document"), ErrMalformedDocument)
	}
	return doc, nil
}

// ActiveSeasonMarker reads the active season from a leading sentinel record.
// A fractional valor is truncated.
func ActiveSeasonMarker(doc any) (int, bool) {
	items, ok := doc.([]any)
	if !ok || len(items) == 0 {
		return 0, false
	}
	head, ok := items[0].(map[string]any)
	if !ok || !isSentinel(head) {
		return 0, false
	}
	raw, ok := head[sentinelValueKey]
	if !ok {
		return 0, false
	}
	return truncatedIntOf(raw)
}

// StripSentinel returns the data rows of doc without the leading sentinel
// record. The input is never modified. Non-array or empty input yields an empty
// slice.
func StripSentinel(doc any) []any {
	items, ok := doc.([]any)
	if !ok || len(items) == 0 {
		return []any{}
	}

	start := 0
	if head, ok := items[0].(map[string]any); ok && isSentinel(head) {
		start = 1
	}

	out := make([]any, len(items)-start)
	copy(out, items[start:])
	return out
}

func isSentinel(item map[string]any) bool {
	value, ok := item[sentinelMetaKey].(string)
	return ok && value == sentinelMetaValue
}
