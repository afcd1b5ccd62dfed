// Package normalize maps the loosely shaped JSON returned by the webhook
// backend into model records. Nothing in here returns an error: payloads
// that match no known envelope normalise to an empty list.
package normalize

import (
	"encoding/json"
	"math"
)

// Record is one decoded JSON object
type Record map[string]any

// envelopeKeys are probed in order when a response object wraps its list.
// The first key holding an array wins, so "data" beats "rows".
var envelopeKeys = []string{"data", "rows", "users", "shifts", "items", "output"}

// NormalizeList turns a decoded response body into an ordered list of records.
//
// A bare array is used directly; an object is searched for the first
// envelope key holding an array; any other object without an "error" or
// "status" marker is treated as a single record. Each element that carries
// an inner "json" object (the automation tool's item envelope) is replaced by
// that inner value. Elements that are not objects are dropped.
func NormalizeList(raw any) []Record {
	records := []Record{}
	if !IsTruthy(raw) {
		return records
	}

	switch v := raw.(type) {
	case []any:
		return unwrapItems(v)
	case map[string]any:
		for _, key := range envelopeKeys {
			if items, ok := v[key].([]any); ok {
				return unwrapItems(items)
			}
		}
		if !IsTruthy(v["error"]) && !IsTruthy(v["status"]) {
			return append(records, Record(v))
		}
	case Record:
		return NormalizeList(map[string]any(v))
	}

	return records
}

func unwrapItems(items []any) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		value := item
		if obj, ok := item.(map[string]any); ok && IsTruthy(obj["json"]) {
			value = obj["json"]
		}
		if obj, ok := value.(map[string]any); ok {
			records = append(records, Record(obj))
		}
	}
	return records
}

// First returns the first record of a normalised response, or nil
func First(raw any) Record {
	records := NormalizeList(raw)
	if len(records) == 0 {
		return nil
	}
	return records[0]
}

// IsTruthy applies JavaScript truthiness to a decoded JSON value: null, false,
// zero, NaN and the empty string are falsy; objects and arrays are truthy even
// when empty.
func IsTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String() != ""
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return true
	}
}
