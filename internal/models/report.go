// Package models defines data structures shared by the aggregator, summarizers and page indexer.
package models

import "math"

// Report is a loosely-typed report record as returned by the backend.
// Field shapes vary by producer, so every accessor tolerates missing or mistyped values.
type Report map[string]any

// Media bucket keys as used by the backend.
const (
	MediaArticles   = "articles"
	MediaPrintMedia = "printmedia"
	MediaBroadcast  = "broadcast"
	MediaPosts      = "posts"
)

// MediaTypes lists the four buckets in their default display order.
var MediaTypes = []string{MediaArticles, MediaPrintMedia, MediaBroadcast, MediaPosts}

// Lookup walks nested objects following path and returns the value found at the end.
func (r Report) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(r)

	for _, key := range path {
		obj, ok := AsObject(cur)
		if !ok {
			return nil, false
		}

		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}

// String returns the string at path, or "" if absent or not a string.
func (r Report) String(path ...string) string {
	v, ok := r.Lookup(path...)
	if !ok {
		return ""
	}

	s, _ := v.(string)

	return s
}

// AsObject reports whether v is a JSON object and returns it.
func AsObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, obj != nil
	case Report:
		return map[string]any(obj), obj != nil
	default:
		return nil, false
	}
}

// Truthy mirrors the loose truthiness the dashboard applies to optional report fields:
// nil, false, zero, and "" are absent; everything else is present.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
