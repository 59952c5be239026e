// Package report decodes backend report payloads and assembles the report reading view.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"mediareport/internal/models"
)

// Decoding errors.
var (
	ErrNotObject    = errors.New("report payload is not a JSON object")
	ErrEmptyPayload = errors.New("empty payload")
)

// modulesKey is where the backend embeds module data inside a report record.
const modulesKey = "modules"

// DecodeReport parses a report record.
func DecodeReport(data []byte) (models.Report, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse report JSON: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	return models.Report(obj), nil
}

// DecodeModules parses a media type -> module map, keeping the payload's key order.
// Media types whose value is not an object are skipped.
func DecodeModules(data []byte) (models.ModulesData, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] != '{' {
		return nil, ErrNotObject
	}

	outer := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, outer); err != nil {
		return nil, fmt.Errorf("failed to parse modules JSON: %w", err)
	}

	var out models.ModulesData

	for pair := outer.Oldest(); pair != nil; pair = pair.Next() {
		keys, ok, err := objectKeys(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse modules for %s: %w", pair.Key, err)
		}

		if !ok {
			continue
		}

		out = append(out, models.MediaModules{MediaType: pair.Key, Modules: keys})
	}

	return out, nil
}

// DecodeEmbeddedModules reads the modules object embedded in a raw report record.
func DecodeEmbeddedModules(data []byte) (models.ModulesData, error) {
	outer := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(bytes.TrimSpace(data), outer); err != nil {
		return nil, fmt.Errorf("failed to parse report JSON: %w", err)
	}

	raw, ok := outer.Get(modulesKey)
	if !ok {
		return nil, nil
	}

	return DecodeModules(raw)
}

// ModulesFromReport reads the embedded modules of an already decoded report.
// Go maps carry no key order, so media types and modules come back sorted;
// use DecodeEmbeddedModules when the raw bytes are at hand.
func ModulesFromReport(r models.Report) models.ModulesData {
	raw, ok := r.Lookup(modulesKey)
	if !ok {
		return nil
	}

	outer, ok := models.AsObject(raw)
	if !ok {
		return nil
	}

	var out models.ModulesData

	for _, mt := range sortedKeys(outer) {
		inner, isObj := models.AsObject(outer[mt])
		if !isObj {
			continue
		}

		out = append(out, models.MediaModules{MediaType: mt, Modules: sortedKeys(inner)})
	}

	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// objectKeys returns the keys of a raw JSON object in order; ok is false for non-objects.
func objectKeys(raw json.RawMessage) ([]string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false, nil
	}

	inner := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(raw, inner); err != nil {
		return nil, false, err
	}

	keys := make([]string, 0, inner.Len())
	for pair := inner.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys, true, nil
}
