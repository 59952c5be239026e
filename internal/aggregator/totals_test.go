package aggregator

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mediareport/internal/models"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected models.Totals
	}{
		{
			name:     "nil input",
			input:    nil,
			expected: models.Totals{},
		},
		{
			name:     "empty object",
			input:    map[string]any{},
			expected: models.Totals{},
		},
		{
			name:     "primitive",
			input:    "volume",
			expected: models.Totals{},
		},
		{
			name: "mediaSummary at two levels counted once each",
			input: map[string]any{
				"mediaSummary": map[string]any{"volume": 10.0},
				"other": map[string]any{
					"mediaSummary": map[string]any{"volume": 5.0},
				},
			},
			expected: models.Totals{Volume: 15},
		},
		{
			name: "direct fields and mediaSummary are separate contributions",
			input: map[string]any{
				"volume":       1.0,
				"reach":        2.0,
				"ave":          3.0,
				"mediaSummary": map[string]any{"volume": 10.0, "reach": 20.0, "ave": 30.0},
			},
			expected: models.Totals{Volume: 11, Reach: 22, AVE: 33},
		},
		{
			name: "mediaSummary prefers nested totals",
			input: map[string]any{
				"mediaSummary": map[string]any{
					"volume": 999.0,
					"totals": map[string]any{"volume": 4.0, "reach": 40.0, "ave": 400.0},
				},
			},
			expected: models.Totals{Volume: 4, Reach: 40, AVE: 400},
		},
		{
			name: "mediaSummary subtree is not walked",
			input: map[string]any{
				"mediaSummary": map[string]any{
					"volume": 1.0,
					"breakdown": map[string]any{
						"volume": 100.0,
					},
				},
			},
			expected: models.Totals{Volume: 1},
		},
		{
			name: "media buckets",
			input: map[string]any{
				"articles":   map[string]any{"mediaSummary": map[string]any{"volume": 3.0, "reach": 300.0, "ave": 30.0}},
				"printmedia": map[string]any{"mediaSummary": map[string]any{"totals": map[string]any{"volume": 2.0, "reach": 200.0, "ave": 20.0}}},
				"broadcast":  map[string]any{"mediaSummary": map[string]any{"volume": "1", "reach": "100", "ave": "10"}},
				"posts":      map[string]any{},
			},
			expected: models.Totals{Volume: 6, Reach: 600, AVE: 60},
		},
		{
			name: "arrays walk their elements",
			input: map[string]any{
				"items": []any{
					map[string]any{"volume": 2.0},
					map[string]any{"mediaSummary": map[string]any{"volume": 3.0}},
					7.0,
				},
			},
			expected: models.Totals{Volume: 5},
		},
		{
			name: "nested totals object is also visited as a child",
			input: map[string]any{
				"totals": map[string]any{"volume": 5.0},
			},
			expected: models.Totals{Volume: 10},
		},
		{
			name: "non-object totals reads the node directly",
			input: map[string]any{
				"totals": 12.0,
				"reach":  8.0,
			},
			expected: models.Totals{Reach: 8},
		},
		{
			name:     "report type",
			input:    models.Report{"mediaSummary": map[string]any{"ave": 1.5}},
			expected: models.Totals{AVE: 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAggregate_Coercion(t *testing.T) {
	got := Aggregate(map[string]any{"volume": "7", "reach": nil, "ave": nil})

	want := models.Totals{Volume: 7, Reach: 0, AVE: 0}
	if got != want {
		t.Errorf("Aggregate() = %+v, want %+v", got, want)
	}
}

func TestAggregate_NilVariants(t *testing.T) {
	var nilMap map[string]any

	var nilReport models.Report

	for _, in := range []any{nil, nilMap, nilReport} {
		if got := Aggregate(in); !got.IsZero() {
			t.Errorf("Aggregate(%#v) = %+v, want zero totals", in, got)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	raw := `{
		"mediaSummary": {"volume": 0.1, "reach": 0.2, "ave": 0.3},
		"articles": {"mediaSummary": {"volume": 0.7, "reach": 1.1, "ave": 2.9}},
		"printmedia": {"mediaSummary": {"totals": {"volume": 0.3, "reach": 1e9, "ave": 0.01}}},
		"broadcast": {"mediaSummary": {"volume": "0.2", "reach": "3", "ave": "0.07"}},
		"posts": {"mediaSummary": {"volume": 13, "reach": 0.003, "ave": 5.5}},
		"sections": [{"volume": 0.9}, {"volume": 1.3}]
	}`

	var root any
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	first := Aggregate(root)
	for i := 0; i < 50; i++ {
		if got := Aggregate(root); got != first {
			t.Fatalf("Aggregate() run %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestToNum(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"float", 3.5, 3.5},
		{"int", 4, 4},
		{"numeric string", "42", 42},
		{"padded string", "  8.5 ", 8.5},
		{"exponent string", "1e3", 1000},
		{"hex string", "0x10", 16},
		{"octal string", "0o17", 15},
		{"binary string", "0b101", 5},
		{"digit separators", "1_000", 0},
		{"signed hex", "-0x10", 0},
		{"hex float", "0x1p4", 0},
		{"separated hex", "0x1_0", 0},
		{"leading dot", ".5", 0.5},
		{"empty string", "", 0},
		{"unparsable string", "lots", 0},
		{"nil", nil, 0},
		{"true", true, 1},
		{"false", false, 0},
		{"object", map[string]any{"volume": 1.0}, 0},
		{"array", []any{1.0}, 0},
		{"json number", json.Number("12"), 12},
		{"infinite string", "Inf", 0},
		{"NaN string", "NaN", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNum(tt.input); got != tt.expected {
				t.Errorf("ToNum(%#v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
