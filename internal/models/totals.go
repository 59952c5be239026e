package models

// Totals holds the aggregate metrics of a report or sub-tree.
type Totals struct {
	Volume float64 `json:"volume" yaml:"volume"`
	Reach  float64 `json:"reach" yaml:"reach"`
	AVE    float64 `json:"ave" yaml:"ave"`
}

// Add returns the field-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Volume: t.Volume + o.Volume,
		Reach:  t.Reach + o.Reach,
		AVE:    t.AVE + o.AVE,
	}
}

// IsZero reports whether all three metrics are zero.
func (t Totals) IsZero() bool {
	return t.Volume == 0 && t.Reach == 0 && t.AVE == 0
}
