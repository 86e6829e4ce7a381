package domain

import (
	"encoding/json"
	"strconv"
)

// MetricValue is the reading shown for a system: either free text ("7.9 ч")
// or a number computed by a Notion formula.
type MetricValue struct {
	Text   string
	Number *float64
}

func TextValue(s string) MetricValue { return MetricValue{Text: s} }

func NumberValue(n float64) MetricValue { return MetricValue{Number: &n} }

func (v MetricValue) IsNumber() bool { return v.Number != nil }

func (v MetricValue) String() string {
	if v.Number != nil {
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	}
	return v.Text
}

// MarshalJSON emits a JSON number for numeric readings and a string otherwise.
func (v MetricValue) MarshalJSON() ([]byte, error) {
	if v.Number != nil {
		return json.Marshal(*v.Number)
	}
	return json.Marshal(v.Text)
}

func (v *MetricValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = TextValue(s)
	return nil
}
