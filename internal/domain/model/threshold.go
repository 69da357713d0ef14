package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ThresholdPercent is the only threshold type OpenMeter currently emits.
const ThresholdPercent = "PERCENT"

// Threshold carries the crossed limit as reported by the metering service.
// Value arrives in whatever shape the producer chose (number, numeric
// string, "90%"), so it stays untyped until Percent is asked for it.
type Threshold struct {
	Type  string
	Value any
}

// Percent parses the threshold value defensively. ok is false when the
// value is absent or unparseable; callers render that as "?" instead of
// failing the notification.
func (t Threshold) Percent() (float64, bool) {
	switch v := t.Value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
