package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Toggle flips Enabled for key. Other criteria's weights are not touched;
// re-enabling does not redistribute.
func (c Criteria) Toggle(key CriterionKey) {
	if cr, ok := c[key]; ok && cr != nil {
		cr.Enabled = !cr.Enabled
	}
}

// SetWeight parses v and stores it clamped to [0,100]. Unparseable input stores 0.
func (c Criteria) SetWeight(key CriterionKey, v any) {
	cr, ok := c[key]
	if !ok || cr == nil {
		return
	}
	w, ok := parseNumber(v)
	if !ok {
		w = 0
	}
	cr.Weight = clamp(w, 0, TotalWeight)
}

// SetMaxPoints parses v and stores it clamped to [1,100]. Unparseable or
// empty input stores 1.
func (c Criteria) SetMaxPoints(key CriterionKey, v any) {
	cr, ok := c[key]
	if !ok || cr == nil {
		return
	}
	n, ok := parseInt(v)
	if !ok {
		n = MinMaxPoints
	}
	cr.MaxPoints = clampInt(n, MinMaxPoints, MaxMaxPoints)
}

// SetSubCriterionPoints parses v and stores it on the sub-criterion at index,
// clamped to [0, MaxPoints of the criterion]. Unparseable input stores 0.
func (c Criteria) SetSubCriterionPoints(key CriterionKey, index int, v any) {
	cr, ok := c[key]
	if !ok || cr == nil || index < 0 || index >= len(cr.SubCriteria) {
		return
	}
	n, ok := parseInt(v)
	if !ok {
		n = 0
	}
	cr.SubCriteria[index].Points = clampInt(n, 0, cr.MaxPoints)
}

// Reset returns the built-in template, replacing every criterion.
func Reset() Criteria {
	return DefaultCriteria()
}

// parseNumber accepts the loosely typed values form fields produce.
func parseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func parseInt(v any) (int, bool) {
	f, ok := parseNumber(v)
	if !ok {
		return 0, false
	}
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32, true
	case f < math.MinInt32:
		return math.MinInt32, true
	}
	return int(math.Trunc(f)), true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampInt applies min last, so a criterion whose max is below min yields min.
func clampInt(v, min, max int) int {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}
