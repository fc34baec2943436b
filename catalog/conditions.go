package catalog

import "time"

type Operator string

const (
	OpEquals      Operator = "equals"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpBetween     Operator = "between"
)

// Condition compares one metric against its targets. WindowDays bounds the
// aggregate for time-windowed requirements; zero means all time.
type Condition struct {
	Metric     string
	Op         Operator
	Values     []float64
	WindowDays int
}

func (c Condition) Holds(v float64) bool {
	if len(c.Values) == 0 {
		return false
	}
	switch c.Op {
	case OpEquals:
		return v == c.Values[0]
	case OpGreaterThan:
		return v > c.Values[0]
	case OpLessThan:
		return v < c.Values[0]
	case OpBetween:
		return len(c.Values) >= 2 && v >= c.Values[0] && v <= c.Values[1]
	}
	return false
}

// Exact holds only when v equals the first target.
func (c Condition) Exact(v float64) bool {
	return len(c.Values) > 0 && v == c.Values[0]
}

// Since is the start of the condition's window relative to now.
func (c Condition) Since(now time.Time) time.Time {
	if c.WindowDays <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -c.WindowDays)
}
