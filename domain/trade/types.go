package trade

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"statfolio/domain/core"
)

// Period is a calendar quarter, the granularity of the trade statistics.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

var periodPattern = regexp.MustCompile(`^(\d{4})[-\s]?[QqKk](\d)$`)

// ParsePeriod accepts "2023Q1", "2023-Q1" and the Lithuanian statistical
// office's "2023K1" spelling.
func ParsePeriod(raw string) (Period, error) {
	m := periodPattern.FindStringSubmatch(raw)
	if m == nil {
		return Period{}, core.NewPeriodError(raw)
	}
	year, _ := strconv.Atoi(m[1])
	quarter, _ := strconv.Atoi(m[2])
	if quarter < 1 || quarter > 4 {
		return Period{}, core.NewPeriodError(raw)
	}
	return Period{Year: year, Quarter: quarter}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// Before orders periods chronologically.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Quarter < o.Quarter
}

// Next returns the following quarter.
func (p Period) Next() Period {
	if p.Quarter == 4 {
		return Period{Year: p.Year + 1, Quarter: 1}
	}
	return Period{Year: p.Year, Quarter: p.Quarter + 1}
}

// Flow is one quarterly observation of goods trade with a partner,
// in million EUR.
type Flow struct {
	Period  Period  `json:"period"`
	Partner string  `json:"partner"`
	Exports float64 `json:"exports"`
	Imports float64 `json:"imports"`
}

// Balance returns exports minus imports.
func (f Flow) Balance() float64 {
	return f.Exports - f.Imports
}

// SeriesPoint is one (period, value) observation.
type SeriesPoint struct {
	Period Period  `json:"period"`
	Value  float64 `json:"value"`
}

// Series is a named chronologically ordered sequence of quarterly values.
type Series struct {
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// Sort orders the points chronologically in place.
func (s *Series) Sort() {
	sort.Slice(s.Points, func(i, j int) bool {
		return s.Points[i].Period.Before(s.Points[j].Period)
	})
}

// Values returns the raw values in series order.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, pt := range s.Points {
		vals[i] = pt.Value
	}
	return vals
}

// Summary holds descriptive statistics for one series.
type Summary struct {
	Series string  `json:"series"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}
