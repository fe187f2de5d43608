package report

import (
	"fmt"
	"math"
	"sort"
)

type Group struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Summary struct {
	Total                 int     `json:"total"`
	Converted             int     `json:"converted"`
	ConversionRate        float64 `json:"conversion_rate"`
	ConversionRateDisplay string  `json:"conversion_rate_display"`
	Groups                []Group `json:"groups"`
	ContactEvents         int64   `json:"contact_events"`
}

// ConversionRate returns converted/total as a percentage; zero total gives 0.
func ConversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(converted) / float64(total) * 100
}

// Aggregate counts records per group, nil groups counting under defaultLabel.
// Groups are ordered by count, then name.
func Aggregate(groups []*string, defaultLabel string, isConverted func(string) bool) Summary {
	counts := make(map[string]int)
	converted := 0
	for _, g := range groups {
		name := defaultLabel
		if g != nil && *g != "" {
			name = *g
		}
		counts[name]++
		if isConverted != nil && isConverted(name) {
			converted++
		}
	}

	out := make([]Group, 0, len(counts))
	for name, n := range counts {
		out = append(out, Group{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})

	sum := Summary{Total: len(groups), Groups: out}
	sum.setConverted(converted)
	return sum
}

func (s *Summary) setConverted(n int) {
	rate := ConversionRate(n, s.Total)
	s.Converted = n
	s.ConversionRate = math.Round(rate*10) / 10
	s.ConversionRateDisplay = fmt.Sprintf("%.1f", rate)
}
