package observability

import (
	"fmt"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// CounterLine is one labelled counter sample.
type CounterLine struct {
	Name   string
	Labels string
	Value  float64
}

// Counters gathers every counter sample from the registry, sorted by name
// then labels.
func (m *Metrics) Counters() ([]CounterLine, error) {
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var lines []CounterLine
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, metric := range mf.GetMetric() {
			lines = append(lines, CounterLine{
				Name:   mf.GetName(),
				Labels: formatLabels(metric.GetLabel()),
				Value:  metric.GetCounter().GetValue(),
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].Labels < lines[j].Labels
	})
	return lines, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(parts, ",")
}
