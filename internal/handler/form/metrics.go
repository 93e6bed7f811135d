package form

import (
	"encoding/json"
	"sort"

	"FraudGuard/internal/domain/models"
	"FraudGuard/pkg/util"
)

// flattenMetrics turns the nested evaluation report into sorted dotted rows.
func flattenMetrics(snap models.MetricsSnapshot) []metricRow {
	var rows []metricRow
	var walk func(prefix string, v interface{})
	walk = func(prefix string, v interface{}) {
		switch t := v.(type) {
		case map[string]interface{}:
			for k, inner := range t {
				name := k
				if prefix != "" {
					name = prefix + "." + k
				}
				walk(name, inner)
			}
		case float64:
			rows = append(rows, metricRow{Name: prefix, Value: util.FormatFloat(t)})
		case string:
			rows = append(rows, metricRow{Name: prefix, Value: t})
		default:
			b, err := json.Marshal(t)
			if err != nil {
				return
			}
			rows = append(rows, metricRow{Name: prefix, Value: string(b)})
		}
	}
	walk("", map[string]interface{}(snap))
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
