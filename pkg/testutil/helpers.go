// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/school-forecast/internal/forecast"
	"github.com/iwvelando/school-forecast/internal/scenario"
)

// SampleScenario returns a normalized scenario with students, fees, a
// discount, staffing, expenses and capacity filled in.
func SampleScenario() scenario.Document {
	return scenario.Normalize(map[string]interface{}{
		"name":         "Sample Campus",
		"academicYear": "2025-2026",
		"programType":  "local",
		"currency":     map[string]interface{}{"entry": "LOCAL", "localCode": "TRY", "fxRate": 40},
		"inflation":    map[string]interface{}{"y2": 0.1, "y3": 0.1},
		"grades": map[string]interface{}{
			"current": []interface{}{
				map[string]interface{}{"grade": "KG", "branchCount": 1, "totalStudents": 20},
				map[string]interface{}{"grade": "1", "branchCount": 2, "totalStudents": 40},
			},
			"planning": map[string]interface{}{
				"y1": []interface{}{
					map[string]interface{}{"grade": "KG", "branchCount": 1, "totalStudents": 25},
					map[string]interface{}{"grade": "1", "branchCount": 2, "totalStudents": 45},
				},
				"y2": []interface{}{
					map[string]interface{}{"grade": "KG", "branchCount": 2, "totalStudents": 30},
					map[string]interface{}{"grade": "1", "branchCount": 2, "totalStudents": 50},
				},
			},
		},
		"income": map[string]interface{}{
			"tuition": []interface{}{
				map[string]interface{}{"key": "okulOncesiYerel", "unitFee": 800},
				map[string]interface{}{"key": "ilkokulYerel", "unitFee": 1000},
			},
			"nonTuition": []interface{}{
				map[string]interface{}{"key": "yemek", "unitFee": 150, "studentCount": 50},
			},
		},
		"discounts": []interface{}{
			map[string]interface{}{"name": "Sibling", "mode": "percent", "value": 0.2, "ratio": 0.1},
		},
		"hr": map[string]interface{}{
			"unitCostRatio": 1.05,
			"years": map[string]interface{}{
				"y1": map[string]interface{}{
					"unitCosts": map[string]interface{}{"turkEgitimci": 6000, "yerelEgitimci": 2000},
					"headcountsByLevel": map[string]interface{}{
						"ilkokul": map[string]interface{}{"turkEgitimci": 1, "yerelEgitimci": 2},
					},
				},
			},
		},
		"expenses": map[string]interface{}{
			"operating": map[string]interface{}{"kira": 12000, "enerji": 3000},
			"service":   []interface{}{map[string]interface{}{"key": "yemekGideri", "unitCost": 60}},
		},
		"capacity": map[string]interface{}{
			"okulOncesi": map[string]interface{}{"caps": map[string]interface{}{"cur": 25, "y1": 25, "y2": 30, "y3": 30}},
			"ilkokul":    map[string]interface{}{"caps": map[string]interface{}{"cur": 60, "y1": 60, "y2": 60, "y3": 60}},
		},
	})
}

// FindRow finds a row by table id and row key in a forecast.
// Returns nil if either is missing.
func FindRow(f *forecast.Forecast, table, key string) *forecast.Row {
	if f == nil {
		return nil
	}
	t, ok := f.Table(table)
	if !ok {
		return nil
	}
	r, ok := t.Row(key)
	if !ok {
		return nil
	}
	return &r
}

// Value returns the i-th value of a row, or 0 when the row is nil or the value
// is not applicable.
func Value(r *forecast.Row, i int) float64 {
	if r == nil || i < 0 || i >= len(r.Values) || r.Values[i] == nil {
		return 0
	}
	return *r.Values[i]
}
