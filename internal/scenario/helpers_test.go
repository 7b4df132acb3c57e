package scenario

// sampleRaw is a current-schema document exercising every section.
func sampleRaw() map[string]interface{} {
	return map[string]interface{}{
		"schemaVersion": 3,
		"name":          "Sample School",
		"academicYear":  "2025-2026",
		"programType":   "local",
		"currency":      map[string]interface{}{"entry": "LOCAL", "localCode": "TRY", "fxRate": 40},
		"inflation":     map[string]interface{}{"y2": 0.1, "y3": 0.08},
		"kademe": map[string]interface{}{
			"okulOncesi": map[string]interface{}{"enabled": true, "from": "KG", "to": "KG"},
			"ilkokul":    map[string]interface{}{"enabled": true, "from": "1", "to": "4"},
			"ortaokul":   map[string]interface{}{"enabled": true, "from": "5", "to": "8"},
			"lise":       map[string]interface{}{"enabled": false, "from": "9", "to": "12"},
		},
		"grades": map[string]interface{}{
			"current": []interface{}{
				map[string]interface{}{"grade": "KG", "branchCount": 1, "totalStudents": 25},
				map[string]interface{}{"grade": "1", "branchCount": 2, "totalStudents": 40},
			},
			"planning": map[string]interface{}{
				"y1": []interface{}{
					map[string]interface{}{"grade": "KG", "branchCount": 2, "totalStudents": 30},
					map[string]interface{}{"grade": "1", "branchCount": 2, "totalStudents": 50},
					map[string]interface{}{"grade": "2", "branchCount": 2, "totalStudents": 50},
				},
				"y2": []interface{}{
					map[string]interface{}{"grade": "KG", "branchCount": 2, "totalStudents": 36},
					map[string]interface{}{"grade": "1", "branchCount": 2, "totalStudents": 55},
				},
			},
		},
		"income": map[string]interface{}{
			"tuition": []interface{}{
				map[string]interface{}{"key": "okulOncesiYerel", "unitFee": 800},
				map[string]interface{}{"key": "ilkokulYerel", "unitFee": 1000},
			},
			"nonTuition": []interface{}{
				map[string]interface{}{"key": "yemek", "unitFee": 200, "studentCount": 60, "studentCountY2": 70},
			},
			"dormitory": []interface{}{
				map[string]interface{}{"key": "yurt", "unitFee": 1500, "studentCount": 10},
			},
			"otherInstitution": []interface{}{
				map[string]interface{}{"key": "bagisGelirleri", "amount": 4000},
			},
			"governmentIncentives": 1000,
		},
		"discounts": []interface{}{
			map[string]interface{}{"name": "Sibling", "mode": "percent", "value": 0.25, "ratio": 0.1},
			map[string]interface{}{"name": "Staff", "mode": "fixed", "value": 200, "valueY2": 260, "studentCount": 5},
		},
		"hr": map[string]interface{}{
			"unitCostRatio": 1.1,
			"years": map[string]interface{}{
				"y1": map[string]interface{}{
					"unitCosts": map[string]interface{}{"turkEgitimci": 1000, "yerelEgitimci": 500},
					"headcountsByLevel": map[string]interface{}{
						"ilkokul": map[string]interface{}{"turkEgitimci": 2, "yerelEgitimci": 3},
					},
				},
			},
		},
		"expenses": map[string]interface{}{
			"operating": map[string]interface{}{"kira": 10000, "enerji": 2000},
			"service": []interface{}{
				map[string]interface{}{"key": "yemekGideri", "unitCost": 120},
			},
			"dormitory": []interface{}{
				map[string]interface{}{"key": "yurtGideri", "unitCost": 900},
			},
		},
		"capacity": map[string]interface{}{
			"okulOncesi": map[string]interface{}{"caps": map[string]interface{}{"cur": 30, "y1": 40, "y2": 40, "y3": 40}},
			"ilkokul":    map[string]interface{}{"caps": map[string]interface{}{"cur": 100, "y1": 120, "y2": 120, "y3": 120}},
		},
	}
}
