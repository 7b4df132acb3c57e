package scenario

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tolerant accessors over decoded JSON/YAML trees. None of them fail: values of
// the wrong shape read as absent or zero.

func toNumber(value interface{}) float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func toBool(value interface{}, def bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return def
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return def
}

func toMap(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[toString(k)] = val
		}
		return out, true
	}
	return nil, false
}

func toSlice(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	}
	return nil, false
}

// number reads m[key] as a finite number; ok is false when the key is absent or null.
func number(m map[string]interface{}, key string) (float64, bool) {
	v, present := m[key]
	if !present || v == nil {
		return 0, false
	}
	return toNumber(v), true
}

func numberOr(m map[string]interface{}, key string, def float64) float64 {
	if v, ok := number(m, key); ok {
		return v
	}
	return def
}

func child(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	v, present := m[key]
	if !present {
		return nil, false
	}
	return toMap(v)
}

func childSlice(m map[string]interface{}, key string) ([]interface{}, bool) {
	v, present := m[key]
	if !present {
		return nil, false
	}
	return toSlice(v)
}

// keyedRows indexes an array of objects by their "key" field. The first
// occurrence of a key wins.
func keyedRows(items []interface{}) map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{}, len(items))
	for _, item := range items {
		m, ok := toMap(item)
		if !ok {
			continue
		}
		key := toString(m["key"])
		if key == "" {
			continue
		}
		if _, seen := out[key]; !seen {
			out[key] = m
		}
	}
	return out
}
