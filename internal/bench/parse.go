package bench

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseVector parses one float per argument.
func ParseVector(args []string) ([]float64, error) {
	if len(args) == 0 {
		return nil, &InvalidInputFormatError{Reason: "no values given"}
	}
	x := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, &InvalidInputFormatError{Reason: fmt.Sprintf("value %d", i), Wrapped: err}
		}
		x[i] = v
	}
	return x, nil
}

// ParseMatrix parses a nested list literal such as "[[0.1, 0.2], [0.3, 0.4]]".
// A flat list is read as a single row. The literal is read as a YAML flow
// sequence, so forms like ".5" and "1e-3" are accepted.
func ParseMatrix(literal string) ([][]float64, error) {
	var raw interface{}
	if err := yaml.Unmarshal([]byte(literal), &raw); err != nil {
		return nil, &InvalidInputFormatError{Reason: "matrix literal", Wrapped: err}
	}
	outer, ok := raw.([]interface{})
	if !ok {
		return nil, &InvalidInputFormatError{Reason: "matrix literal must be a list"}
	}
	return ToMatrix(outer)
}

// ToMatrix converts a decoded nested list (from YAML, JSON or a protobuf
// ListValue) into a matrix. A list of numbers is promoted to one row.
func ToMatrix(list []interface{}) ([][]float64, error) {
	if len(list) == 0 {
		return nil, &InvalidInputFormatError{Reason: "empty batch"}
	}

	if _, nested := list[0].([]interface{}); !nested {
		row, err := toRow(list, 0)
		if err != nil {
			return nil, err
		}
		return [][]float64{row}, nil
	}

	m := make([][]float64, len(list))
	for i, item := range list {
		inner, ok := item.([]interface{})
		if !ok {
			return nil, &InvalidInputFormatError{Reason: fmt.Sprintf("row %d is not a list", i)}
		}
		row, err := toRow(inner, i)
		if err != nil {
			return nil, err
		}
		m[i] = row
	}
	return m, nil
}

func toRow(items []interface{}, row int) ([]float64, error) {
	out := make([]float64, len(items))
	for j, item := range items {
		v, ok := toFloat(item)
		if !ok {
			return nil, &InvalidInputFormatError{Reason: fmt.Sprintf("x[%d][%d] is not a number: %v", row, j, item)}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &InvalidInputFormatError{Reason: fmt.Sprintf("x[%d][%d] is not finite", row, j)}
		}
		out[j] = v
	}
	return out, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
