package service

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The HTTP clients are loose about numeric fields: price and quantity arrive
// either as JSON numbers or as numeric strings. These helpers coerce both and
// reject everything else, so a malformed value fails a request before any
// write happens.

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return int(f), nil
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, nil
		}
		// parseInt-style truncation of fractional strings
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, err
		}
		return int(f), nil
	}
	return 0, fmt.Errorf("not an integer: %v", v)
}
