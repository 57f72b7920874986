package service

import "strings"

// Upperize uppercases every string reachable from value: strings directly,
// slices and maps element-wise. Everything else passes through unchanged.
// It never mutates its input.
func Upperize(value any) any {
	switch v := value.(type) {
	case string:
		return strings.ToUpper(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Upperize(elem)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = strings.ToUpper(s)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = Upperize(elem)
		}
		return out
	default:
		return value
	}
}
