package toolkit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// stringArg reads a string argument. Numbers and booleans are rendered
// as their canonical text so "amount": 0.5 and "amount": "0.5" behave alike.
func stringArg(args map[string]any, key string, required bool) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return "", Failf("missing argument '%s'", key)
		}
		return "", nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = decimal.NewFromFloat(t).String()
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case bool:
		s = strconv.FormatBool(t)
	case fmt.Stringer:
		s = t.String()
	default:
		return "", Failf("argument '%s' must be a string", key)
	}
	s = strings.TrimSpace(s)
	if s == "" && required {
		return "", Failf("missing argument '%s'", key)
	}
	return s, nil
}

// amountArg reads a strictly positive decimal amount.
func amountArg(args map[string]any, key string) (decimal.Decimal, error) {
	s, err := stringArg(args, key, true)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, Failf("argument '%s' is not a number: %q", key, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, Failf("argument '%s' must be greater than zero", key)
	}
	return d, nil
}

// boolArg reads an optional boolean; strings like "true" are accepted.
func boolArg(args map[string]any, key string) (bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return false, nil
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, Failf("argument '%s' must be a boolean", key)
		}
		return b, nil
	default:
		return false, Failf("argument '%s' must be a boolean", key)
	}
}

// stringSliceArg reads an optional list of strings; a single string is
// split on commas.
func stringSliceArg(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	var out []string
	switch t := v.(type) {
	case string:
		for _, p := range strings.Split(t, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	case []string:
		out = append(out, t...)
	case []any:
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, Failf("argument '%s' must be a list of strings", key)
			}
			out = append(out, strings.TrimSpace(s))
		}
	default:
		return nil, Failf("argument '%s' must be a list of strings", key)
	}
	return out, nil
}
