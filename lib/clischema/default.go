// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clischema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// coerceDefault converts a decoded default value to the Go type used
// for argType. Decoders disagree on scalar types, so every numeric
// kind they can produce is accepted; strings are parsed.
func coerceDefault(argType ArgType, value any) (any, error) {
	switch argType {
	case Integer:
		return coerceInteger(value)
	case Float:
		return coerceFloat(value)
	case String:
		return coerceString(value)
	case Flag:
		return coerceBool(value)
	case Text:
		return coerceText(value)
	default:
		return nil, fmt.Errorf("unhandled type %s", argType)
	}
}

func coerceInteger(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		if v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, fmt.Errorf("%v overflows int64", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("cannot use %T as integer", value)
	}
}

func coerceFloat(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("cannot use %T as float", value)
	}
}

func coerceString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int, int64, uint64, float64, bool, json.Number:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("cannot use %T as string", value)
	}
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return false, fmt.Errorf("cannot use %T as flag", value)
	}
}

func coerceText(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []any:
		text := make([]string, 0, len(v))
		for i, element := range v {
			word, err := coerceString(element)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			text = append(text, word)
		}
		return text, nil
	default:
		return nil, fmt.Errorf("text default must be a list, got %T", value)
	}
}

// FormatValue renders a bound or default value the way it would be
// typed on a command line: integers in base 10, floats in their
// shortest form, flags as true/false, text as space-joined words.
// A nil value renders as "".
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, " ")
	default:
		return fmt.Sprint(v)
	}
}
