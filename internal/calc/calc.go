// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package calc evaluates simple arithmetic expressions for the
// calculator tool. Failures come back as in-band text: the tool boundary
// never sees an error value.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

// allowedChars restricts input to arithmetic before handing it to the
// expression engine, which would otherwise accept a full language.
const allowedChars = "0123456789+-*/. ()"

// Evaluate computes an arithmetic expression like "2 + 2" or
// "10 * 5 / 2 - 3" and returns the result as a string, or an error
// message starting with "Error".
func Evaluate(expression string) string {
	for _, r := range expression {
		if !strings.ContainsRune(allowedChars, r) {
			return "Error: Invalid characters in expression."
		}
	}

	program, err := expr.Compile(expression)
	if err != nil {
		return fmt.Sprintf("Error evaluating expression: %v", err)
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return fmt.Sprintf("Error evaluating expression: %v", err)
	}
	if f, ok := out.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return "Error evaluating expression: division by zero"
	}
	return formatValue(out)
}

func formatValue(v any) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
