// Package date turns relative date expressions ("tomorrow", "3 days ago") into
// calendar dates in a given timezone.
package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unit of a numeric offset
type Unit string

const (
	Day   Unit = "day"
	Week  Unit = "week"
	Month Unit = "month"
)

// Direction of a numeric offset
type Direction string

const (
	Past   Direction = "past"
	Future Direction = "future"
)

// Named relative expressions
const (
	Today     = "today"
	Tomorrow  = "tomorrow"
	Yesterday = "yesterday"
	ThisWeek  = "this week"
	NextWeek  = "next week"
	LastWeek  = "last week"
	ThisMonth = "this month"
	NextMonth = "next month"
	LastMonth = "last month"
)

var namedExpressions = []string{
	Today, Tomorrow, Yesterday,
	ThisWeek, NextWeek, LastWeek,
	ThisMonth, NextMonth, LastMonth,
}

// Patterns are tried in order; the first match wins.
var offsetPatterns = []struct {
	re        *regexp.Regexp
	unit      Unit
	direction Direction
}{
	{regexp.MustCompile(`(\d+)\s*days?\s*ago`), Day, Past},
	{regexp.MustCompile(`(\d+)\s*days?\s*later`), Day, Future},
	{regexp.MustCompile(`(\d+)\s*weeks?\s*ago`), Week, Past},
	{regexp.MustCompile(`(\d+)\s*weeks?\s*later`), Week, Future},
	{regexp.MustCompile(`(\d+)\s*months?\s*ago`), Month, Past},
	{regexp.MustCompile(`(\d+)\s*months?\s*later`), Month, Future},
}

// Expression is a parsed relative date. Either Name is set, or Amount, Unit
// and Direction describe an offset from today.
type Expression struct {
	Name      string
	Amount    int
	Unit      Unit
	Direction Direction
}

// IsNamed reports whether the expression is one of the fixed names.
func (e Expression) IsNamed() bool {
	return e.Name != ""
}

// Parse parses a relative date expression. Matching ignores case and
// surrounding whitespace.
func Parse(expression string) (Expression, error) {
	expr := strings.ToLower(strings.TrimSpace(expression))
	if expr == "" {
		return Expression{}, invalidExpression(expression)
	}

	for _, name := range namedExpressions {
		if expr == name {
			return Expression{Name: name}, nil
		}
	}

	for _, p := range offsetPatterns {
		match := p.re.FindStringSubmatch(expr)
		if match == nil {
			continue
		}
		amount, err := strconv.Atoi(match[1])
		if err != nil || amount < 0 {
			return Expression{}, invalidExpression(expression)
		}
		return Expression{Amount: amount, Unit: p.unit, Direction: p.direction}, nil
	}

	return Expression{}, invalidExpression(expression)
}

func invalidExpression(expression string) error {
	return fmt.Errorf("%w: %q, use a supported date expression", ErrInvalidExpression, expression)
}
