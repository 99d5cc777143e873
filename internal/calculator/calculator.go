package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
)

var ErrInvalidAmount = errors.New("invalid amount")

var amountReplacer = strings.NewReplacer(",", "", "，", "", "円", "", "¥", "", "￥", "")

// Evaluate turns the amount typed by the user into a number. Plain numbers
// and arithmetic such as "30000*12" are accepted; digit grouping commas and a
// yen sign are ignored. The result must be a finite, non-negative number.
func Evaluate(input string) (float64, error) {
	text := strings.TrimSpace(amountReplacer.Replace(input))
	if text == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	expression, err := govaluate.NewEvaluableExpression(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, input, err)
	}
	if len(expression.Vars()) > 0 {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, input)
	}
	result, err := expression.Evaluate(nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, input, err)
	}

	amount, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, input)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidAmount, input)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, input)
	}
	return amount, nil
}
