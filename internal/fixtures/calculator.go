// Package fixtures bundles the demo fixtures served by slimd and used by the
// engine tests.
package fixtures

import (
	"strconv"

	"github.com/killertux/goslim/internal/slim/fixture"
	"github.com/killertux/goslim/internal/slim/protocol"
)

const CalculatorClassPath = "Fixtures.Calculator"

// Calculator is the classic two-register acceptance-test fixture.
type Calculator struct {
	a, b int64
}

func NewCalculator(args []string) fixture.Fixture {
	return &Calculator{}
}

func (c *Calculator) ExecuteMethod(method string, args []string) (string, error) {
	switch method {
	case "set_a":
		v, err := intArg(args, 0)
		if err != nil {
			return "", err
		}
		c.a = v
		return protocol.VoidSentinel, nil
	case "set_b":
		v, err := intArg(args, 0)
		if err != nil {
			return "", err
		}
		c.b = v
		return protocol.VoidSentinel, nil
	case "sum":
		return strconv.FormatInt(c.a+c.b, 10), nil
	case "mul":
		return strconv.FormatInt(c.a*c.b, 10), nil
	case "sub":
		return strconv.FormatInt(c.a-c.b, 10), nil
	case "div":
		if c.b == 0 {
			return "", &fixture.ExecutionError{Text: "message:<<division by zero>>"}
		}
		return strconv.FormatInt(c.a/c.b, 10), nil
	default:
		return "", &fixture.MethodNotFoundError{Method: method, Class: CalculatorClassPath}
	}
}

func intArg(args []string, index int) (int64, error) {
	if index >= len(args) {
		return 0, &fixture.ArgumentError{Index: index}
	}
	v, err := strconv.ParseInt(args[index], 10, 64)
	if err != nil {
		return 0, &fixture.ArgumentError{Index: index}
	}
	return v, nil
}
