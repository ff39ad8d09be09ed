package fixtures

import (
	"strings"

	"github.com/killertux/goslim/internal/slim/fixture"
)

const EchoClassPath = "Fixtures.Echo"

// Echo returns its arguments back, remembering the last value it saw.
type Echo struct {
	last string
}

func NewEcho(args []string) fixture.Fixture {
	return &Echo{}
}

func (e *Echo) ExecuteMethod(method string, args []string) (string, error) {
	switch method {
	case "echo":
		if len(args) < 1 {
			return "", &fixture.ArgumentError{Index: 0}
		}
		e.last = args[0]
		return args[0], nil
	case "last_echo":
		return e.last, nil
	case "words":
		if len(args) < 1 {
			return "", &fixture.ArgumentError{Index: 0}
		}
		return fixture.ListString(strings.Fields(args[0])...), nil
	default:
		return "", &fixture.MethodNotFoundError{Method: method, Class: EchoClassPath}
	}
}
