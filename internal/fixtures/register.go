package fixtures

import "github.com/killertux/goslim/internal/slim/fixture"

// Register installs the bundled fixtures into a registry.
func Register(reg *fixture.Registry) {
	reg.Register(CalculatorClassPath, NewCalculator)
	reg.Register(EchoClassPath, NewEcho)
}
