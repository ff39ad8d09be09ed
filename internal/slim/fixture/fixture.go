// Package fixture defines the capability interface the interpreter consumes
// from fixture implementations, the class-path registry that constructs them,
// and the string conventions for void and list return values.
package fixture

// Fixture is a live fixture instance. ExecuteMethod receives the method name
// already converted to the fixture-side casing convention and arguments with
// symbols already substituted. The returned string is either an ordinary
// value, the void sentinel, or a list marker.
type Fixture interface {
	ExecuteMethod(method string, args []string) (string, error)
}

// Constructor builds a fixture instance from the Make instruction's
// arguments.
type Constructor func(args []string) Fixture
