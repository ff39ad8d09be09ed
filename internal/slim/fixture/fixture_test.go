package fixture

import (
	"reflect"
	"testing"

	"github.com/killertux/goslim/internal/slim/codec"
)

type nullFixture struct{}

func (nullFixture) ExecuteMethod(string, []string) (string, error) { return "", nil }

func ctorNamed(name string, log *[]string) Constructor {
	return func(args []string) Fixture {
		*log = append(*log, name)
		return nullFixture{}
	}
}

func TestRegistryResolveDirect(t *testing.T) {
	var log []string
	reg := NewRegistry()
	reg.Register("Fixtures.Calculator", ctorNamed("direct", &log))

	ctor, ok := reg.Resolve("Fixtures.Calculator", nil)
	if !ok {
		t.Fatal("expected direct hit")
	}
	ctor(nil)
	if !reflect.DeepEqual(log, []string{"direct"}) {
		t.Fatalf("constructed %v", log)
	}
}

func TestRegistryResolveEarliestImportWins(t *testing.T) {
	var log []string
	reg := NewRegistry()
	reg.Register("Namespace1.X", ctorNamed("ns1", &log))
	reg.Register("Namespace2.X", ctorNamed("ns2", &log))

	ctor, ok := reg.Resolve("X", []string{"Namespace2", "Namespace1"})
	if !ok {
		t.Fatal("expected import hit")
	}
	ctor(nil)
	if !reflect.DeepEqual(log, []string{"ns2"}) {
		t.Fatalf("constructed %v, want earliest import", log)
	}
}

func TestRegistryResolveMiss(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Resolve("Nope", []string{"Also.Nope"}); ok {
		t.Fatal("expected miss")
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&MethodNotFoundError{Method: "sum", Class: "Fixtures.Calculator"}, "NO_METHOD_IN_CLASS sum Fixtures.Calculator"},
		{&ArgumentError{Index: 0}, "NO_CONVERTER_FOR_ARGUMENT_NUMBER 0"},
		{&ExecutionError{Text: "division by zero"}, "division by zero"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestListString(t *testing.T) {
	if got := ListString(); got != "/__ARRAY[]__/" {
		t.Fatalf("empty list marker = %q", got)
	}
	if got := ListString("1", "2", "3"); got != "/__ARRAY[1__|__2__|__3]__/" {
		t.Fatalf("list marker = %q", got)
	}
}

func TestParseList(t *testing.T) {
	items, ok := ParseList("/__ARRAY[a__|__b]__/")
	if !ok {
		t.Fatal("expected marker")
	}
	want := []codec.Node{codec.Scalar("a"), codec.Scalar("b")}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("items = %+v", items)
	}

	if _, ok := ParseList("plain value"); ok {
		t.Fatal("plain value is not a marker")
	}

	items, ok = ParseList(ListString())
	if !ok || len(items) != 0 {
		t.Fatalf("empty marker = %+v, %v", items, ok)
	}
}

func TestParseListNested(t *testing.T) {
	nested := ListString("a", ListString("b", "c"), "d")
	items, ok := ParseList(nested)
	if !ok {
		t.Fatal("expected marker")
	}
	want := []codec.Node{
		codec.Scalar("a"),
		codec.List(codec.Scalar("b"), codec.Scalar("c")),
		codec.Scalar("d"),
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("items = %+v, want %+v", items, want)
	}
}

func TestParseListRoundTripThroughListString(t *testing.T) {
	single, ok := ParseList(ListString("only"))
	if !ok || len(single) != 1 || single[0].Text != "only" {
		t.Fatalf("single = %+v, %v", single, ok)
	}
}
