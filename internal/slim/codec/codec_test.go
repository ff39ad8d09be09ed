package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "000000:"},
		{"hello world", "000011:hello world"},
		{"héllo", "000006:héllo"},
	}
	for _, tc := range cases {
		if got := EncodeString(tc.in); got != tc.want {
			t.Fatalf("EncodeString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEncodeStrings(t *testing.T) {
	if got := EncodeStrings(nil); got != "000009:[000000:]" {
		t.Fatalf("empty list = %q", got)
	}
	if got := EncodeStrings([]string{"one", "two"}); got != "000031:[000002:000003:one:000003:two:]" {
		t.Fatalf("two element list = %q", got)
	}
}

func TestEncodeNestedNode(t *testing.T) {
	n := List(Scalar("id"), List(Scalar("a"), Scalar("b")))
	want := "000054:[000002:000002:id:000027:[000002:000001:a:000001:b:]:]"
	if got := n.Encode(); got != want {
		t.Fatalf("nested encode = %q, want %q", got, want)
	}
}

func TestReadString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"000000:", ""},
		{"000011:Hello world", "Hello world"},
		{"000006:héllo", "héllo"},
	}
	for _, tc := range cases {
		r := NewReader(strings.NewReader(tc.in), DefaultLimits())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ReadString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadStringList(t *testing.T) {
	r := NewReader(strings.NewReader("000009:[000000:]"), DefaultLimits())
	got, err := r.ReadStringList()
	if err != nil {
		t.Fatalf("read empty list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}

	r = NewReader(strings.NewReader("000041:[000002:000008:Element1:000008:Element2:]"), DefaultLimits())
	got, err = r.ReadStringList()
	if err != nil {
		t.Fatalf("read list: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Element1", "Element2"}) {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "with:colon", "multi\nline", "héllo wörld", "日本語"} {
		r := NewReader(strings.NewReader(EncodeString(s)), DefaultLimits())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("round trip %q: %v", s, err)
		}
		if got != s {
			t.Fatalf("round trip %q = %q", s, got)
		}
	}
}

func TestNodeRoundTrip(t *testing.T) {
	nodes := []Node{
		Scalar("value"),
		List(),
		List(Scalar("one"), Scalar("two")),
		List(Scalar("id"), List(Scalar("a"), List(Scalar("deep")), Scalar("b"))),
	}
	for _, n := range nodes {
		r := NewReader(strings.NewReader(n.Encode()), DefaultLimits())
		got, err := r.ReadNode()
		if err != nil {
			t.Fatalf("round trip %+v: %v", n, err)
		}
		if !reflect.DeepEqual(got, n) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, n)
		}
	}
}

func TestReadNodeListLookalikeStaysScalar(t *testing.T) {
	in := EncodeString("[not a list]")
	r := NewReader(strings.NewReader(in), DefaultLimits())
	got, err := r.ReadNode()
	if err != nil {
		t.Fatalf("read node: %v", err)
	}
	if got.IsList || got.Text != "[not a list]" {
		t.Fatalf("expected scalar, got %+v", got)
	}
}

func TestReadLengthErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"00003:bye", ErrShortLength},
		{"00a003:bye", ErrBadLength},
		{"000011", ErrTruncated},
	}
	for _, tc := range cases {
		r := NewReader(strings.NewReader(tc.in), DefaultLimits())
		if _, err := r.ReadLength(); !errors.Is(err, tc.want) {
			t.Fatalf("ReadLength(%q) err = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestReadStringTruncated(t *testing.T) {
	r := NewReader(strings.NewReader("000010:abc"), DefaultLimits())
	if _, err := r.ReadString(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	r := NewReader(strings.NewReader("000001:\xff"), DefaultLimits())
	if _, err := r.ReadString(); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestReadStringListBadStructuralByte(t *testing.T) {
	r := NewReader(strings.NewReader("000009:x000000:]"), DefaultLimits())
	if _, err := r.ReadStringList(); !errors.Is(err, ErrUnexpectedByte) {
		t.Fatalf("expected ErrUnexpectedByte, got %v", err)
	}
}

func TestReadStringValueTooLarge(t *testing.T) {
	r := NewReader(strings.NewReader("999999:x"), Limits{MaxValueBytes: 16, MaxListDepth: 4})
	if _, err := r.ReadString(); !errors.Is(err, ErrValueTooLarge) {
		t.Fatalf("expected ErrValueTooLarge, got %v", err)
	}
}

func TestReadNodeDepthLimit(t *testing.T) {
	n := List(Scalar("leaf"))
	for i := 0; i < 8; i++ {
		n = List(n)
	}
	r := NewReader(strings.NewReader(n.Encode()), Limits{MaxValueBytes: 1 << 20, MaxListDepth: 4})
	if _, err := r.ReadNode(); !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}
}
