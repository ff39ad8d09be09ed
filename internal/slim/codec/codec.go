// Package codec implements the self-delimiting SLIM wire grammar: every value
// is a 6-digit byte length, a colon, and exactly that many payload bytes.
// Lists nest by encoding each element as its own self-delimited value inside a
// bracketed, count-prefixed payload.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// LengthDigits is the minimum width of a length field.
const LengthDigits = 6

var (
	ErrShortLength   = errors.New("codec: length field shorter than 6 digits")
	ErrBadLength     = errors.New("codec: malformed length field")
	ErrUnexpectedByte = errors.New("codec: unexpected byte")
	ErrTruncated     = errors.New("codec: truncated value")
	ErrInvalidUTF8   = errors.New("codec: invalid utf-8 in payload")
	ErrValueTooLarge = errors.New("codec: value exceeds size limit")
	ErrDepthExceeded = errors.New("codec: list nesting exceeds depth limit")
)

// Limits constrains decode memory and recursion.
type Limits struct {
	MaxValueBytes int
	MaxListDepth  int
}

func DefaultLimits() Limits {
	return Limits{
		MaxValueBytes: 8 * 1024 * 1024,
		MaxListDepth:  64,
	}
}

// Node is one decoded SLIM value: either a scalar string or a list of nodes.
type Node struct {
	IsList bool
	Text   string
	Items  []Node
}

func Scalar(text string) Node {
	return Node{Text: text}
}

func List(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{IsList: true, Items: items}
}

// Encode returns the fully self-delimited wire form of the node.
func (n Node) Encode() string {
	if !n.IsList {
		return EncodeString(n.Text)
	}
	var b strings.Builder
	b.WriteByte('[')
	fmt.Fprintf(&b, "%06d:", len(n.Items))
	for _, item := range n.Items {
		b.WriteString(item.Encode())
		b.WriteByte(':')
	}
	b.WriteByte(']')
	return EncodeString(b.String())
}

// EncodeString length-prefixes one scalar payload. Lengths count bytes and
// are zero-padded to six digits; longer payloads grow the field naturally.
func EncodeString(s string) string {
	return fmt.Sprintf("%06d:%s", len(s), s)
}

// EncodeStrings encodes a flat list of scalars.
func EncodeStrings(values []string) string {
	items := make([]Node, len(values))
	for i, v := range values {
		items[i] = Scalar(v)
	}
	return List(items...).Encode()
}

// Reader decodes SLIM values from a byte stream.
type Reader struct {
	r      *bufio.Reader
	limits Limits
}

func NewReader(r io.Reader, limits Limits) *Reader {
	return &Reader{r: bufio.NewReader(r), limits: limits}
}

// ReadLength consumes a length field up to and including its colon.
func (r *Reader) ReadLength() (int, error) {
	raw, err := r.r.ReadBytes(':')
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	digits := raw[:len(raw)-1]
	if len(digits) < LengthDigits {
		return 0, ErrShortLength
	}
	n := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrBadLength, string(digits))
		}
		n = n*10 + int(c-'0')
		if n > r.limits.MaxValueBytes {
			return 0, ErrValueTooLarge
		}
	}
	return n, nil
}

// ReadByte consumes one byte from the stream.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return b, nil
}

// ExpectByte consumes one byte and fails unless it matches want.
func (r *Reader) ExpectByte(want byte) error {
	got, err := r.ReadByte()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: expected %q, got %q", ErrUnexpectedByte, string(want), string(got))
	}
	return nil
}

// ReadString decodes one scalar value.
func (r *Reader) ReadString() (string, error) {
	payload, err := r.readPayload()
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// ReadStringList decodes a value whose payload must be a list of scalars.
// The outer length is framing only; the list body is consumed structurally.
func (r *Reader) ReadStringList() ([]string, error) {
	if _, err := r.ReadLength(); err != nil {
		return nil, err
	}
	if err := r.ExpectByte('['); err != nil {
		return nil, err
	}
	count, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if err := r.ExpectByte(':'); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := r.ExpectByte(']'); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadNode decodes one value whose payload may be a scalar or a nested list.
// A payload is treated as a list only when it parses as one in full; anything
// else is a scalar. Nesting past the configured depth limit is fatal.
func (r *Reader) ReadNode() (Node, error) {
	payload, err := r.readPayload()
	if err != nil {
		return Node{}, err
	}
	return nodeFromPayload(string(payload), 0, r.limits.MaxListDepth)
}

func (r *Reader) readPayload() ([]byte, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	if !utf8.Valid(payload) {
		return nil, ErrInvalidUTF8
	}
	return payload, nil
}

func nodeFromPayload(payload string, depth, maxDepth int) (Node, error) {
	if depth > maxDepth {
		return Node{}, ErrDepthExceeded
	}
	if len(payload) == 0 || payload[0] != '[' {
		return Scalar(payload), nil
	}
	items, err := parseListPayload(payload, depth, maxDepth)
	if errors.Is(err, ErrDepthExceeded) {
		return Node{}, err
	}
	if err != nil {
		// A scalar is allowed to look list-ish without being one.
		return Scalar(payload), nil
	}
	return List(items...), nil
}

// parseListPayload parses "[CCCCCC:value:value:...:]" where each value is
// itself a self-delimited encoding. The whole payload must be consumed.
func parseListPayload(payload string, depth, maxDepth int) ([]Node, error) {
	pos := 1 // past '['
	count, pos, err := parseLength(payload, pos)
	if err != nil {
		return nil, err
	}
	items := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		var elem string
		elem, pos, err = parseValue(payload, pos)
		if err != nil {
			return nil, err
		}
		if pos >= len(payload) || payload[pos] != ':' {
			return nil, ErrUnexpectedByte
		}
		pos++
		node, err := nodeFromPayload(elem, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		items = append(items, node)
	}
	if pos != len(payload)-1 || payload[pos] != ']' {
		return nil, ErrUnexpectedByte
	}
	return items, nil
}

func parseValue(payload string, pos int) (string, int, error) {
	n, pos, err := parseLength(payload, pos)
	if err != nil {
		return "", 0, err
	}
	if pos+n > len(payload) {
		return "", 0, ErrTruncated
	}
	return payload[pos : pos+n], pos + n, nil
}

func parseLength(payload string, pos int) (int, int, error) {
	start := pos
	n := 0
	for pos < len(payload) && payload[pos] >= '0' && payload[pos] <= '9' {
		n = n*10 + int(payload[pos]-'0')
		pos++
	}
	if pos-start < LengthDigits {
		return 0, 0, ErrShortLength
	}
	if pos >= len(payload) || payload[pos] != ':' {
		return 0, 0, ErrUnexpectedByte
	}
	return n, pos + 1, nil
}
