// Package protocol defines the SLIM protocol model: the instruction and
// result tagged unions, correlation ids, exception messages, and the session
// greeting/bye frames shared by both ends of a connection.
package protocol

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Version is a negotiated SLIM protocol version token.
type Version string

const (
	V0_3 Version = "V0.3"
	V0_4 Version = "V0.4"
	V0_5 Version = "V0.5"
)

// CurrentVersion is the version the serving side announces.
const CurrentVersion = V0_5

// greetingLen is the exact byte length of the handshake line.
const greetingLen = 13

// VoidSentinel is the reserved string a fixture returns to signal "no
// result". It is distinct from OK and from an empty string value.
const VoidSentinel = "/__VOID__/"

const exceptionPrefix = "__EXCEPTION__:"

var (
	ErrInvalidGreeting    = errors.New("protocol: invalid greeting")
	ErrUnsupportedVersion = errors.New("protocol: unsupported version")
)

// Greeting returns the serving side's handshake line for version v.
func Greeting(v Version) string {
	return fmt.Sprintf("Slim -- %s\n", v)
}

// WriteGreeting announces the current protocol version.
func WriteGreeting(w io.Writer) error {
	_, err := io.WriteString(w, Greeting(CurrentVersion))
	return err
}

// ReadGreeting consumes exactly the handshake line and parses the version
// token. Anything but a known version is a fatal connection error.
func ReadGreeting(r io.Reader) (Version, error) {
	buf := make([]byte, greetingLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidGreeting, err)
	}
	_, token, ok := strings.Cut(string(buf), " -- ")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidGreeting, string(buf))
	}
	switch v := Version(strings.TrimSpace(token)); v {
	case V0_3, V0_4, V0_5:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedVersion, strings.TrimSpace(token))
	}
}

// Id correlates an instruction with its result. Only equality matters.
type Id string

// NewId generates a fresh correlation token.
func NewId() Id {
	return Id(uuid.NewString())
}

// ExceptionMessage wraps the raw exception text carried by an exception
// result.
type ExceptionMessage struct {
	raw string
}

var ErrUnterminatedMessageBlock = errors.New("protocol: unterminated message:<< block")

func NewExceptionMessage(raw string) ExceptionMessage {
	return ExceptionMessage{raw: raw}
}

// Raw returns the exception text exactly as transmitted.
func (m ExceptionMessage) Raw() string {
	return m.raw
}

// Pretty returns the inner span of a "message:<<...>>" block when present,
// or the raw text otherwise. An opening marker without a closing marker is a
// decode failure, not an absent block.
func (m ExceptionMessage) Pretty() (string, error) {
	_, rest, ok := strings.Cut(m.raw, "message:<<")
	if !ok {
		return m.raw, nil
	}
	inner, _, ok := strings.Cut(rest, ">>")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnterminatedMessageBlock, m.raw)
	}
	return inner, nil
}
