// Package client implements the connecting side of the SLIM protocol: it
// performs the version handshake, sends instruction batches, blocks for the
// matching result batch, and guarantees the bye frame is sent exactly once.
package client

import (
	"errors"
	"io"
	"net"

	"github.com/killertux/goslim/internal/slim/codec"
	"github.com/killertux/goslim/internal/slim/protocol"
)

var ErrClosed = errors.New("client: connection closed")

// Conn is one SLIM session. It is not safe for concurrent use; the protocol
// is strictly one round trip at a time.
type Conn struct {
	reader  *codec.Reader
	writer  io.Writer
	closer  io.Closer
	version protocol.Version
	closed  bool
}

// New performs the handshake over an established byte stream. Connection
// establishment, including any retrying, is the caller's concern.
func New(r io.Reader, w io.Writer) (*Conn, error) {
	return newConn(r, w, nil)
}

// Dial connects over TCP and performs the handshake. Close releases the
// underlying connection after the bye frame.
func Dial(addr string) (*Conn, error) {
	tcp, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := newConn(tcp, tcp, tcp)
	if err != nil {
		tcp.Close()
		return nil, err
	}
	return conn, nil
}

func newConn(r io.Reader, w io.Writer, closer io.Closer) (*Conn, error) {
	version, err := protocol.ReadGreeting(r)
	if err != nil {
		return nil, err
	}
	return &Conn{
		reader:  codec.NewReader(r, codec.DefaultLimits()),
		writer:  w,
		closer:  closer,
		version: version,
	}, nil
}

// Version reports the version announced by the serving side.
func (c *Conn) Version() protocol.Version {
	return c.version
}

// SendInstructions performs exactly one round trip: it writes the batch and
// blocks for the matching result batch. Malformed or truncated frames are
// connection-fatal.
func (c *Conn) SendInstructions(batch []protocol.Instruction) ([]protocol.InstructionResult, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if _, err := io.WriteString(c.writer, protocol.EncodeInstructions(batch)); err != nil {
		return nil, err
	}
	return protocol.ReadResultBatch(c.reader)
}

// Close sends the bye frame and releases the transport. It is idempotent so
// it can sit in a defer on every exit path; the bye frame is written at most
// once per session.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	byeErr := protocol.WriteBye(c.writer)
	if c.closer != nil {
		if err := c.closer.Close(); err != nil && byeErr == nil {
			return err
		}
	}
	return byeErr
}
