package server

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/killertux/goslim/internal/observability"
	"github.com/killertux/goslim/internal/slim/codec"
	"github.com/killertux/goslim/internal/slim/fixture"
	"github.com/killertux/goslim/internal/slim/protocol"
)

// Session drives the SLIM protocol over one byte stream: greeting, strictly
// sequential round trips, teardown on the bye frame. All interpreter state
// lives and dies with the session.
type Session struct {
	interp *Interpreter
	reader *codec.Reader
	writer io.Writer
	log    zerolog.Logger
}

func NewSession(registry *fixture.Registry, r io.Reader, w io.Writer, limits codec.Limits, log zerolog.Logger) *Session {
	return &Session{
		interp: NewInterpreter(registry, log),
		reader: codec.NewReader(r, limits),
		writer: w,
		log:    log,
	}
}

// Run blocks until the peer says bye or the connection fails. Decode and IO
// errors are connection-fatal; instruction-scoped failures are not errors
// here, they travel back as exception results.
func (s *Session) Run() error {
	observability.RecordSession()
	if err := protocol.WriteGreeting(s.writer); err != nil {
		return err
	}
	for {
		batch, bye, err := protocol.ReadInstructionBatch(s.reader)
		if err != nil {
			return err
		}
		if bye {
			s.log.Debug().Msg("peer said bye")
			return nil
		}
		results := s.interp.Process(batch)
		if _, err := io.WriteString(s.writer, protocol.EncodeResults(results)); err != nil {
			return err
		}
	}
}
