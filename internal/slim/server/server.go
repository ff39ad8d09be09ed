package server

import (
	"net"

	"github.com/rs/zerolog"

	"github.com/killertux/goslim/internal/slim/codec"
	"github.com/killertux/goslim/internal/slim/fixture"
)

// Server accepts TCP connections and runs one isolated session per
// connection. Only the fixture registry is shared, read-only.
type Server struct {
	registry *fixture.Registry
	limits   codec.Limits
	log      zerolog.Logger
}

func New(registry *fixture.Registry, limits codec.Limits, log zerolog.Logger) *Server {
	return &Server{registry: registry, limits: limits, log: log}
}

func (s *Server) ListenAndServe(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer l.Close()
	s.log.Info().Str("addr", l.Addr().String()).Msg("listening")
	return s.Serve(l)
}

// Serve accepts connections until the listener fails or is closed.
func (s *Server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	log := s.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Info().Msg("session started")
	sess := NewSession(s.registry, conn, conn, s.limits, log)
	if err := sess.Run(); err != nil {
		log.Error().Err(err).Msg("session aborted")
		return
	}
	log.Info().Msg("session finished")
}
