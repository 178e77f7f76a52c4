package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"fibd/compute"
	"fibd/config"
	errs "fibd/internal/errors"
	"fibd/internal/metrics"
	"fibd/util"
)

// Server accepts TCP connections and hands each one to an independent
// session.  It is the sole producer of connections; sessions never
// share state with it or with each other.
type Server struct {
	cfg  *config.Config
	svc  compute.Service
	log  *util.Logger
	mets *metrics.Collector

	nextID   atomic.Uint64
	sessions sync.WaitGroup
}

// New returns a ready-to-run Server.
func New(cfg *config.Config, svc compute.Service, logger *util.Logger) *Server {
	return &Server{cfg: cfg, svc: svc, log: logger, mets: metrics.New()}
}

// Metrics exposes the server's runtime counters.
func (s *Server) Metrics() *metrics.Collector {
	return s.mets
}

// ListenAndServe binds the configured port and accepts until the
// context is cancelled.  A failed bind is fatal and returned to the
// caller; a failed accept is logged and the loop continues.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errs.Wrap("listen", addr, err)
	}
	defer ln.Close()

	s.log.Info("listening on %s (tcp), idle timeout %v", ln.Addr(), s.cfg.IdleTimeout)

	// Shut the listener down when the context expires; that unblocks
	// the Accept below.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || util.IsClosedErr(err) {
				// Shutdown: stop accepting, give live sessions a
				// moment to finish.
				s.drain()
				return nil
			}
			s.log.Warn("accept: %v", err)
			s.mets.RecordError(err.Error())
			continue
		}

		s.log.Verbose("connection from %s", conn.RemoteAddr())
		s.startSession(conn)
	}
}

// startSession hands conn to a new session goroutine.  The accept loop
// never waits on it.
func (s *Server) startSession(conn net.Conn) {
	id := s.nextID.Add(1)
	sess := newSession(id, conn, s.svc, s.cfg.IdleTimeout,
		s.log.WithPrefix(fmt.Sprintf("session %d", id)), s.mets)

	s.mets.SessionOpened()
	s.sessions.Add(1)
	go func() {
		defer s.sessions.Done()
		defer s.mets.SessionClosed()
		sess.Run()
	}()
}

// drain waits for live sessions up to the grace period.
func (s *Server) drain() {
	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()

	grace := s.cfg.GracePeriod
	if grace <= 0 {
		grace = config.DefaultGracePeriod
	}

	select {
	case <-done:
		s.log.Verbose("all sessions finished")
	case <-time.After(grace):
		s.log.Warn("shutdown grace period expired with %d sessions still live",
			s.mets.ActiveSessions())
	}

	s.log.Verbose("final stats: %s", s.mets.JSON())
}
