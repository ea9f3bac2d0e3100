package server

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/jyami/userstore/internal/resp"
	"go.uber.org/zap"
)

// Server accepts TCP connections and serves every client in its own goroutine
type Server struct {
	engine          *Engine
	logger          *zap.Logger
	shutdownTimeout time.Duration

	wg    sync.WaitGroup
	mu    sync.Mutex
	peers map[*Peer]struct{}
}

// NewServer creates a server around the engine. shutdownTimeout bounds how long Serve waits
// for open connections after its context is cancelled
func NewServer(engine *Engine, logger *zap.Logger, shutdownTimeout time.Duration) *Server {
	return &Server{
		engine:          engine,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
		peers:           make(map[*Peer]struct{}),
	}
}

// Serve accepts connections on ln until ctx is cancelled, then closes the listener and waits
// for clients to finish. Connections still open after the shutdown timeout are closed forcibly
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			ln.Close() //nolint:errcheck
		case <-stopped:
		}
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept error", zap.Error(err))
			continue
		}

		peer := NewPeer(conn)
		s.track(peer, true)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.track(peer, false)
			s.handleConnection(peer)
		}()
	}

	if ctx.Err() == nil {
		return net.ErrClosed
	}

	s.shutdown()
	return nil
}

func (s *Server) track(p *Peer, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.peers[p] = struct{}{}
	} else {
		delete(s.peers, p)
	}
}

func (s *Server) shutdown() {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("all connections closed gracefully")
		return
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn("shutdown timed out, closing connections", zap.Duration("timeout", s.shutdownTimeout))
	}

	s.mu.Lock()
	for p := range s.peers {
		p.Close() //nolint:errcheck
	}
	s.mu.Unlock()

	<-done
}

// handleConnection serves a single client until it disconnects
func (s *Server) handleConnection(peer *Peer) {
	log := s.logger.With(zap.String("addr", peer.Addr()))
	if log.Core().Enabled(zap.DebugLevel) {
		log.Debug("client connected")
	}

	defer func() {
		peer.Close() //nolint:errcheck
		if log.Core().Enabled(zap.DebugLevel) {
			log.Debug("client disconnected")
		}
	}()

	for {
		cmdValue, err := peer.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn("read command failed", zap.Error(err))
			// the stream is out of sync, report and drop the client
			if peer.Send(resp.MakeErrorf("ERR", "Protocol error: %s", err)) == nil {
				peer.Flush() //nolint:errcheck
			}
			return
		}

		if err = s.reply(peer, cmdValue); err != nil {
			log.Error("error writing response", zap.Error(err))
			return
		}

		// flush once the pipelined batch is drained
		if peer.InputBuffered() == 0 {
			if err := peer.Flush(); err != nil {
				return
			}
		}
	}
}

// reply executes one decoded request and buffers the result, empty arrays are ignored
func (s *Server) reply(peer *Peer, cmdValue resp.Value) error {
	if cmdValue.Type != resp.TypeArray || cmdValue.IsNull {
		return peer.Send(resp.MakeError("ERR Protocol error: expected array of bulk strings"))
	}
	if len(cmdValue.Array) == 0 {
		return nil
	}
	return peer.Send(s.engine.Execute(cmdValue.Array[0].Text(), cmdValue.Array[1:]))
}
