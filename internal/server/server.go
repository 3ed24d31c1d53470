// Package server runs the TCP accept loop that turns raw sockets into
// supervised protocol connections: one goroutine per accepted peer,
// mirroring the accept-loop/handleConnection shape a relay server uses,
// adapted to the native API's single-exchange-per-socket model.
package server

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/esphome-native/api-server/internal/audit"
	"github.com/esphome-native/api-server/internal/config"
	"github.com/esphome-native/api-server/internal/entities"
	"github.com/esphome-native/api-server/internal/metrics"
	"github.com/esphome-native/api-server/pkg/conn"
	"github.com/esphome-native/api-server/pkg/schema"
)

// Server accepts native API connections and drives each one to
// completion.
type Server struct {
	cfg      *config.Config
	version  schema.Version
	entities *entities.Registry
	audit    *audit.Log

	registry *Registry
	nextID   atomic.Int64
}

// New builds a Server. auditLog may be nil to disable connection
// lifecycle persistence.
func New(cfg *config.Config, version schema.Version, entityRegistry *entities.Registry, auditLog *audit.Log) *Server {
	return &Server{
		cfg:      cfg,
		version:  version,
		entities: entityRegistry,
		audit:    auditLog,
		registry: newRegistry(),
	}
}

// Registry exposes the connection registry, mainly so internal/httpstatus
// can report how many connections are open.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run listens on cfg.Listen and serves connections until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Listen, err)
	}
	logrus.WithField("addr", s.cfg.Listen).Info("native API server listening")

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		netConn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return fmt.Errorf("server: accept: %w", err)
		}
		metrics.ConnectionsAccepted.Inc()
		go s.handleConnection(ctx, netConn)
	}
}

func (s *Server) handleConnection(ctx context.Context, netConn net.Conn) {
	id := fmt.Sprintf("conn-%d", s.nextID.Add(1))
	log := logrus.WithFields(logrus.Fields{"connection_id": id, "remote_addr": netConn.RemoteAddr().String()})

	s.recordAudit(id, netConn.RemoteAddr().String(), "accepted", "")

	c, err := conn.Open(id, netConn, s.cfg, s.version, conn.NewBus())
	if err != nil {
		log.WithError(err).Warn("connection negotiation failed")
		s.recordAudit(id, netConn.RemoteAddr().String(), "negotiation_failed", err.Error())
		netConn.Close()
		metrics.HandshakesTotal.WithLabelValues("failure").Inc()
		return
	}
	metrics.HandshakesTotal.WithLabelValues("success").Inc()
	metrics.ConnectionsOpen.Inc()
	defer metrics.ConnectionsOpen.Dec()

	s.recordAudit(id, c.RemoteAddr, "open", c.Mode().String())
	s.registry.add(c)
	defer s.registry.remove(id)

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go entities.Serve(connCtx, c, s.entities)

	if err := c.Run(connCtx); err != nil {
		log.WithError(err).Info("connection closed")
		s.recordAudit(id, c.RemoteAddr, "closed", err.Error())
		return
	}
	s.recordAudit(id, c.RemoteAddr, "closed", "")
}

func (s *Server) recordAudit(id, remoteAddr, stage, detail string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(id, remoteAddr, stage, detail); err != nil {
		logrus.WithError(err).Warn("audit: record failed")
	}
}
