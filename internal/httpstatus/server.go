// Package httpstatus exposes the device's status and audit trail over
// plain HTTP, separate from the native API socket: a small gin server a
// human or a monitoring tool can poll without speaking the wire protocol.
package httpstatus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/esphome-native/api-server/internal/audit"
	"github.com/esphome-native/api-server/pkg/schema"
)

// ConnectionCounter reports how many native API connections are currently
// open. internal/server's connection registry implements this.
type ConnectionCounter interface {
	Count() int
}

// Server is the HTTP status surface for one device.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server

	deviceInfo *schema.DeviceInfoResponse
	counter    ConnectionCounter
	auditLog   *audit.Log
}

// StatusResponse is the body served by GET /status.
type StatusResponse struct {
	Name              string `json:"name"`
	FriendlyName      string `json:"friendlyName"`
	ESPHomeVersion    string `json:"esphomeVersion"`
	APIEncryption     bool   `json:"apiEncryptionSupported"`
	OpenConnections   int    `json:"openConnections"`
	ServedAtUnixEpoch int64  `json:"servedAt"`
}

// AuditResponse is the body served by GET /audit.
type AuditResponse struct {
	Events []audit.Event `json:"events"`
}

// NewServer builds the status server. auditLog may be nil, in which case
// GET /audit always reports an empty event list.
func NewServer(addr string, deviceInfo *schema.DeviceInfoResponse, counter ConnectionCounter, auditLog *audit.Log) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		router:     router,
		deviceInfo: deviceInfo,
		counter:    counter,
		auditLog:   auditLog,
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
	s.httpServer.Handler = router
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/status", s.handleStatus)
	s.router.GET("/audit", s.handleAudit)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Name:              s.deviceInfo.Name,
		FriendlyName:      s.deviceInfo.FriendlyName,
		ESPHomeVersion:    s.deviceInfo.ESPHomeVersion,
		APIEncryption:     s.deviceInfo.APIEncryptionSupported,
		OpenConnections:   s.counter.Count(),
		ServedAtUnixEpoch: time.Now().Unix(),
	})
}

func (s *Server) handleAudit(c *gin.Context) {
	limit := 100
	if s.auditLog == nil {
		c.JSON(http.StatusOK, AuditResponse{Events: []audit.Event{}})
		return
	}
	events, err := s.auditLog.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, AuditResponse{Events: events})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("httpstatus request")
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("httpstatus: listen: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
