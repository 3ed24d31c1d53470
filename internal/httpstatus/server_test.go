package httpstatus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esphome-native/api-server/pkg/schema"
)

type fixedCounter int

func (f fixedCounter) Count() int { return int(f) }

func TestHandleStatus(t *testing.T) {
	deviceInfo := &schema.DeviceInfoResponse{
		Name:                   "kitchen-sensor",
		FriendlyName:           "Kitchen Sensor",
		ESPHomeVersion:         "2025.4.0",
		APIEncryptionSupported: true,
	}
	s := NewServer(":0", deviceInfo, fixedCounter(3), nil)

	req := httptest.NewRequest("GET", "/status", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kitchen-sensor")
	assert.Contains(t, w.Body.String(), `"openConnections":3`)
}

func TestHandleAuditWithoutLog(t *testing.T) {
	s := NewServer(":0", &schema.DeviceInfoResponse{}, fixedCounter(0), nil)

	req := httptest.NewRequest("GET", "/audit", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"events":[]}`, w.Body.String())
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(":0", &schema.DeviceInfoResponse{}, fixedCounter(0), nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
