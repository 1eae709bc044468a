package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/services"
	"hotel-frontdesk/store"
)

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseCorsOrigins(nil))
	assert.Equal(t, []string{"*"}, parseCorsOrigins([]string{" ", ""}))
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		parseCorsOrigins([]string{" https://a.example", "https://b.example "}))
}

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	st := store.NewSeededMemoryStore()

	r := SetupRouter(
		controllers.NewRoomController(services.NewRoomService(st)),
		controllers.NewBookingController(services.NewBookingService(st, nil, log), nil, log),
		controllers.NewPaymentController(services.NewPaymentService(st, nil, log), services.NewRevenueService(st)),
		log,
		[]string{"https://desk.example.com"},
	)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/summary", http.StatusOK},
		{http.MethodGet, "/api/rooms", http.StatusOK},
		{http.MethodGet, "/api/bookings", http.StatusOK},
		{http.MethodGet, "/api/bookings/b1", http.StatusNotFound},
		{http.MethodGet, "/api/revenue", http.StatusOK},
		{http.MethodDelete, "/api/payments/p1", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/rooms", nil)
		req.Header.Set("Origin", "https://desk.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://desk.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
