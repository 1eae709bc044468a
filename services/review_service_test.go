package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/models"
)

func sampleForm() models.BookingForm {
	return models.BookingForm{
		CustomerName:    "X",
		CheckInDate:     "2024-07-01",
		CheckOutDate:    "2024-06-01",
		NumberOfPersons: 12,
		PaymentMode:     "UPI",
	}
}

func TestHTTPReviewer_Review(t *testing.T) {
	t.Run("enveloped response", func(t *testing.T) {
		var got map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "secret", r.Header.Get("x-api-key"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":{"flags":[{"field":"checkOutDate","reason":"before check-in"}]}}`))
		}))
		defer srv.Close()

		reviewer := NewHTTPReviewer(srv.URL, "secret", time.Second)
		result, err := reviewer.Review(context.Background(), sampleForm())

		require.NoError(t, err)
		require.Len(t, result.Flags, 1)
		assert.Equal(t, "checkOutDate", result.Flags[0].Field)
		assert.Equal(t, "booking-review-v1", got["model"])
		input, ok := got["input"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "X", input["customerName"])
	})

	t.Run("bare response without flags", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("x-api-key"))
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		result, err := NewHTTPReviewer(srv.URL, "", 0).Review(context.Background(), sampleForm())

		require.NoError(t, err)
		assert.NotNil(t, result.Flags)
		assert.Empty(t, result.Flags)
	})

	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewHTTPReviewer(srv.URL, "", time.Second).Review(context.Background(), sampleForm())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("api status error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"error","message":"quota exceeded"}`))
		}))
		defer srv.Close()

		_, err := NewHTTPReviewer(srv.URL, "", time.Second).Review(context.Background(), sampleForm())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewHTTPReviewer(url, "", time.Second).Review(context.Background(), sampleForm())
		assert.Error(t, err)
	})
}

func TestNoopReviewer(t *testing.T) {
	result, err := NoopReviewer{}.Review(context.Background(), sampleForm())
	require.NoError(t, err)
	assert.NotNil(t, result.Flags)
	assert.Empty(t, result.Flags)
}
