package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hostelRequest() ConfirmationRequest {
	return ConfirmationRequest{
		Type:      TypeHostel,
		To:        "+628111",
		BookingID: "7",
		DisplayID: "HST-7",
		Hostel: &HostelConfirmation{
			GuestName:   "Ayu",
			CheckInDate: "2024-01-11T00:00:00Z",
		},
	}
}

func TestSendConfirmation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-confirmation", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var got ConfirmationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "7", got.BookingID)
		require.NotNil(t, got.Hostel)
		assert.Equal(t, "2024-01-11T00:00:00Z", got.Hostel.CheckInDate)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"messageId":"wamid.123"}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL + "/", APIToken: "tok"})
	require.NoError(t, err)

	resp, err := c.SendConfirmation(context.Background(), hostelRequest())
	require.NoError(t, err)
	assert.Equal(t, "wamid.123", resp.MessageID)
}

func TestSendConfirmationProviderErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"json error", http.StatusBadRequest, `{"error":"invalid number"}`, "invalid number"},
		{"plain text", http.StatusBadGateway, "upstream down", "upstream down"},
		{"empty body", http.StatusServiceUnavailable, "", "Service Unavailable"},
		{"soft failure", http.StatusOK, `{"success":false,"error":"template rejected"}`, "template rejected"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c, err := New(Config{BaseURL: server.URL})
			require.NoError(t, err)
			_, err = c.SendConfirmation(context.Background(), hostelRequest())

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Contains(t, apiErr.Message, tc.want)
		})
	}
}

func TestSendConfirmationValidatesBeforeCalling(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()
	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	noNumber := hostelRequest()
	noNumber.To = "  "
	mismatched := hostelRequest()
	mismatched.Type = TypeAuditorium

	for _, req := range []ConfirmationRequest{noNumber, mismatched, {Type: "spa", To: "1", BookingID: "1"}} {
		_, err := c.SendConfirmation(context.Background(), req)
		assert.Error(t, err)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestNewDefaults(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	c, err := New(Config{BaseURL: "https://wa.example.com/api/"})
	require.NoError(t, err)
	assert.Equal(t, "https://wa.example.com/api", c.baseURL)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, defaultUserAgent, c.userAgent)
}

func TestSendConfirmationHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()
	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.SendConfirmation(ctx, hostelRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
