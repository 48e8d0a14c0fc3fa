package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var got sendRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewResend("test-key", "CampusMart <noreply@campusmart.test>")
	m.BaseURL = srv.URL

	err := m.Send(context.Background(), "student@rtu.ac.in", "Your OTP for Sign Up", "Your OTP is: 123456")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, []string{"student@rtu.ac.in"}, got.To)
	assert.Equal(t, "CampusMart <noreply@campusmart.test>", got.From)
	assert.Equal(t, "Your OTP for Sign Up", got.Subject)
}

func TestSendFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewResend("bad-key", "CampusMart <noreply@campusmart.test>")
	m.BaseURL = srv.URL

	err := m.Send(context.Background(), "student@rtu.ac.in", "subject", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
