package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
			return
		}

		json.NewEncoder(w).Encode(Credentials{
			Token: "tok-1",
			User:  &user.User{ID: "u1", Email: "amit@campus.edu", Role: user.RoleStudent},
		})
	}))
	defer srv.Close()

	store := NewMemoryStore()
	c := New(srv.URL, store)

	t.Run("BadPassword", func(t *testing.T) {
		_, err := c.Login(context.Background(), "amit@campus.edu", "wrong")
		require.Error(t, err)
		// not a session expiry, the caller never had one
		assert.NotErrorIs(t, err, ErrSessionExpired)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	})

	t.Run("Success", func(t *testing.T) {
		creds, err := c.Login(context.Background(), "amit@campus.edu", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", creds.Token)

		stored, err := c.Session().Current()
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "tok-1", stored.Token)
		assert.Equal(t, "u1", stored.User.ID)
	})
}

func TestClient_ExpiredTokenClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid or expired token"})
	}))
	defer srv.Close()

	store := NewMemoryStore()
	c := New(srv.URL, store)
	require.NoError(t, c.Session().Save(&Credentials{Token: "stale"}))

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)

	stored, err := c.Session().Current()
	require.NoError(t, err)
	assert.Nil(t, stored, "stale credentials should be cleared")
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(user.User{ID: "u1"})
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemoryStore())
	require.NoError(t, c.Session().Save(&Credentials{Token: "tok-1"}))

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_ErrorKindsFollowStatus(t *testing.T) {
	status := http.StatusNotFound
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"message": "order not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemoryStore())

	_, err := c.Order(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "order not found", apperr.Message(err))

	status = http.StatusConflict
	_, err = c.Order(context.Background(), "raced")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
