package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-mesh/internal/api/dto"
	"github.com/spec-kit/commerce-mesh/internal/auth"
)

func TestUserClient_AttachesInternalHeaderOnEveryCall(t *testing.T) {
	var seenHeaders []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenHeaders = append(seenHeaders, r.Header.Get(auth.HeaderInternalAuth))
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]dto.UserResponse{
				"data": {ID: 1, Email: "bob@example.com", Name: "Bob", Surname: "Smith"},
			})
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]dto.UserResponse{
				"data": {ID: 1, Email: "bob@example.com"},
			})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	c := NewUserClient(server.URL, "internal-secret")
	ctx := context.Background()

	created, err := c.CreateUser(ctx, dto.CreateUserRequest{Email: "bob@example.com", Name: "Bob", Surname: "Smith"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "bob@example.com", created.Email)

	fetched, err := c.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetched.ID)

	require.NoError(t, c.DeleteUser(ctx, 1))

	require.Len(t, seenHeaders, 3)
	for _, header := range seenHeaders {
		assert.Equal(t, "internal-secret", header)
	}
}

func TestUserClient_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewUserClient(server.URL, "internal-secret")

	_, err := c.GetUser(context.Background(), 1)
	require.Error(t, err)

	_, err = c.CreateUser(context.Background(), dto.CreateUserRequest{Email: "x@example.com"})
	require.Error(t, err)

	require.Error(t, c.DeleteUser(context.Background(), 1))
}
