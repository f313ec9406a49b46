package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spec-kit/commerce-mesh/internal/api/dto"
	"github.com/spec-kit/commerce-mesh/internal/auth"
	"github.com/spec-kit/commerce-mesh/internal/domain"
)

// UserServiceClient is the outbound interface to user-service used by
// auth-service (registration) and order-service (enrichment).
type UserServiceClient interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type userClient struct {
	baseURL        string
	internalSecret string
	http           *http.Client
}

// NewUserClient builds a client for the given base URL. The internal
// secret is fixed at construction and attached to every request.
func NewUserClient(baseURL, internalSecret string) UserServiceClient {
	return &userClient{
		baseURL:        baseURL,
		internalSecret: internalSecret,
		http:           &http.Client{Timeout: 10 * time.Second},
	}
}

type userEnvelope struct {
	Data dto.UserResponse `json:"data"`
}

func (c *userClient) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/api/v1/users", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("user-service create returned %d", resp.StatusCode)
	}

	var envelope userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return toDomainUser(envelope.Data), nil
}

func (c *userClient) DeleteUser(ctx context.Context, id int64) error {
	httpReq, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", id), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("user-service delete returned %d", resp.StatusCode)
	}
	return nil
}

func (c *userClient) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user-service get returned %d", resp.StatusCode)
	}

	var envelope userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return toDomainUser(envelope.Data), nil
}

// newRequest attaches the internal trust header; every outbound call
// carries it (the callee's filter grants ROLE_SERVICE on match).
func (c *userClient) newRequest(ctx context.Context, method, path string, body *bytes.Reader) (*http.Request, error) {
	var httpReq *http.Request
	var err error
	if body != nil {
		httpReq, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		httpReq, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set(auth.HeaderInternalAuth, c.internalSecret)
	return httpReq, nil
}

func toDomainUser(resp dto.UserResponse) *domain.User {
	return &domain.User{
		ID:        resp.ID,
		Email:     resp.Email,
		Name:      resp.Name,
		Surname:   resp.Surname,
		BirthDate: resp.BirthDate,
	}
}
