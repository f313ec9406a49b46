package config

import "testing"

func TestLoad_GatewayOpenEndpointDefaults(t *testing.T) {
	t.Setenv("GATEWAY_OPEN_ENDPOINTS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := []string{"/api/v1/auth/login", "/api/v1/auth/register", "/api/v1/auth/refresh"}
	if len(cfg.Gateway.OpenEndpoints) != len(want) {
		t.Fatalf("open endpoints: got %v want %v", cfg.Gateway.OpenEndpoints, want)
	}
	for i := range want {
		if cfg.Gateway.OpenEndpoints[i] != want[i] {
			t.Fatalf("open endpoints: got %v want %v", cfg.Gateway.OpenEndpoints, want)
		}
	}
}

func TestLoad_TokenTTLDefaults(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_MINUTES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := cfg.Auth.AccessTokenTTL().Minutes(); got != 15 {
		t.Fatalf("access TTL: got %v minutes", got)
	}
	if got := cfg.Auth.RefreshTokenTTL().Hours(); got != 7*24 {
		t.Fatalf("refresh TTL: got %v hours", got)
	}
}
