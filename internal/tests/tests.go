// Package tests contains helpers for the route tests.
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/services"
	"github.com/stretchr/testify/require"
)

const TestToken = "test-token"

// NewTestApp builds an app for an 8x8 engine without Postgres and Redis.
func NewTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.ServerConfig{
		Token:  TestToken,
		Search: config.DefaultSearchConfig(),
	}
	cfg.Search.DefaultDepth = 2

	return internal.BuildApp(cfg, &services.Services{}, othello.NewEngineMust(8, 8))
}

// Do sends a request to app. The payload is JSON encoded unless it is nil.
func Do(t *testing.T, app *fiber.App, method, path string, payload any, token string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

// Decode decodes the JSON body of resp into v.
func Decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
