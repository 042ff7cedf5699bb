// Package testutil holds helpers shared by the integration suites.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/dto"
)

// Envelope is dto.Response with the data kept raw
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// Client sends JSON requests to an http.Handler, optionally with a bearer token
type Client struct {
	t       *testing.T
	handler http.Handler
	Token   string
}

// NewClient creates a client for handler
func NewClient(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler}
}

// Do sends body as JSON (nil sends no body) and records the response
func (c *Client) Do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

// Expect sends the request, requires the status and decodes data into out
// when out is not nil
func (c *Client) Expect(status int, method, path string, body, out any) Envelope {
	c.t.Helper()
	w := c.Do(method, path, body)
	require.Equal(c.t, status, w.Code, "%s %s: %s", method, path, w.Body.String())
	if w.Body.Len() == 0 {
		return Envelope{}
	}
	return Decode(c.t, w, out)
}

// Decode parses the response envelope and, when out is not nil, its data
func Decode(t *testing.T, w *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}
