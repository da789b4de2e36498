package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isiledger/src/app/middleware"
	"isiledger/src/app/server"
	"isiledger/src/app/stream"
	"isiledger/src/core/domain"
	"isiledger/src/core/usecase"
	"isiledger/src/infra/codec"
	"isiledger/src/infra/config"
	"isiledger/src/infra/repo"
)

const adminToken = "s3cret"

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return newLoggedTestServer(t, io.Discard)
}

func newLoggedTestServer(t *testing.T, w io.Writer) http.Handler {
	t.Helper()
	log := slog.New(slog.NewJSONHandler(w, nil))

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Log:    config.LogConfig{Level: "info"},
		Admin:  config.AdminConfig{Token: adminToken},
	}

	store := repo.NewMemoryRepository()
	c := codec.MustNew()
	hub := stream.NewHub(log)
	t.Cleanup(hub.Close)

	ledger := usecase.NewLedgerService(store, c, nil, hub, log)
	require.NoError(t, ledger.Bootstrap(context.Background(), nil))

	srv := server.New(cfg, log, ledger, usecase.NewHealthService(store, log), c, hub)
	return srv.Router()
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error.Code
}

func createWonderland(t *testing.T, h http.Handler) {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/domains", `{"name":"wonderland"}`, middleware.AdminTokenHeader, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

const registerAlice = `{"RegisterAccount":{"destination_id":"wonderland","object":{"id":"alice@wonderland","assets":{}}}}`

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/health/detailed", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storage"`)
}

func TestCreateDomain_RequiresAdminToken(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/v1/domains", `{"name":"wonderland"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))

	rec = do(t, h, http.MethodPost, "/v1/domains", `{"name":"wonderland"}`, middleware.AdminTokenHeader, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	createWonderland(t, h)

	rec = do(t, h, http.MethodPost, "/v1/domains", `{"name":"wonderland"}`, middleware.AdminTokenHeader, adminToken)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorCode(t, rec))

	rec = do(t, h, http.MethodPost, "/v1/domains", `{"name":"has space"}`, middleware.AdminTokenHeader, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestSubmitJSON(t *testing.T) {
	h := newTestServer(t)
	createWonderland(t, h)

	rec := do(t, h, http.MethodPost, "/v1/instructions", registerAlice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var receipt struct {
		Data struct {
			Hash        string `json:"hash"`
			Kind        string `json:"kind"`
			Destination string `json:"destination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, "RegisterAccount", receipt.Data.Kind)
	assert.Equal(t, "wonderland", receipt.Data.Destination)
	assert.Len(t, receipt.Data.Hash, 64)

	rec = do(t, h, http.MethodGet, "/v1/domains/wonderland/accounts/alice@wonderland", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"alice@wonderland"`)

	// duplicate account
	rec = do(t, h, http.MethodPost, "/v1/instructions", registerAlice)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitJSON_Errors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"missing domain", registerAlice, http.StatusNotFound, "NOT_FOUND"},
		{"schema violation", `{"RegisterAccount":{"destination_id":"wonderland"}}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not json", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty", ``, http.StatusBadRequest, "BAD_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/instructions", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestSubmit_PreconditionViolated(t *testing.T) {
	var logs bytes.Buffer
	h := newLoggedTestServer(t, &logs)
	createWonderland(t, h)

	body := `{"RegisterAsset":{"destination_id":"wonderland","object":{"id":"rose##alice@wonderland","quantity":13}}}`
	rec := do(t, h, http.MethodPost, "/v1/instructions", body)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "PRECONDITION_VIOLATED", errorCode(t, rec))

	// the server keeps serving after the panic
	rec = do(t, h, http.MethodGet, "/v1/domains/wonderland", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var logged bool
	for _, line := range strings.Split(logs.String(), "\n") {
		var entry map[string]any
		if json.Unmarshal([]byte(line), &entry) != nil {
			continue
		}
		if entry["msg"] == "http request" && entry["path"] == "/v1/instructions" && entry["status"] == float64(500) {
			logged = true
		}
	}
	assert.True(t, logged, "panicking request missing from the access log")
}

func TestSubmitBinary(t *testing.T) {
	h := newTestServer(t)
	createWonderland(t, h)

	id, err := domain.ParseAccountID("alice@wonderland")
	require.NoError(t, err)
	raw, err := codec.EncodeInstruction(domain.RegisterAccount{DomainName: "wonderland", Account: domain.NewAccount(id)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/instructions/binary", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/octet-stream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/domains", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"name":"wonderland","account_count":1}]}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/v1/instructions/binary", bytes.NewReader([]byte{0xff, 0xff}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmit_PayloadTooLarge(t *testing.T) {
	h := newTestServer(t)

	body := strings.Repeat("x", 1<<20+1)
	rec := do(t, h, http.MethodPost, "/v1/instructions", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", errorCode(t, rec))
}

// countingReader serves n bytes of '1' and records how many were read.
type countingReader struct {
	remaining int
	read      int
}

func (r *countingReader) Read(p []byte) (int, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	n := min(len(p), r.remaining)
	for i := range p[:n] {
		p[i] = '1'
	}
	r.remaining -= n
	r.read += n
	return n, nil
}

func TestSubmit_BodyReadIsBounded(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/v1/instructions", "/v1/instructions/binary"} {
		t.Run(path, func(t *testing.T) {
			body := &countingReader{remaining: 8 << 20}
			req := httptest.NewRequest(http.MethodPost, path, body)
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
			assert.LessOrEqual(t, body.read, 1<<20+1)
		})
	}
}

func TestNotFound(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/v1/domains/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}
