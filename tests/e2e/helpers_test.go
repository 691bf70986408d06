//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres"
	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres/building"
	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres/canonical"
	proposalrepo "github.com/streletskiy/archimap-sub000/internal/adapter/postgres/proposal"
	"github.com/streletskiy/archimap-sub000/internal/adapter/postgres/testhelper"
	"github.com/streletskiy/archimap-sub000/internal/adapter/redis/refreshqueue"
	authpkg "github.com/streletskiy/archimap-sub000/internal/auth"
	"github.com/streletskiy/archimap-sub000/internal/config"
	"github.com/streletskiy/archimap-sub000/internal/service/baseline"
	"github.com/streletskiy/archimap-sub000/internal/service/merge"
	"github.com/streletskiy/archimap-sub000/internal/service/proposal"
	"github.com/streletskiy/archimap-sub000/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Queue  *refreshqueue.Queue
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the API backed by the shared PostgreSQL
// container and an in-process Redis for the refresh queue.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	queue := refreshqueue.NewWithClient(rdb, "test:refresh")

	proposals := proposalrepo.New(pool)
	records := canonical.New(pool)
	buildings := building.New(pool)
	resolver := baseline.NewResolver(logger, records, buildings)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	proposalSvc := proposal.NewService(logger, proposals, buildings, resolver, txm, config.ModerationConfig{
		ListDefaultLimit: 2000,
		ListMaxLimit:     5000,
		SubmitAttempts:   3,
	})
	mergeSvc := merge.NewService(logger, proposals, records, resolver, queue, txm)

	router := rest.NewRouter(rest.RouterDeps{
		Proposals: rest.NewProposalHandler(proposalSvc, logger),
		Merge:     rest.NewMergeHandler(mergeSvc, logger),
		Health: rest.NewHealthHandler("test-version",
			rest.Check{Name: "database", Pinger: pool},
			rest.Check{Name: "refresh_queue", Pinger: queue},
		),
		Tokens: jwtMgr,
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			ExposedHeaders:   "Retry-After,X-Request-Id",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Logger: logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Queue:  queue,
		jwt:    jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// Tokens
// ---------------------------------------------------------------------------

// contributor returns a fresh author identity and its access token.
func (ts *testServer) contributor(t *testing.T) (string, string) {
	t.Helper()
	author := testhelper.RandomAuthor()
	tok, err := ts.jwt.GenerateAccessToken(author, "")
	require.NoError(t, err)
	return author, tok
}

// reviewer returns a token carrying the reviewer role.
func (ts *testServer) reviewer(t *testing.T) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(testhelper.RandomAuthor(), authpkg.RoleReviewer)
	require.NoError(t, err)
	return tok
}

// ---------------------------------------------------------------------------
// HTTP
// ---------------------------------------------------------------------------

// do sends a JSON request and returns status plus the raw body.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// doJSON is do with the body decoded into a map.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := ts.do(t, method, path, token, body)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return status, out
}

// submit posts a proposal and returns its id.
func (ts *testServer) submit(t *testing.T, token string, body map[string]any) int64 {
	t.Helper()
	status, out := ts.doJSON(t, http.MethodPost, "/api/proposals", token, body)
	require.Equal(t, http.StatusCreated, status, "submit: %v", out)
	return int64(out["proposalId"].(float64))
}

// errorCode extracts error.code from an error envelope.
func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	code, _ := envelope["code"].(string)
	return code
}

// proposalStatus reads a proposal's status straight from the database.
func (ts *testServer) proposalStatus(t *testing.T, id int64) string {
	t.Helper()
	var status string
	require.NoError(t, ts.Pool.QueryRow(context.Background(),
		`SELECT status FROM proposals WHERE id = $1`, id).Scan(&status))
	return status
}
