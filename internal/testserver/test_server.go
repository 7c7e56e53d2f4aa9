// Package testserver boots the full HTTP stack for tests.
package testserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities/internal/domain/journal"
	"github.com/mergington/activities/internal/domain/registry"
	"github.com/mergington/activities/internal/mcp"
	"github.com/mergington/activities/internal/observability"
	"github.com/mergington/activities/internal/seed"
	"github.com/mergington/activities/internal/sqlite"
	"github.com/mergington/activities/internal/transport"
	"github.com/mergington/activities/web"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Registry *registry.Service
	Journal  *journal.Service
	Metrics  *prometheus.Registry
}

// New starts a server over a fresh registry built from the default seed.
func New(t *testing.T, opts ...registry.Option) *TestServer {
	t.Helper()

	activities, err := seed.Default()
	require.NoError(t, err)
	return NewWithActivities(t, activities, opts...)
}

// NewWithActivities starts a server over a fresh registry built from activities.
func NewWithActivities(t *testing.T, activities []registry.Activity, opts ...registry.Option) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	journalSvc := journal.NewService(sqlite.NewJournalRepository(db), nil)

	promReg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(promReg)

	opts = append([]registry.Option{registry.WithJournal(journalSvc), registry.WithObserver(metrics)}, opts...)
	registrySvc, err := registry.NewService(activities, opts...)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{
		Registry: registrySvc,
		Journal:  journalSvc,
	})

	router := transport.NewServer(transport.Config{
		Registry: registrySvc,
		Journal:  journalSvc,
		Static:   web.Static(),
		MCP:      mcp.NewHTTPHandler(mcpServer),
		Metrics:  promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Registry: registrySvc,
		Journal:  journalSvc,
		Metrics:  promReg,
	}
}

// Client returns an HTTP client that does not follow redirects.
func (ts *TestServer) Client() *http.Client {
	client := *ts.Server.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &client
}

// Do sends a request to path, which may include a query string, and
// decodes a JSON body into out when out is non-nil.
func (ts *TestServer) Do(t *testing.T, method, path string, out any) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, ts.Server.URL+path, nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// RosterPath builds /activities/{name}/{action}?email=... with proper escaping.
func RosterPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}
