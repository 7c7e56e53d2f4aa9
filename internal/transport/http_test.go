package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/mergington/activities/internal/domain/journal"
	"github.com/mergington/activities/internal/domain/registry"
)

type registryStub struct {
	listFn   func(context.Context) map[string]registry.Activity
	getFn    func(context.Context, string) (registry.Activity, error)
	signupFn func(context.Context, string, string) (registry.Receipt, error)
	removeFn func(context.Context, string, string) (registry.Receipt, error)
}

func (r registryStub) List(ctx context.Context) map[string]registry.Activity {
	return r.listFn(ctx)
}
func (r registryStub) Get(ctx context.Context, name string) (registry.Activity, error) {
	return r.getFn(ctx, name)
}
func (r registryStub) Signup(ctx context.Context, name, email string) (registry.Receipt, error) {
	return r.signupFn(ctx, name, email)
}
func (r registryStub) Remove(ctx context.Context, name, email string) (registry.Receipt, error) {
	return r.removeFn(ctx, name, email)
}

type journalStub struct {
	recentFn func(context.Context, journal.ListOptions) ([]journal.Entry, error)
}

func (j journalStub) Recent(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
	return j.recentFn(ctx, opts)
}

func serve(t *testing.T, cfg Config, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	NewServer(cfg).ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestHTTPServer_Health(t *testing.T) {
	rec := serve(t, Config{Registry: registryStub{}}, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestHTTPServer_RootRedirect(t *testing.T) {
	rec := serve(t, Config{Registry: registryStub{}}, http.MethodGet, "/")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/static/index.html", rec.Header().Get("Location"))
}

func TestHTTPServer_Static(t *testing.T) {
	static := fstest.MapFS{"index.html": {Data: []byte("<h1>Mergington</h1>")}}
	rec := serve(t, Config{Registry: registryStub{}, Static: static}, http.MethodGet, "/static/index.html")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Mergington")

	rec = serve(t, Config{Registry: registryStub{}, Static: static}, http.MethodGet, "/static/missing.js")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPServer_ListRendersEmptyRosters(t *testing.T) {
	reg := registryStub{listFn: func(context.Context) map[string]registry.Activity {
		return map[string]registry.Activity{
			"Chess Club": {Name: "Chess Club", Description: "d", Schedule: "s", MaxParticipants: 12, Participants: []string{}},
		}
	}}
	rec := serve(t, Config{Registry: reg}, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"Chess Club":{"description":"d","schedule":"s","max_participants":12,"participants":[]}}`, rec.Body.String())
}

func TestHTTPServer_SignupPassesDecodedName(t *testing.T) {
	var gotName, gotEmail string
	reg := registryStub{signupFn: func(_ context.Context, name, email string) (registry.Receipt, error) {
		gotName, gotEmail = name, email
		return registry.Receipt{Message: fmt.Sprintf("Signed up %s for %s", email, name)}, nil
	}}
	rec := serve(t, Config{Registry: reg}, http.MethodPost, "/activities/Chess%20Club/signup?email=a%2Bb%40mergington.edu")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Chess Club", gotName)
	require.Equal(t, "a+b@mergington.edu", gotEmail)
	require.JSONEq(t, `{"message":"Signed up a+b@mergington.edu for Chess Club"}`, rec.Body.String())
}

func TestHTTPServer_ActivityNameDecodedOnce(t *testing.T) {
	cases := []struct {
		target string
		want   string
	}{
		{"/activities/Chess%20Club/signup?email=x%40mergington.edu", "Chess Club"},
		{"/activities/100%2525%20Club/signup?email=x%40mergington.edu", "100%25 Club"},
		{"/activities/Art%2FDesign/signup?email=x%40mergington.edu", "Art/Design"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			var got string
			reg := registryStub{signupFn: func(_ context.Context, name, _ string) (registry.Receipt, error) {
				got = name
				return registry.Receipt{}, nil
			}}
			rec := serve(t, Config{Registry: reg}, http.MethodPost, tc.target)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestHTTPServer_MissingEmailIs422(t *testing.T) {
	called := false
	reg := registryStub{
		signupFn: func(context.Context, string, string) (registry.Receipt, error) {
			called = true
			return registry.Receipt{}, nil
		},
		removeFn: func(context.Context, string, string) (registry.Receipt, error) {
			called = true
			return registry.Receipt{}, nil
		},
	}

	for _, target := range []string{
		"/activities/Chess%20Club/signup",
		"/activities/Chess%20Club/signup?email=",
		"/activities/Chess%20Club/signup?email=%20%20",
	} {
		rec := serve(t, Config{Registry: reg}, http.MethodPost, target)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, target)
		require.NotEmpty(t, decodeDetail(t, rec))
	}

	rec := serve(t, Config{Registry: reg}, http.MethodDelete, "/activities/Chess%20Club/remove")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.False(t, called)
}

func TestHTTPServer_DomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not found", registry.ErrActivityNotFound, http.StatusNotFound, "Activity not found"},
		{"already signed up", fmt.Errorf("%w for Chess Club", registry.ErrAlreadySignedUp), http.StatusBadRequest, "Student is already signed up for Chess Club"},
		{"full", fmt.Errorf("%w: Chess Club", registry.ErrActivityFull), http.StatusBadRequest, "Activity is full: Chess Club"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := registryStub{signupFn: func(context.Context, string, string) (registry.Receipt, error) {
				return registry.Receipt{}, tc.err
			}}
			rec := serve(t, Config{Registry: reg}, http.MethodPost, "/activities/Chess%20Club/signup?email=x%40mergington.edu")
			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.detail, decodeDetail(t, rec))
		})
	}
}

func TestHTTPServer_RemoveNotSignedUp(t *testing.T) {
	reg := registryStub{removeFn: func(context.Context, string, string) (registry.Receipt, error) {
		return registry.Receipt{}, registry.ErrNotSignedUp
	}}
	rec := serve(t, Config{Registry: reg}, http.MethodDelete, "/activities/Chess%20Club/remove?email=x%40mergington.edu")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Student is not signed up for this activity", decodeDetail(t, rec))
}

func TestHTTPServer_History(t *testing.T) {
	var got journal.ListOptions
	reg := registryStub{getFn: func(_ context.Context, name string) (registry.Activity, error) {
		if name != "Chess Club" {
			return registry.Activity{}, registry.ErrActivityNotFound
		}
		return registry.Activity{Name: name}, nil
	}}
	jrn := journalStub{recentFn: func(_ context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
		got = opts
		return []journal.Entry{{ID: "e1", Activity: "Chess Club", Type: journal.TypeSignup}}, nil
	}}
	cfg := Config{Registry: reg, Journal: jrn}

	rec := serve(t, cfg, http.MethodGet, "/activities/Chess%20Club/history")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, journal.ListOptions{Activity: "Chess Club", Limit: journal.DefaultLimit}, got)
	var body HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Chess Club", body.Activity)
	require.Len(t, body.Entries, 1)

	rec = serve(t, cfg, http.MethodGet, "/activities/Chess%20Club/history?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, got.Limit)

	rec = serve(t, cfg, http.MethodGet, "/activities/Chess%20Club/history?email=%20a%40mergington.edu&type=removal&offset=4&limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	removal := journal.TypeRemoval
	require.Equal(t, journal.ListOptions{Activity: "Chess Club", Email: "a@mergington.edu", Type: &removal, Limit: 2, Offset: 4}, got)

	for _, query := range []string{"limit=zero", "limit=0", "offset=-1", "offset=x", "type=transfer"} {
		rec = serve(t, cfg, http.MethodGet, "/activities/Chess%20Club/history?"+query)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, query)
		require.NotEmpty(t, decodeDetail(t, rec))
	}

	rec = serve(t, cfg, http.MethodGet, "/activities/Nope/history")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Activity not found", decodeDetail(t, rec))
}

func TestHTTPServer_HistoryWithoutJournal(t *testing.T) {
	reg := registryStub{getFn: func(_ context.Context, name string) (registry.Activity, error) {
		return registry.Activity{Name: name}, nil
	}}
	rec := serve(t, Config{Registry: reg}, http.MethodGet, "/activities/Chess%20Club/history")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"activity":"Chess Club","entries":[]}`, rec.Body.String())
}

func TestHTTPServer_OptionalMounts(t *testing.T) {
	mounted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path))
	})
	cfg := Config{Registry: registryStub{}, MCP: mounted, Metrics: mounted}

	rec := serve(t, cfg, http.MethodGet, "/metrics")
	require.Equal(t, "/metrics", rec.Body.String())
	rec = serve(t, cfg, http.MethodPost, "/mcp")
	require.Equal(t, "/mcp", rec.Body.String())

	rec = serve(t, Config{Registry: registryStub{}}, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusUnprocessableEntity, StatusFor(registry.ErrInvalidInput))
	require.Equal(t, http.StatusUnprocessableEntity, StatusFor(journal.ErrInvalidInput))
	require.Equal(t, http.StatusNotFound, StatusFor(registry.ErrActivityNotFound))
	require.Equal(t, http.StatusBadRequest, StatusFor(registry.ErrAlreadySignedUp))
	require.Equal(t, http.StatusBadRequest, StatusFor(registry.ErrNotSignedUp))
	require.Equal(t, http.StatusBadRequest, StatusFor(registry.ErrActivityFull))
	require.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("x")))
}
