package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/scenedoc/pkg/observability"
	"github.com/matzehuels/scenedoc/pkg/pipeline"
	"github.com/matzehuels/scenedoc/pkg/store"
)

const pyramidJSON = `{
  "datasets": {
    "pyramid": {
      "points": [0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 0.5, 0.5, 1],
      "polys": [[0, 1, 4], [1, 2, 4]]
    }
  },
  "renderer": {"actors": [{"mapper": {"input": "pyramid"}}]}
}`

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	runner := pipeline.NewRunner(store.NewRedisStore(mr.Addr()), nil, nil)
	t.Cleanup(func() { _ = runner.Close() })

	ts := httptest.NewServer(New(runner, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts, mr
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestHealthzStoreDown(t *testing.T) {
	ts, mr := newTestServer(t)
	mr.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body errorResponse
	decode(t, resp, &body)
	assert.Equal(t, "NETWORK_ERROR", body.Error)
}

func TestKinds(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/kinds")
	require.NoError(t, err)

	var entries []kindEntry
	decode(t, resp, &entries)
	assert.Contains(t, entries, kindEntry{Class: "vtkOpenGLActor", Kind: "actor"})
	assert.Contains(t, entries, kindEntry{Class: "vtkMultiBlockDataSet", Kind: "composite"})
}

func TestCreateAndGetDocument(t *testing.T) {
	ts, mr := newTestServer(t)

	resp, err := http.Post(ts.URL+"/documents", "application/json", strings.NewReader(pyramidJSON))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created createResponse
	decode(t, resp, &created)
	assert.True(t, strings.HasPrefix(created.Key, store.KeyPrefix))
	assert.Equal(t, 6, created.Records) // renderer, camera, actor, property, mapper, dataset
	assert.False(t, created.Cached)
	assert.True(t, mr.Exists("scenedoc:"+created.Key))

	resp, err = http.Get(ts.URL + "/documents/" + created.Key)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc map[string]any
	decode(t, resp, &doc)
	assert.Equal(t, "vtkRenderer", doc["vtkClass"])
	assert.Len(t, doc["addViewProp"], 1)

	// Same scene again: same key, served from the store.
	resp, err = http.Post(ts.URL+"/documents", "application/json", strings.NewReader(pyramidJSON))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var again createResponse
	decode(t, resp, &again)
	assert.Equal(t, created.Key, again.Key)
	assert.True(t, again.Cached)
}

func TestCreateDocumentFormats(t *testing.T) {
	ts, _ := newTestServer(t)
	yamlScene := "datasets:\n  d: {points: [0, 0, 0], verts: [[0]]}\nactor:\n  mapper: {input: d}\n"

	resp, err := http.Post(ts.URL+"/documents", "application/yaml", strings.NewReader(yamlScene))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Post(ts.URL+"/documents?format=yaml", "text/plain", strings.NewReader(yamlScene))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateDocumentErrors(t *testing.T) {
	ts, _ := newTestServer(t, WithMaxBody(1024))

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"renderer":`, http.StatusBadRequest, "INVALID_SCENE"},
		{"unknown dataset", `{"actor": {"mapper": {"input": "nope"}}}`, http.StatusBadRequest, "INVALID_SCENE"},
		{"missing geometry", `{"datasets": {"d": {}}, "actor": {"mapper": {"input": "d"}}}`,
			http.StatusUnprocessableEntity, "MISSING_GEOMETRY"},
		{"empty document", `{"actor": {}}`, http.StatusUnprocessableEntity, "EMPTY_DOCUMENT"},
		{"too large", `{"actor": {"class": "` + strings.Repeat("x", 2048) + `"}}`,
			http.StatusRequestEntityTooLarge, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/documents", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body errorResponse
			decode(t, resp, &body)
			assert.Equal(t, tt.code, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestGetDocumentErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/documents/not-a-key")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/documents/" + store.Key([]byte("missing")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "scenedoc_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	ts, _ := newTestServer(t, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "scenedoc_test_total 1")
}

func TestMetricsDisabled(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type routeHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (h *routeHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route+" "+http.StatusText(status))
}

func TestInstrumentUsesRoutePattern(t *testing.T) {
	hooks := &routeHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/documents/" + store.Key([]byte("x")))
	require.NoError(t, err)
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	require.Len(t, hooks.routes, 1)
	assert.Equal(t, "GET /documents/{key} Not Found", hooks.routes[0])
}

func TestListenAndServeShutdown(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- New(runner).ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
