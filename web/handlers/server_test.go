package handlers_test

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesanalysis/events"
	"salesanalysis/plot"
	"salesanalysis/web/handlers"
)

var viewIDPattern = regexp.MustCompile(`data-view="([^"]+)"`)

func newTestServer(t *testing.T) (*httptest.Server, *handlers.SalesAnalysis) {
	t.Helper()

	hub := events.NewHub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d, err := handlers.NewSalesAnalysis(plot.NewPlotter(""), hub, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(handlers.NewServer(d, hub, logger, time.Minute).Handler())
	t.Cleanup(srv.Close)
	return srv, d
}

func mountView(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	m := viewIDPattern.FindStringSubmatch(string(body))
	require.Len(t, m, 2)
	return m[1]
}

func updatesURL(srv *httptest.Server, viewID string) string {
	return srv.URL + "/updates?datastar=" + url.QueryEscape(`{"view":"`+viewID+`"}`)
}

func post(t *testing.T, srv *httptest.Server, path, viewID string) int {
	t.Helper()

	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(`{"view":"`+viewID+`"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

// openUpdates opens the view's update stream and feeds its lines to the returned channel until cancel is called.
func openUpdates(t *testing.T, srv *httptest.Server, viewID string) (<-chan string, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, updatesURL(srv, viewID), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := make(chan string)
	go func() {
		defer close(lines)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines, cancel
}

// waitFor reads the event stream until a line contains want.
func waitFor(t *testing.T, lines <-chan string, want string) {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed before %q", want)
			if strings.Contains(line, want) {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestIncrementReRendersOverUpdates(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	viewID := mountView(t, srv)

	lines, _ := openUpdates(t, srv, viewID)
	waitFor(t, lines, `data-counter="1000"`)

	assert.Equal(t, http.StatusNoContent, post(t, srv, "/increment", viewID))
	waitFor(t, lines, `data-counter="2000"`)

	assert.Equal(t, http.StatusNoContent, post(t, srv, "/decrement", viewID))
	assert.Equal(t, http.StatusNoContent, post(t, srv, "/decrement", viewID))
	waitFor(t, lines, `data-counter="0"`)
}

func TestUpdatesReconnect(t *testing.T) {
	t.Parallel()

	srv, d := newTestServer(t)
	viewID := mountView(t, srv)
	view, ok := d.View(viewID)
	require.True(t, ok)

	lines, cancel := openUpdates(t, srv, viewID)
	waitFor(t, lines, `data-counter="1000"`)

	cancel()
	assert.Eventually(t, func() bool { return !view.Attached() }, 5*time.Second, 10*time.Millisecond)
	_, ok = d.View(viewID)
	require.True(t, ok)

	lines, _ = openUpdates(t, srv, viewID)
	waitFor(t, lines, `data-counter="1000"`)

	assert.Equal(t, http.StatusNoContent, post(t, srv, "/increment", viewID))
	waitFor(t, lines, `data-counter="2000"`)
}

func TestUpdatesOverlappingStreams(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	viewID := mountView(t, srv)

	first, _ := openUpdates(t, srv, viewID)
	waitFor(t, first, `data-counter="1000"`)
	second, _ := openUpdates(t, srv, viewID)
	waitFor(t, second, `data-counter="1000"`)

	assert.Equal(t, http.StatusNoContent, post(t, srv, "/increment", viewID))
	waitFor(t, first, `data-counter="2000"`)
	waitFor(t, second, `data-counter="2000"`)
}

func TestUpdatesIgnoreOtherViews(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	mine := mountView(t, srv)
	other := mountView(t, srv)

	lines, _ := openUpdates(t, srv, mine)
	waitFor(t, lines, `data-counter="1000"`)

	for range 20 {
		assert.Equal(t, http.StatusNoContent, post(t, srv, "/increment", other))
	}
	assert.Equal(t, http.StatusNoContent, post(t, srv, "/decrement", mine))
	waitFor(t, lines, `data-counter="0"`)
}

func TestUpdatesErrors(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/updates")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(updatesURL(srv, "does-not-exist"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEachPageLoadMountsANewView(t *testing.T) {
	t.Parallel()

	srv, d := newTestServer(t)
	first := mountView(t, srv)
	second := mountView(t, srv)
	require.NotEqual(t, first, second)

	assert.Equal(t, http.StatusNoContent, post(t, srv, "/increment", first))

	a, ok := d.View(first)
	require.True(t, ok)
	b, ok := d.View(second)
	require.True(t, ok)
	assert.Equal(t, 2000, a.Value())
	assert.Equal(t, 1000, b.Value())
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/static/css/sales-analysis.css")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/increment")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	hub := events.NewHub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d, err := handlers.NewSalesAnalysis(plot.NewPlotter(""), hub, logger)
	require.NoError(t, err)
	s := handlers.NewServer(d, hub, logger, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
