package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstdynamics/internal/app"
	"github.com/alexanderramin/firstdynamics/internal/domain"
	"github.com/alexanderramin/firstdynamics/internal/logger"
)

type fakeDashboard struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (f *fakeDashboard) Aggregate(ctx context.Context) app.DashboardResult {
	f.calls.Add(1)
	if f.fail.Load() {
		msg := "notion api unavailable"
		return app.DashboardResult{Error: &msg}
	}
	return app.SucceededResult(nil, nil, domain.StreakSummary{DeepWork: int(f.calls.Load())}, time.Now())
}

func (f *fakeDashboard) View(ctx context.Context, req app.DashboardRequest) app.DashboardView {
	r := f.Aggregate(ctx)
	return app.DashboardView{DashboardResult: r, Live: r.OK()}
}

func startServer(t *testing.T, dash *fakeDashboard) (*Server, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := New(dash, Options{RefreshInterval: time.Hour}, logger.Discard())
	s.Start(ctx)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	require.Eventually(t, func() bool {
		_, ok := s.refresher.Latest()
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	return s, ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestServer_Health(t *testing.T) {
	_, ts := startServer(t, &fakeDashboard{})

	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServer_DashboardAndRefresh(t *testing.T) {
	dash := &fakeDashboard{}
	_, ts := startServer(t, dash)

	var view app.DashboardView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/dashboard", &view))
	assert.True(t, view.Live)
	require.NotNil(t, view.Streaks)
	assert.Equal(t, 1, view.Streaks.DeepWork)

	resp, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var refreshed app.DashboardView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&refreshed))
	assert.Equal(t, 2, refreshed.Streaks.DeepWork)
	assert.Equal(t, int32(2), dash.calls.Load())

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/dashboard", &view))
	assert.Equal(t, 2, view.Streaks.DeepWork)
}

func TestServer_ReadyReflectsLiveness(t *testing.T) {
	dash := &fakeDashboard{}
	dash.fail.Store(true)
	_, ts := startServer(t, dash)

	var body map[string]any
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, ts.URL+"/readyz", &body))
	assert.Equal(t, "degraded", body["status"])

	dash.fail.Store(false)
	resp, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/readyz", &body))
	assert.Equal(t, "ready", body["status"])
}

func TestServer_DashboardBeforeFirstCycle(t *testing.T) {
	s := New(&fakeDashboard{}, Options{RefreshInterval: time.Hour}, logger.Discard())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, ts.URL+"/api/dashboard", nil))
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, ts.URL+"/readyz", nil))
}

func TestServer_WebSocketPushesUpdates(t *testing.T) {
	s, ts := startServer(t, &fakeDashboard{})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first updateMessage
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "dashboard", first.Type)
	assert.Equal(t, 1, first.Data.Streaks.DeepWork)

	require.Eventually(t, func() bool {
		return s.hub.Clients(context.Background()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	var second updateMessage
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, 2, second.Data.Streaks.DeepWork)
}

func TestServer_WebSocketOriginAllowList(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(&fakeDashboard{}, Options{
		RefreshInterval: time.Hour,
		AllowedOrigins:  []string{"http://localhost:5173"},
	}, logger.Discard())
	s.Start(ctx)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	tests := []struct {
		name       string
		origin     string
		wantStatus int
	}{
		{"foreign origin", "https://evil.example", http.StatusForbidden},
		{"allow-listed origin", "http://localhost:5173", http.StatusSwitchingProtocols},
		{"no origin", "", http.StatusSwitchingProtocols},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == http.StatusForbidden {
				assert.ErrorIs(t, err, websocket.ErrBadHandshake)
				return
			}
			require.NoError(t, err)
			conn.Close()
		})
	}
}

func TestRefresher_SerializesCycles(t *testing.T) {
	dash := &fakeDashboard{}
	r := NewRefresher(dash, time.Hour, false, nil, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		go func() {
			_, ok := r.Refresh(ctx)
			assert.True(t, ok)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 5; i++ {
		<-done
	}

	assert.Equal(t, int32(6), dash.calls.Load())
	latest, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, 6, latest.Streaks.DeepWork)
}

func TestRefresher_RefreshAfterStop(t *testing.T) {
	r := NewRefresher(&fakeDashboard{}, time.Hour, false, nil, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := r.Refresh(ctx)
	assert.False(t, ok)
}
