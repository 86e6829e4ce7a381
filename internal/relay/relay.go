// Package relay is a CORS and credential broker in front of the Notion API.
// Browsers call it without a token; it attaches the bearer credential and the
// API version, then passes the upstream answer through unchanged.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/alexanderramin/firstdynamics/internal/middleware"
	"github.com/alexanderramin/firstdynamics/internal/notion"
)

const (
	allowMethods = "GET, POST, OPTIONS"
	allowHeaders = "Content-Type, Authorization"
	maxAge       = "86400"
)

type Config struct {
	Upstream       string
	Token          string
	Version        string
	AllowedOrigins []string
	Timeout        time.Duration
}

type Relay struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger
	router *mux.Router
}

func New(cfg Config, logger *log.Logger) *Relay {
	if cfg.Upstream == "" {
		cfg.Upstream = notion.DefaultBaseURL
	}
	if cfg.Version == "" {
		cfg.Version = notion.DefaultVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = notion.DefaultTimeout
	}
	r := &Relay{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:       http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		logger: logger,
		router: mux.NewRouter(),
	}
	r.setupRoutes()
	return r
}

func (r *Relay) setupRoutes() {
	r.router.Use(middleware.RequestID())
	r.router.Use(middleware.Logging(r.logger))
	r.router.Methods(http.MethodOptions).HandlerFunc(r.handlePreflight)
	r.router.PathPrefix("/").HandlerFunc(r.handleForward)
}

func (r *Relay) Handler() http.Handler {
	return r.router
}

// Allowed reports whether origin may use the relay. Requests without an
// Origin header are not cross-origin and are always allowed.
func (r *Relay) Allowed(origin string) bool {
	return middleware.OriginAllowed(origin, r.cfg.AllowedOrigins)
}

func (r *Relay) handlePreflight(w http.ResponseWriter, req *http.Request) {
	origin := req.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", allowHeaders)
	h.Set("Access-Control-Max-Age", maxAge)
	w.WriteHeader(http.StatusNoContent)
}

func (r *Relay) handleForward(w http.ResponseWriter, req *http.Request) {
	origin := req.Header.Get("Origin")
	if !r.Allowed(origin) {
		r.logger.Warn("relay rejected origin", "origin", origin, "request_id", middleware.RequestIDFrom(req.Context()))
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	allowOrigin := origin
	if allowOrigin == "" {
		allowOrigin = "*"
	}

	status, body, err := r.forward(req)
	if err != nil {
		r.logger.Error("relay upstream failed", "path", req.URL.Path, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", allowOrigin)
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", allowHeaders)
	w.WriteHeader(status)
	w.Write(body)
}

func (r *Relay) forward(req *http.Request) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(req.Context(), r.cfg.Timeout)
	defer cancel()

	var body io.Reader
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	target := strings.TrimRight(r.cfg.Upstream, "/") + req.URL.Path
	if req.URL.RawQuery != "" {
		target += "?" + req.URL.RawQuery
	}

	upReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return 0, nil, err
	}
	upReq.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	upReq.Header.Set("Content-Type", "application/json")
	upReq.Header.Set("Notion-Version", r.cfg.Version)
	if id := middleware.RequestIDFrom(req.Context()); id != "" {
		upReq.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := r.http.Do(upReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}
