// Package feed serves the live advisory picture to external consumers such as
// a radar display: a websocket stream of tick snapshots plus plain JSON
// endpoints for the latest state, health and metrics.
package feed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/AbhiramSankar/Simplified-TCAS/internal/sim"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/logger"
	"github.com/AbhiramSankar/Simplified-TCAS/pkg/util"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Feed struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"feed"`
}

func DefaultConfig() Config {
	var c Config
	c.Feed.Addr = ":8086"
	return c
}

// LoadConfig reads the feed section of a YAML file over the defaults.
func LoadConfig(cfgPath string) (Config, error) {
	c := DefaultConfig()
	if err := util.LoadConfigInto(cfgPath, &c); err != nil {
		return Config{}, fmt.Errorf("error reading feed configuration: %w", err)
	}
	return c, nil
}

// clientBuffer bounds how far a slow client may lag before ticks are dropped
// for it.
const clientBuffer = 16

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type client struct {
	conn *websocket.Conn
	send chan sim.TickSnapshot
}

// Hub fans tick snapshots out to websocket clients. It implements
// sim.Observer; OnTick never blocks the simulation.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	latest  *sim.TickSnapshot
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) OnTick(s sim.TickSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = &s
	for c := range h.clients {
		select {
		case c.send <- s:
		default:
			// slow client, skip this tick for it
		}
	}
}

// Latest returns the most recent snapshot, if any tick has completed.
func (h *Hub) Latest() (sim.TickSnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return sim.TickSnapshot{}, false
	}
	return *h.latest, true
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan sim.TickSnapshot, clientBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest != nil {
		c.send <- *h.latest
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("feed: websocket upgrade error: %v", err)
		return
	}
	c := h.register(conn)
	logger.Infof("feed: client %s connected", r.RemoteAddr)

	go func() {
		for s := range c.send {
			if err := util.SendJSON(conn, s); err != nil {
				logger.Debugf("feed: write to %s failed: %v", r.RemoteAddr, err)
				return
			}
		}
	}()

	// Clients only listen; reading detects the close.
	defer func() {
		h.unregister(c)
		conn.Close()
		logger.Infof("feed: client %s disconnected", r.RemoteAddr)
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf("feed: error encoding response: %v", err)
	}
}

func (h *Hub) handleState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no tick completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok", "clients": h.Clients()}
	if s, ok := h.Latest(); ok {
		resp["run_id"] = s.RunID
		resp["tick"] = s.Tick
		resp["time_s"] = s.TimeS
	}
	writeJSON(w, http.StatusOK, resp)
}

// NewRouter wires the feed endpoints. gatherer backs /metrics.
func NewRouter(h *Hub, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ws", h.serveWS)
	r.Get("/state", h.handleState)
	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// Start serves handler on addr in the background and returns the server so
// the caller can shut it down.
func Start(addr string, handler http.Handler) *http.Server {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("feed: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("feed: ListenAndServe error: %v", err)
		}
	}()
	return srv
}
