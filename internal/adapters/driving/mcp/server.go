package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// ServerName is the implementation name announced to clients.
const ServerName = "static-mcpify"

// Server is the MCP server for an smcp content directory.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu       sync.Mutex
	registry *domain.ToolRegistry
	debounce time.Duration
}

// NewServer scans the content store and registers one MCP tool per
// registry operation.
func NewServer(ctx context.Context, ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	registry, err := ports.Tools.BuildToolSurface(ctx)
	if err != nil {
		return nil, fmt.Errorf("building tool surface: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: Version,
	}

	s := &Server{
		ports:    ports,
		server:   mcp.NewServer(impl, nil),
		debounce: DefaultDebounce,
	}
	if err := s.registerTools(registry); err != nil {
		return nil, err
	}
	s.registry = registry

	logger.Info("Serving %d tools from %s", registry.Len(), ports.ContentDir)
	return s, nil
}

// ToolNames returns the names of the currently served tools.
func (s *Server) ToolNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Names()
}

// Reload rescans the content store and swaps the served tool set.
// On a scan error the current tools are kept.
func (s *Server) Reload(ctx context.Context) error {
	registry, err := s.ports.Tools.BuildToolSurface(ctx)
	if err != nil {
		return fmt.Errorf("building tool surface: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string]bool, registry.Len())
	for _, name := range registry.Names() {
		current[name] = true
	}
	var gone []string
	for _, name := range s.registry.Names() {
		if !current[name] {
			gone = append(gone, name)
		}
	}
	if len(gone) > 0 {
		s.server.RemoveTools(gone...)
	}
	if err := s.registerTools(registry); err != nil {
		return err
	}
	s.registry = registry

	logger.Info("Reloaded %d tools (%d removed)", registry.Len(), len(gone))
	return nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP handler serving /mcp and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil))
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("Listening on %s (MCP endpoint /mcp)", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type healthResponse struct {
	Status     string `json:"status"`
	ContentDir string `json:"contentDir"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthResponse{ //nolint:errcheck
		Status:     "ok",
		ContentDir: s.ports.ContentDir,
	})
}
