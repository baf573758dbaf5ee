// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"veridoc/internal/config"
	"veridoc/internal/core"
	"veridoc/internal/document"
	"veridoc/internal/formatters"
	"veridoc/internal/formatters/shared"
	"veridoc/internal/review"
	"veridoc/internal/version"

	// Import formatters to register them
	_ "veridoc/internal/formatters/csv"
	_ "veridoc/internal/formatters/json"
	_ "veridoc/internal/formatters/text"
	_ "veridoc/internal/formatters/yaml"
)

// WebServer represents the web server instance
type WebServer struct {
	port   string
	cfg    *config.Config
	server *http.Server
}

// ValidateRequest is the payload for both API endpoints
type ValidateRequest struct {
	Fields       map[string]string `json:"fields"`
	DocumentType string            `json:"documentType,omitempty"`
	ImageQuality string            `json:"imageQuality,omitempty"`
	Checks       []string          `json:"checks,omitempty"`
	Redact       bool              `json:"redact,omitempty"`
}

// APIResponse wraps every API result in a success envelope
type APIResponse struct {
	Success bool             `json:"success"`
	Result  *shared.Response `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// NewWebServer creates a new web server instance
func NewWebServer(port string, cfg *config.Config) *WebServer {
	if cfg == nil {
		cfg = config.LoadConfigOrDefault("")
	}
	return &WebServer{
		port: port,
		cfg:  cfg,
	}
}

// Router builds the HTTP routing table. Exposed separately so tests can
// drive it with httptest without binding a port.
func (ws *WebServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", ws.handleHealth)
	r.Get("/api/version", ws.handleVersion)
	r.Post("/api/validate", ws.handleValidate)
	r.Post("/api/analyze", ws.handleAnalyze)

	return r
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Short(),
	})
}

func (ws *WebServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Full())
}

// newProcessor builds a processor for the requested checks, applying any
// per-validator confidence floors from the server configuration.
func (ws *WebServer) newProcessor(checks []string) *core.Processor {
	set := core.BuildValidatorSet(core.ParseChecksToRun(checks))
	if ws.cfg != nil {
		set = core.ApplyConfidenceFloors(set, ws.cfg.ValidatorFloors(nil))
	}
	return core.NewProcessor(set)
}

// handleValidate runs field validation and correction only.
func (ws *WebServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := ws.decodeRequest(w, r)
	if !ok {
		return
	}

	processor := ws.newProcessor(req.Checks)
	analyzer := core.NewAnalyzer(processor, nil)

	result := analyzer.Analyze(req.Fields, document.Metadata{
		DocumentType: req.DocumentType,
		ImageQuality: req.ImageQuality,
	})
	// Validation endpoint returns field outcomes only.
	result.FraudAnalysis = nil

	ws.writeResult(w, req, result)
}

// handleAnalyze runs the full pipeline including fraud analysis and
// review waivers.
func (ws *WebServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := ws.decodeRequest(w, r)
	if !ok {
		return
	}

	processor := ws.newProcessor(req.Checks)

	var waivers *review.Manager
	if ws.cfg.Defaults.WaiversFile != "" {
		waivers = review.NewManager(ws.cfg.Defaults.WaiversFile)
	}
	analyzer := core.NewAnalyzer(processor, waivers)

	result := analyzer.Analyze(req.Fields, document.Metadata{
		DocumentType: req.DocumentType,
		ImageQuality: req.ImageQuality,
	})

	ws.writeResult(w, req, result)
}

func (ws *WebServer) decodeRequest(w http.ResponseWriter, r *http.Request) (*ValidateRequest, bool) {
	var req ValidateRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "invalid request body: " + err.Error(),
		})
		return nil, false
	}
	if len(req.Fields) == 0 {
		writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "fields must not be empty",
		})
		return nil, false
	}
	return &req, true
}

func (ws *WebServer) writeResult(w http.ResponseWriter, req *ValidateRequest, result *core.DocumentResult) {
	options := formatters.FormatterOptions{
		ConfidenceLevel: core.ParseConfidenceLevels(ws.cfg.Defaults.ConfidenceLevels),
		Verbose:         ws.cfg.Defaults.Verbose,
		ShowValues:      !req.Redact,
	}

	resp := shared.ConvertResult(result, options)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Result:  &resp,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Start starts the web server and blocks until shutdown. If the requested
// port is taken, nearby ports are tried before giving up.
func (ws *WebServer) Start() error {
	handler := ws.Router()

	var listener net.Listener
	var lastError error
	port := ws.port
	for i := 0; i < 10; i++ {
		l, err := net.Listen("tcp", ":"+port)
		if err == nil {
			listener = l
			break
		}
		lastError = err
		fmt.Printf("Port %s is not available, trying an alternative...\n", port)
		port = nextPort(port)
	}
	if listener == nil {
		return fmt.Errorf("no available port found: %w", lastError)
	}

	ws.server = &http.Server{
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	fmt.Printf("veridoc web server listening on http://localhost:%s\n", port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.server.Serve(listener)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-stop:
		fmt.Println("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return ws.server.Shutdown(ctx)
	}
}

// nextPort picks the next candidate port after a bind failure.
func nextPort(current string) string {
	base := 8080
	fmt.Sscanf(current, "%d", &base)
	return fmt.Sprintf("%d", base+1)
}
