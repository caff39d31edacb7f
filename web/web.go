// Package web provides an HTTP API for capital gains calculations.
//
// The server accepts calculation requests on POST /api/calculate and,
// when started with a file, keeps the report of that file cached. With
// watching enabled the report is recomputed whenever the file changes and
// connected clients are notified over Server-Sent Events.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/robinvdvleuten/costbasis"
	errfmt "github.com/robinvdvleuten/costbasis/errors"
	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/loader"
	"github.com/robinvdvleuten/costbasis/telemetry"
)

// DefaultMaxBodyBytes caps the size of a calculation request body.
const DefaultMaxBodyBytes int64 = 10 << 20

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool
	MaxBodyBytes int64

	// Config is the base configuration of every calculation. Requests may
	// override its strict flag.
	Config *ledger.Config

	mu       sync.RWMutex
	report   *ledger.Report
	filename string // Absolute path of the watched file

	// inputFile is the file path passed to New(), used only for initial loading.
	inputFile string

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// New creates a server on port. inputFile may be empty, in which case only
// the calculation endpoint has something to serve.
func New(port int, inputFile string) *Server {
	return NewWithVersion(port, inputFile, "", "")
}

func NewWithVersion(port int, inputFile, version, commitSHA string) *Server {
	return &Server{
		Port:         port,
		Host:         "127.0.0.1",
		Version:      version,
		CommitSHA:    commitSHA,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Config:       ledger.NewConfig(),
		inputFile:    inputFile,
		sseClients:   make(map[chan string]struct{}),
	}
}

func (s *Server) Start(ctx context.Context) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	if s.inputFile != "" {
		loadTimer := timer.Child(fmt.Sprintf("web.load %s", filepath.Base(s.inputFile)))
		if err := s.reloadReport(ctx); err != nil {
			loadTimer.End()
			timer.End()
			return fmt.Errorf("failed to load %s: %w", s.inputFile, err)
		}
		loadTimer.End()

		if s.WatchEnabled {
			if err := s.startWatcher(ctx); err != nil {
				timer.End()
				return fmt.Errorf("failed to start file watcher: %w", err)
			}
		}
	}

	setupTimer := timer.Child("web.setup_router")
	handler := s.setupRouter()
	setupTimer.End()
	timer.End()

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	telemetry.Logger(ctx).Info("listening", "addr", "http://"+addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(withRequestID)
	r.Use(cors.Handler(corsOptions))

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Get("/health", s.handleHealth)
		r.Get("/report", s.handleGetReport)
		r.Get("/balances", s.handleGetBalances)
		r.Get("/events", s.handleSSE)
	})

	return r
}

// reloadReport loads the watched file and recomputes its report.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadReport(ctx context.Context) error {
	result, err := loader.New().Load(ctx, s.inputFile)
	if err != nil {
		return err
	}

	report := costbasis.CalculateInputs(s.Config.WithContext(ctx), result.Inputs)
	if errs := report.Errors(); len(errs) > 0 {
		formatter := errfmt.NewTextFormatter()
		logger := telemetry.Logger(ctx)
		for _, err := range errs {
			logger.Warn("transaction failed", "file", result.Filename, "error", formatter.Format(err))
		}
	}

	filename, err := filepath.Abs(result.Filename)
	if err != nil {
		filename = result.Filename
	}

	s.mu.Lock()
	s.report = report
	s.filename = filename
	s.mu.Unlock()

	return nil
}

// cachedReport returns the report of the watched file, or nil.
func (s *Server) cachedReport() *ledger.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// startWatcher watches the input file and recomputes the report when it changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	s.mu.RLock()
	filename := s.filename
	s.mu.RUnlock()

	if err := watcher.Add(filename); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	logger := telemetry.Logger(ctx)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove and Rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", "error", err)
		}
	}
}

// handleFileChange recomputes the report and notifies SSE clients.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	logger := telemetry.Logger(ctx)

	if err := s.reloadReport(ctx); err != nil {
		logger.Error("failed to reload report", "file", s.inputFile, "error", err)
		return
	}

	s.mu.RLock()
	filename := s.filename
	s.mu.RUnlock()

	// Re-add to catch files re-created by atomic saves
	if err := watcher.Add(filename); err != nil {
		logger.Warn("failed to watch file", "file", filename, "error", err)
	}

	logger.Info("report recomputed", "file", filename)
	s.broadcast("reload")
}
