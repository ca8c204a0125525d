// Package lbserver serves the leaderboard HTTP API backed by the SQLite
// score store. It speaks the same contract the game client consumes.
package lbserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/stack-top/internal/playername"
	"github.com/vovakirdan/stack-top/internal/storage"
)

// ServerConfig holds configuration for the leaderboard server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DBPath is the path to the scores database.
	DBPath string

	// Limit is the default number of rows returned by GET /lb.
	Limit int

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:         ":8080",
		DBPath:          "~/.stacktop/scores.db",
		Limit:           storage.DefaultLimit,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Scores is the persistence the server needs.
type Scores interface {
	SaveScore(ctx context.Context, e storage.ScoreEntry) (int64, error)
	TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(ctx context.Context, gameID string) (*storage.GameStats, error)
}

// Server is the leaderboard HTTP server.
type Server struct {
	config ServerConfig
	scores Scores
	logger *log.Logger
	http   *http.Server
}

// NewServer creates a server over scores. A nil logger logs to stderr.
func NewServer(cfg ServerConfig, scores Scores, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "stacktop-lb",
		})
	}
	if cfg.Limit <= 0 {
		cfg.Limit = storage.DefaultLimit
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{config: cfg, scores: scores, logger: logger}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/lb", s.handleBoard)
	mux.HandleFunc("/score", s.handleScore)
	mux.HandleFunc("/stats", s.handleStats)
	return s.loggingMiddleware(mux)
}

// boardRow is one leaderboard row on the wire.
type boardRow struct {
	Value          int    `json:"value"`
	Player         string `json:"player"`
	AdditionalInfo string `json:"additionalInfo"`
}

// scoreRequest is the body of POST /score.
type scoreRequest struct {
	GameID string `json:"gameid"`
	Player string `json:"player"`
	Value  int    `json:"value"`
	Addi   string `json:"addi"`
}

type scoreResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

type statsResponse struct {
	GameID     string    `json:"gameid"`
	Games      int       `json:"games"`
	Players    int       `json:"players"`
	HighScore  int       `json:"highScore"`
	AvgScore   float64   `json:"avgScore"`
	LastPlayed time.Time `json:"lastPlayed"`
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	gameID := r.URL.Query().Get("gameid")
	if gameID == "" {
		http.Error(w, "missing gameid", http.StatusBadRequest)
		return
	}

	limit := s.config.Limit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.scores.TopScores(r.Context(), gameID, limit)
	if err != nil {
		s.logger.Error("cannot load board", "gameid", gameID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rows := make([]boardRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, boardRow{Value: e.Score, Player: e.Player, AdditionalInfo: e.Info})
	}
	writeJSON(w, rows)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.GameID == "" {
		http.Error(w, "missing gameid", http.StatusBadRequest)
		return
	}
	if err := playername.Validate(req.Player); err != nil {
		http.Error(w, playername.Message(err), http.StatusBadRequest)
		return
	}
	if req.Value < 0 {
		http.Error(w, "negative score", http.StatusBadRequest)
		return
	}

	id, err := s.scores.SaveScore(r.Context(), storage.ScoreEntry{
		GameID: req.GameID,
		Player: req.Player,
		Score:  req.Value,
		Info:   req.Addi,
	})
	if err != nil {
		s.logger.Error("cannot save score", "gameid", req.GameID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("score saved", "gameid", req.GameID, "player", req.Player, "score", req.Value)
	writeJSON(w, scoreResponse{OK: true, ID: id})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	gameID := r.URL.Query().Get("gameid")
	if gameID == "" {
		http.Error(w, "missing gameid", http.StatusBadRequest)
		return
	}

	stats, err := s.scores.GetGameStats(r.Context(), gameID)
	if err != nil {
		s.logger.Error("cannot load stats", "gameid", gameID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, statsResponse{
		GameID:     stats.GameID,
		Games:      stats.GamesCount,
		Players:    stats.Players,
		HighScore:  stats.HighScore,
		AvgScore:   stats.AvgScore,
		LastPlayed: stats.LastPlayed,
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs each request with its status and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("lbserver: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting leaderboard server", "address", ln.Addr().String())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("lbserver: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
