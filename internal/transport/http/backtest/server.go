// Package backtesthttp is the thin HTTP surface over the backtest
// orchestrator, grounded on the teacher's internal/transport/http/backtest
// (gin.New + gin.Recovery + a /api/backtest route group), trimmed to the
// two operations SPEC_FULL.md's §6 external interface names: submit a run,
// poll its result.
package backtesthttp

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"barterbench/internal/backtest"
	"barterbench/internal/core"
)

// Server exposes POST /backtests and GET /backtests/:id over an
// in-memory job table. Each submission runs asynchronously in its own
// goroutine; callers poll GET /backtests/:id until status leaves "running".
type Server struct {
	addr         string
	orchestrator *backtest.Orchestrator
	router       *gin.Engine

	mu      sync.Mutex
	results map[string]jobRecord
}

type jobStatus string

const (
	statusRunning   jobStatus = "running"
	statusCompleted jobStatus = "completed"
)

type jobRecord struct {
	Status jobStatus             `json:"status"`
	Result *backtest.BacktestResult `json:"result,omitempty"`
}

func NewServer(addr string, orchestrator *backtest.Orchestrator) *Server {
	if addr == "" {
		addr = ":8080"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		addr:         addr,
		orchestrator: orchestrator,
		router:       router,
		results:      make(map[string]jobRecord),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/backtests")
	api.POST("", s.handleSubmit)
	api.GET("/:id", s.handleStatus)
}

// Run blocks serving HTTP until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

type submitRequest struct {
	StrategyName    string  `json:"strategy_name" binding:"required"`
	StrategyVersion int     `json:"strategy_version"`
	Symbols         []int64 `json:"symbols" binding:"required"`
	StartDate       int64   `json:"start_date" binding:"required"`
	EndDate         int64   `json:"end_date" binding:"required"`
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	symbols := make([]core.SymbolId, 0, len(req.Symbols))
	for _, id := range req.Symbols {
		symbols = append(symbols, core.SymbolId(id))
	}

	job := backtest.BacktestJob{
		JobID:           uuid.NewString(),
		StrategyName:    req.StrategyName,
		StrategyVersion: req.StrategyVersion,
		Symbols:         symbols,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		RequestedAt:     time.Now().Unix(),
	}

	s.mu.Lock()
	s.results[job.JobID] = jobRecord{Status: statusRunning}
	s.mu.Unlock()

	go func() {
		result := s.orchestrator.Execute(context.Background(), job)
		s.mu.Lock()
		s.results[job.JobID] = jobRecord{Status: statusCompleted, Result: &result}
		s.mu.Unlock()
	}()

	c.JSON(http.StatusAccepted, gin.H{"job_id": job.JobID})
}

func (s *Server) handleStatus(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	record, ok := s.results[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown job %s", id)})
		return
	}
	c.JSON(http.StatusOK, record)
}
