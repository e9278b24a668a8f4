package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/timetabler/internal/logging"
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Server exposes timetable generation over HTTP: an HTML form for people
// and a JSON API for scripts.
type Server struct {
	generate service.GenerateService
	// history is nil when run history is disabled.
	history service.HistoryService
	log     *logging.Logger
	engine  *gin.Engine
}

func New(generate service.GenerateService, history service.HistoryService, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{generate: generate, history: history, log: log}
	s.engine = s.newRouter()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(s.log))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	router.GET("/healthcheck", healthCheck)
	router.GET("/", s.showForm)
	router.POST("/generate", s.submitForm)

	api := router.Group("/api")
	{
		api.POST("/timetables", s.createTimetables)
		api.POST("/render", s.renderMarkdown)
		api.GET("/runs", s.listRuns)
		api.GET("/runs/:id", s.getRun)
	}

	return router
}

// Run serves on addr until ctx is cancelled, then drains open requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
