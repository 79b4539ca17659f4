// Package api exposes the tracker over a JSON HTTP API. Authentication is
// delegated to a fronting proxy that forwards the owner identity in a header.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
)

const healthPath = "/healthz"

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(svc Service) *gin.Engine {
	r := gin.New()
	r.Use(requestLogging(healthPath), gin.Recovery())

	r.GET(healthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constants.Version})
	})

	habits := NewHabitHandler(svc)
	v := r.Group("/api", requireOwner())
	{
		v.GET("/habits", habits.List)
		v.POST("/habits", habits.Create)
		v.GET("/habits/:id", habits.Get)
		v.PUT("/habits/:id", habits.Update)
		v.DELETE("/habits/:id", habits.Delete)
		v.POST("/habits/:id/reports", habits.SubmitReport)
	}
	return r
}

// Serve runs the API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server exited properly")
		return nil
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
