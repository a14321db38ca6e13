package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	taskDelivery "taskmanager-backend/internal/task/delivery"
	taskUsecasePkg "taskmanager-backend/internal/task/usecase"
	userDelivery "taskmanager-backend/internal/user/delivery"
	userUsecasePkg "taskmanager-backend/internal/user/usecase"
	"taskmanager-backend/pkg/config"
	"taskmanager-backend/pkg/logging"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	userUsecase userUsecasePkg.UserUsecase
	taskUsecase taskUsecasePkg.TaskUsecase
	config      *config.Config
	log         logging.Logger
	userHandler *userDelivery.UserHandler
	taskHandler *taskDelivery.TaskHandler
}

func NewHandler(userUc userUsecasePkg.UserUsecase, taskUc taskUsecasePkg.TaskUsecase, cfg *config.Config, log logging.Logger) *Handler {
	return &Handler{
		userUsecase: userUc,
		taskUsecase: taskUc,
		config:      cfg,
		log:         log,
		userHandler: userDelivery.NewUserHandler(userUc, log),
		taskHandler: taskDelivery.NewTaskHandler(taskUc, log),
	}
}

// Engine builds the router with middleware and routes but does not listen.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinMiddleware(h.log))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.userUsecase, h.userHandler, h.taskHandler)
	return r
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for at most the configured shutdown timeout.
func (h *Handler) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info(ctx, "server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.log.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
