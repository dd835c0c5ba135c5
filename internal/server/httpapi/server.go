// Package httpapi exposes the HTTP surface of the service: registration,
// login, the ownership-scoped user CRUD and the file upload pipeline.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/uploads"
	"github.com/dmitrijs2005/filekeeper/internal/server/users"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address         string
	logger          logging.Logger
	users           *users.Service
	uploads         *uploads.Service
	jwtSecret       []byte
	uploadSizeLimit int64
}

func NewServer(cfg *config.Config, l logging.Logger, us *users.Service, fs *uploads.Service) *Server {
	return &Server{
		address:         cfg.EndpointAddr,
		logger:          l.With("module", "http_server"),
		users:           us,
		uploads:         fs,
		jwtSecret:       []byte(cfg.SecretKey),
		uploadSizeLimit: cfg.UploadSizeLimit,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	api.GET("/health", s.health)

	ag := api.Group("/auth")
	ag.POST("/register", s.register)
	ag.POST("/login", s.login)

	ug := api.Group("/user", s.authMiddleware(), s.ownershipGate(auth.RoleAdmin, auth.RoleUser))
	ug.GET("/fetch/:id", s.fetchUser)
	ug.PUT("/update/:id", s.updateUser)
	ug.DELETE("/delete/:id", s.deleteUser)

	api.POST("/file/upload", s.uploadFile)

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
