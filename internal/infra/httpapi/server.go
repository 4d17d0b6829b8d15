package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"accounting_docs_service/internal/app"
	"accounting_docs_service/internal/domain/notification"
	"accounting_docs_service/internal/domain/policy"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server exposes the notification, document and directory services over HTTP.
type Server struct {
	router    *gin.Engine
	notifs    *app.NotificationService
	documents *app.DocumentService
	directory *app.DirectoryService
	logger    *logrus.Entry
	jwtSecret string
}

func NewServer(
	notifs *app.NotificationService,
	documents *app.DocumentService,
	directory *app.DirectoryService,
	jwtSecret string,
	logger *logrus.Entry,
) *Server {
	s := &Server{
		router:    gin.New(),
		notifs:    notifs,
		documents: documents,
		directory: directory,
		logger:    logger,
		jwtSecret: jwtSecret,
	}
	s.setupRoutes()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("Shutting down HTTP server...")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.Use(RequestLogger(s.logger), Recovery(s.logger))

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.Use(Authenticate(s.jwtSecret))
	{
		notifications := api.Group("/notifications")
		{
			notifications.GET("", Require(policy.ReadNotifications), s.handleListNotifications())
			notifications.GET("/accountant", RequireRole(notification.RecipientAccountant), s.handleListNotifications())
			notifications.GET("/unread-count", Require(policy.ReadNotifications), s.handleUnreadCount())
			notifications.PATCH("/read-all", Require(policy.MarkNotifications), s.handleMarkAllRead())
			notifications.PATCH("/:id/read", Require(policy.MarkNotifications), s.handleMarkRead())
		}

		documents := api.Group("/documents")
		{
			documents.POST("", Require(policy.UploadDocuments), s.handleUploadDocument())
			documents.GET("", Require(policy.ViewDocuments), s.handleListDocuments())
			documents.GET("/:id", Require(policy.ViewDocuments), s.handleGetDocument())
			documents.PATCH("/:id/process", Require(policy.ProcessDocuments), s.handleProcessDocument())
		}

		admin := api.Group("/admin")
		{
			admin.DELETE("/notifications/:id", Require(policy.DeleteNotifications), s.handleDeleteNotification())
			admin.POST("/accountants", Require(policy.ManageDirectory), s.handleCreateAccountant())
			admin.GET("/accountants", Require(policy.ManageDirectory), s.handleListAccountants())
			admin.POST("/companies", Require(policy.ManageDirectory), s.handleCreateCompany())
			admin.GET("/companies", Require(policy.ManageDirectory), s.handleListCompanies())
			admin.PATCH("/companies/:id/accountant", Require(policy.ManageDirectory), s.handleAssignAccountant())
		}
	}
}

// pathID parses a positive integer path parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
