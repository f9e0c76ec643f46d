// Package server exposes the editing session over HTTP. It is a thin shell:
// every route maps onto exactly one session operation, and the session owns
// all document state.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"invoicepad/internal/editor"
)

// Server wires the editing session into a gin engine.
type Server struct {
	engine *gin.Engine
	sess   *editor.Session
	log    logrus.FieldLogger
}

// New builds the HTTP surface around an editing session.
func New(sess *editor.Session, logger logrus.FieldLogger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: gin.New(),
		sess:   sess,
		log:    logger.WithField("component", "server"),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

// Handler returns the http.Handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("HTTP editor listening")
	return s.engine.Run(addr)
}

func (s *Server) routes() {
	s.engine.GET("/", s.viewHTML)

	api := s.engine.Group("/api/invoice")
	api.GET("", s.getInvoice)
	api.PUT("/fields", s.commitField)

	api.POST("/items", s.addLineItem)
	api.PUT("/items/:id", s.commitLineItem)
	api.DELETE("/items/:id", s.removeLineItem)

	api.POST("/social-links", s.addSocialLink)
	api.PUT("/social-links/:id", s.updateSocialLink)
	api.DELETE("/social-links/:id", s.removeSocialLink)
	// Ephemeral inline-editor state lives on its own path: at most one
	// editor is open at a time, so it is a singleton resource.
	api.PUT("/social-link-editor", s.openSocialLinkEditor)
	api.DELETE("/social-link-editor", s.closeSocialLinkEditor)

	api.POST("/logo", s.uploadLogo)
	api.DELETE("/logo", s.removeLogo)

	api.GET("/export", s.exportInvoice)
	api.POST("/import", s.importInvoice)
	api.POST("/reset", s.resetInvoice)
	api.GET("/pdf", s.printPDF)
}

// requestLogger tags each request with an id and logs it on completion.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("Request handled")
	}
}
