package httpapi

import (
	"errors"
	"net/http"

	"accounting_docs_service/internal/app"
	"accounting_docs_service/internal/domain/company"
	"accounting_docs_service/internal/domain/document"
	"accounting_docs_service/internal/domain/notification"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto HTTP responses. Anything unrecognised is
// treated as a storage failure: logged in full, answered with a generic 500.
func (s *Server) writeError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, app.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, app.ErrForbidden):
		status, msg = http.StatusForbidden, "Access denied"
	case errors.Is(err, notification.ErrNotFound):
		status, msg = http.StatusNotFound, "Notification not found"
	case errors.Is(err, document.ErrNotFound):
		status, msg = http.StatusNotFound, "Document not found"
	case errors.Is(err, company.ErrCompanyNotFound):
		status, msg = http.StatusNotFound, "Company not found"
	case errors.Is(err, company.ErrAccountantNotFound):
		status, msg = http.StatusNotFound, "Accountant not found"
	case errors.Is(err, document.ErrAlreadyProcessed):
		status, msg = http.StatusConflict, "Document has already been processed"
	case errors.Is(err, company.ErrDuplicateEmail):
		status, msg = http.StatusConflict, "Email is already registered"
	}

	if status == http.StatusInternalServerError {
		requestLogger(c, s.logger).WithError(err).Error("Storage failure")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
