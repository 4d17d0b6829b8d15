package httpapi

import (
	"net/http"
	"time"

	"accounting_docs_service/internal/domain/document"
	"accounting_docs_service/internal/domain/notification"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type uploadRequest struct {
	// CompanyID is only read when an admin uploads on a company's behalf.
	CompanyID     int64   `json:"company_id"`
	DocumentType  string  `json:"document_type" binding:"required"`
	OperationType string  `json:"operation_type" binding:"required"`
	DocumentDate  string  `json:"document_date" binding:"required"`
	VendorClient  string  `json:"vendor_client"`
	Amount        float64 `json:"amount"`
	Reference     string  `json:"reference"`
	FileName      string  `json:"file_name" binding:"required"`
	FilePath      string  `json:"file_path"`
	FileSize      int64   `json:"file_size"`
	MimeType      string  `json:"mime_type"`
}

type processRequest struct {
	Status   string `json:"status" binding:"required"`
	Comments string `json:"comments"`
}

func (s *Server) handleUploadDocument() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req uploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request: "+err.Error())
			return
		}

		date, err := time.Parse(dateLayout, req.DocumentDate)
		if err != nil {
			badRequest(c, "document_date must use YYYY-MM-DD")
			return
		}

		p, _ := principal(c)
		companyID := req.CompanyID
		if p.Type == notification.RecipientCompany {
			companyID = p.ID
		}
		if companyID <= 0 {
			badRequest(c, "company_id is required")
			return
		}

		d, err := s.documents.Upload(c.Request.Context(), companyID, document.Document{
			DocumentType:  req.DocumentType,
			OperationType: req.OperationType,
			DocumentDate:  date,
			VendorClient:  req.VendorClient,
			Amount:        req.Amount,
			Reference:     req.Reference,
			FileInfo: document.FileInfo{
				FileName: req.FileName,
				FilePath: req.FilePath,
				FileSize: req.FileSize,
				MimeType: req.MimeType,
			},
		})
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

func (s *Server) handleListDocuments() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := principal(c)
		list, err := s.documents.List(c.Request.Context(), p, document.Status(c.Query("status")))
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func (s *Server) handleGetDocument() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		p, _ := principal(c)
		d, err := s.documents.Get(c.Request.Context(), id, p)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func (s *Server) handleProcessDocument() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req processRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request: "+err.Error())
			return
		}

		p, _ := principal(c)
		d, err := s.documents.Process(c.Request.Context(), id, req.Status, req.Comments, p)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
