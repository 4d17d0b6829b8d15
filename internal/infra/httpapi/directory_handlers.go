package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type accountantRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type companyRequest struct {
	Name         string `json:"name" binding:"required"`
	TaxID        string `json:"tax_id"`
	Email        string `json:"email" binding:"required"`
	AccountantID *int64 `json:"accountant_id"`
}

type assignRequest struct {
	AccountantID int64 `json:"accountant_id" binding:"required"`
}

func (s *Server) handleCreateAccountant() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req accountantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request: "+err.Error())
			return
		}
		a, err := s.directory.AddAccountant(c.Request.Context(), req.Name, req.Email)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func (s *Server) handleListAccountants() gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := s.directory.Accountants(c.Request.Context())
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func (s *Server) handleCreateCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req companyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request: "+err.Error())
			return
		}
		co, err := s.directory.AddCompany(c.Request.Context(), req.Name, req.TaxID, req.Email, req.AccountantID)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, co)
	}
}

func (s *Server) handleListCompanies() gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := s.directory.Companies(c.Request.Context())
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func (s *Server) handleAssignAccountant() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req assignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request: "+err.Error())
			return
		}
		co, err := s.directory.AssignAccountant(c.Request.Context(), id, req.AccountantID)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, co)
	}
}
