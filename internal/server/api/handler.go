package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dto"
)

const maxBodyBytes = 1 << 20

func (s *HTTPServer) register(c *gin.Context) {
	var req dto.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid json body"})
		return
	}

	u, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", u.UserName)
	c.JSON(http.StatusCreated, gin.H{"owner_id": u.ID})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req dto.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid json body"})
		return
	}

	sess, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *HTTPServer) list(c *gin.Context) {
	items, err := s.records.List(c.Request.Context(), OwnerIDFromContext(c), c.Param("collection"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *HTTPServer) upsert(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, dto.Error{Error: "body too large"})
		return
	}

	out, err := s.records.Upsert(c.Request.Context(), OwnerIDFromContext(c), c.Param("collection"), body)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

func (s *HTTPServer) delete(c *gin.Context) {
	err := s.records.Delete(c.Request.Context(), OwnerIDFromContext(c), c.Param("collection"), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *HTTPServer) contentURL(c *gin.Context) {
	out, err := s.content.PresignUpload(c.Request.Context(), OwnerIDFromContext(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// writeError maps service sentinels onto status codes. Unexpected errors are
// logged and reported without detail.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: "not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, dto.Error{Error: "already exists"})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "unauthorized"})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal error"})
	}
}
