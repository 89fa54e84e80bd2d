package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"plate-service/internal/fuzzy"
	"plate-service/internal/http/middleware"
	"plate-service/internal/importer"
	"plate-service/internal/service"
)

type Handler struct {
	plateService *service.PlateService
	log          zerolog.Logger
}

func NewHandler(plateService *service.PlateService, log zerolog.Logger) *Handler {
	return &Handler{
		plateService: plateService,
		log:          log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	plates := r.Group("/plates")
	{
		plates.GET("/search", h.searchPlates)
		plates.GET("/match", h.matchPlate)
		plates.GET("/status", h.getStatus)
	}

	// Changing the collection requires an operator or admin token.
	protected := r.Group("/plates")
	protected.Use(authMiddleware)
	{
		protected.POST("/import", h.importPlates)
		protected.POST("/import/remote", h.importRemote)
		protected.DELETE("", h.clearPlates)
	}
}

func (h *Handler) searchPlates(c *gin.Context) {
	result := h.plateService.Search(c.Query("q"))
	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) matchPlate(c *gin.Context) {
	plate := c.Query("plate")
	if strings.TrimSpace(plate) == "" {
		c.JSON(http.StatusBadRequest, errorResponse("plate is required"))
		return
	}

	c.JSON(http.StatusOK, successResponse(fuzzy.Match(plate, c.Query("q"))))
}

func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(h.plateService.Status()))
}

func (h *Handler) importPlates(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Text   string `json:"text" binding:"required"`
		HTML   bool   `json:"html"`
		Column int    `json:"column"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.plateService.Import(c.Request.Context(), principal, service.ImportInput{
		Text:   req.Text,
		HTML:   req.HTML,
		Column: req.Column,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) importRemote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		URL    string `json:"url"`
		Column int    `json:"column"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.plateService.ImportRemote(c.Request.Context(), principal, service.RemoteImportInput{
		URL:    req.URL,
		Column: req.Column,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) clearPlates(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := h.plateService.Clear(c.Request.Context(), principal); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(h.plateService.Status()))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var ambiguous *importer.AmbiguousColumnError
	switch {
	case errors.As(err, &ambiguous):
		resp := errorResponse(err.Error())
		resp["candidates"] = ambiguous.Candidates
		c.JSON(http.StatusConflict, resp)
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUpstream):
		h.log.Warn().Err(err).Msg("plate list fetch failed")
		c.JSON(http.StatusBadGateway, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
