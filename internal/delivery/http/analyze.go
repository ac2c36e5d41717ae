package http

import (
	"errors"
	"net/http"

	"sol-advisor/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAnalyze(base *echo.Group) {
	analyzeGroup := base.Group("/analyze")
	analyzeGroup.POST("", h.runAnalyze)
}

func (h *HttpAPIHandler) runAnalyze(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.AnalyzeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.AnalysisService.Analyze(ctx, *req)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to run analysis"})
	}

	return c.JSON(http.StatusOK, result)
}
