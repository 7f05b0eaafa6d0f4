package payroll

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/apperror"
	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreatePeriod(c *gin.Context) {
	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreatePeriod(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetPeriod(c *gin.Context) {
	resp, err := h.service.GetPeriod(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPeriods(c *gin.Context) {
	resp, err := h.service.ListPeriods(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RunPayroll(c *gin.Context) {
	resp, err := h.service.RunPayroll(c.Request.Context(), c.Param("id"), c.GetString("employee_id"))

	// Release the idempotency lock regardless of outcome so a failed run
	// can be retried with the same key.
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" && h.rdb != nil {
		h.rdb.Del(c.Request.Context(), lockKey)
	}

	if err != nil {
		writeServiceError(c, err)
		return
	}

	if cacheKey := c.GetString("idempotency_cache_key"); cacheKey != "" && h.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour)
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetStub(c *gin.Context) {
	resp, err := h.service.GetStub(c.Request.Context(), c.Param("id"),
		c.GetString("employee_id"), c.GetString("role"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMyStubs(c *gin.Context) {
	resp, err := h.service.ListStubsByEmployee(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListStubsByPeriod(c *gin.Context) {
	resp, err := h.service.ListStubsByPeriod(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReverseStub(c *gin.Context) {
	var req ReverseStubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ReverseStub(c.Request.Context(), c.Param("id"),
		c.GetString("employee_id"), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadStubPDF(c *gin.Context) {
	// Ownership is checked the same way as GetStub before rendering.
	if _, err := h.service.GetStub(c.Request.Context(), c.Param("id"),
		c.GetString("employee_id"), c.GetString("role")); err != nil {
		writeServiceError(c, err)
		return
	}

	pdf, err := h.service.GenerateStubPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=paystub-%s.pdf", c.Param("id")))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
