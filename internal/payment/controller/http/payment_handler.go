package http

import (
	"net/http"
	"strconv"
	"time"

	"rentdesk/internal/payment/usecase"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"
	"rentdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	logger         *logger.Logger
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

type CreatePaymentRequest struct {
	TenantID      string  `json:"tenant_id" binding:"required"`
	LeaseID       string  `json:"lease_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	DueDate       string  `json:"due_date" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Reference     string  `json:"reference"`
	Notes         string  `json:"notes"`
}

type UpdatePaymentStatusRequest struct {
	Status   string     `json:"status" binding:"required"`
	PaidDate *time.Time `json:"paid_date"`
}

// GetTenantPayments godoc
// @Summary      List payments for a tenant
// @Description  Payments ordered by due date descending, with lease and property joined
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        tenantId path string true "Tenant ID"
// @Param        limit query int false "Page size (max 100, default 50)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  response.Response
// @Router       /payments/tenant/{tenantId} [get]
func (h *PaymentHandler) GetTenantPayments(c *gin.Context) {
	tenantID := c.Param("tenantId")
	if !h.canAccess(c, tenantID) {
		return
	}
	limit, offset := paginationParams(c)

	payments, total, err := h.paymentUseCase.ListByTenant(tenantID, limit, offset)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMeta(payments, &response.Meta{
		Count:  len(payments),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}))
}

// CreatePayment godoc
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePaymentRequest true "Payment data"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	if !h.canAccess(c, req.TenantID) {
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		apperr.Respond(c, h.logger, apperr.Validation("due_date must be an RFC 3339 timestamp or YYYY-MM-DD date"))
		return
	}

	payment, err := h.paymentUseCase.Create(usecase.CreatePaymentInput{
		TenantID:      req.TenantID,
		LeaseID:       req.LeaseID,
		Amount:        req.Amount,
		DueDate:       dueDate,
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Notes:         req.Notes,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(payment))
}

// UpdatePaymentStatus godoc
// @Summary      Update a payment's status
// @Description  Setting status to "paid" stamps the paid date; any other status clears it
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payment ID"
// @Param        request body UpdatePaymentStatusRequest true "New status"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /payments/{id}/status [put]
func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	actorID := c.GetString("user_id")
	role := c.GetString("role")
	paymentID := c.Param("id")

	payment, err := h.paymentUseCase.UpdateStatus(actorID, role, paymentID, models.PaymentStatus(req.Status), req.PaidDate)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(payment))
}

// GetTenantPaymentStats godoc
// @Summary      Payment stats for a tenant
// @Description  Per-status count and amount sum in a single grouped query
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        tenantId path string true "Tenant ID"
// @Success      200  {object}  response.Response
// @Router       /payments/tenant/{tenantId}/stats [get]
func (h *PaymentHandler) GetTenantPaymentStats(c *gin.Context) {
	tenantID := c.Param("tenantId")
	if !h.canAccess(c, tenantID) {
		return
	}

	stats, err := h.paymentUseCase.StatsByTenant(tenantID)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}

// canAccess lets tenants at their own payments and landlords at any.
// An ownership mismatch reads as a missing resource.
func (h *PaymentHandler) canAccess(c *gin.Context, tenantID string) bool {
	if c.GetString("role") == string(models.RoleLandlord) {
		return true
	}
	if c.GetString("user_id") == tenantID {
		return true
	}
	apperr.Respond(c, h.logger, apperr.NotFound("payment not found"))
	return false
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func paginationParams(c *gin.Context) (int, int) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}
