package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	paymentapp "github.com/paymentecho/backend/internal/application/payment"
	"github.com/paymentecho/backend/internal/infrastructure/i18n"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	service *paymentapp.Service
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *paymentapp.Service, translator *i18n.Translator) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: NewBaseHandler(translator),
		service:     service,
	}
}

// List handles GET /api/payments
func (h *PaymentHandler) List(c *gin.Context) {
	filter, err := parsePaymentFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.BaseHandler.List(c, "payments", payments, total)
}

// GetByID handles GET /api/payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, payment)
}

// Create handles POST /api/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req paymentapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	payment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// Echo handles POST /api/payments/echo. Same semantics as Create, but the
// stored record comes back with 200 instead of 201.
func (h *PaymentHandler) Echo(c *gin.Context) {
	var req paymentapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	payment, err := h.service.Echo(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, payment)
}

// Delete handles DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func parsePaymentFilter(c *gin.Context) (paymentapp.ListFilter, error) {
	filter := paymentapp.ListFilter{Sort: c.Query("sort")}

	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("currency"); v != "" {
		filter.Currency = &v
	}
	if v := c.Query("minAmount"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter, err
		}
		filter.MinAmount = &d
	}
	if v := c.Query("maxAmount"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter, err
		}
		filter.MaxAmount = &d
	}
	if v := c.Query("startDate"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &ts
	}
	if v := c.Query("endDate"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &ts
	}

	var err error
	filter.Page, filter.Size, err = parsePaging(c)
	return filter, err
}

func parsePaging(c *gin.Context) (page, size int, err error) {
	if v := c.Query("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			return 0, 0, err
		}
	}
	if v := c.Query("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return 0, 0, err
		}
	}
	return page, size, nil
}
