package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partyapp "github.com/paymentecho/backend/internal/application/party"
	"github.com/paymentecho/backend/internal/infrastructure/i18n"
)

// CounterpartyHandler handles creditor or debtor API endpoints. One
// instance is mounted under /api/creditors and another under /api/debtors;
// the list key follows the resource.
type CounterpartyHandler struct {
	BaseHandler
	service *partyapp.Service
	listKey string // "creditors" or "debtors"
}

// NewCreditorHandler creates a handler for the creditor routes
func NewCreditorHandler(service *partyapp.Service, translator *i18n.Translator) *CounterpartyHandler {
	return &CounterpartyHandler{
		BaseHandler: NewBaseHandler(translator),
		service:     service,
		listKey:     "creditors",
	}
}

// NewDebtorHandler creates a handler for the debtor routes
func NewDebtorHandler(service *partyapp.Service, translator *i18n.Translator) *CounterpartyHandler {
	return &CounterpartyHandler{
		BaseHandler: NewBaseHandler(translator),
		service:     service,
		listKey:     "debtors",
	}
}

// List handles GET /api/<resource>
func (h *CounterpartyHandler) List(c *gin.Context) {
	filter := partyapp.ListFilter{Sort: c.Query("sort")}
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	if v := c.Query("bankCode"); v != "" {
		filter.BankCode = &v
	}

	var err error
	filter.Page, filter.Size, err = parsePaging(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	parties, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.BaseHandler.List(c, h.listKey, parties, total)
}

// GetByID handles GET /api/<resource>/:id
func (h *CounterpartyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return
	}

	counterparty, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, counterparty)
}

// Create handles POST /api/<resource>
func (h *CounterpartyHandler) Create(c *gin.Context) {
	var req partyapp.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	counterparty, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, counterparty)
}

// Delete handles DELETE /api/<resource>/:id
func (h *CounterpartyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
