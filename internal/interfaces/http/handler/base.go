package handler

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/paymentecho/backend/internal/infrastructure/i18n"
	"github.com/paymentecho/backend/internal/infrastructure/logger"
	"github.com/paymentecho/backend/internal/interfaces/http/dto"
	"github.com/paymentecho/backend/internal/interfaces/http/middleware"
)

// domainMessageKeys maps domain error codes to localization keys
var domainMessageKeys = map[string]string{
	"INVALID_AMOUNT":   "payment.invalid.amount",
	"INVALID_CURRENCY": "payment.invalid.currency",
	"INVALID_STATUS":   "payment.invalid.status",
}

// fieldMessageKeys maps request struct fields to localization keys for
// binding-level validation failures
var fieldMessageKeys = map[string]string{
	"Amount":   "payment.invalid.amount",
	"Currency": "payment.invalid.currency",
	"Status":   "payment.invalid.status",
}

// BaseHandler provides the error mapping shared by all handlers. Every
// failure becomes a {timestamp, status, error, message, path, fieldErrors?}
// body with the message resolved against the request's locale.
type BaseHandler struct {
	translator *i18n.Translator
}

// NewBaseHandler creates a BaseHandler with the given translator
func NewBaseHandler(translator *i18n.Translator) BaseHandler {
	return BaseHandler{translator: translator}
}

// Created sends a 201 response with the created resource
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK sends a 200 response
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// List sends a 200 response wrapping items under the resource key
func (h *BaseHandler) List(c *gin.Context, key string, items any, total int64) {
	c.JSON(http.StatusOK, dto.NewListResponse(key, items, total))
}

// BadRequest sends a 400 response with a localized generic message
func (h *BaseHandler) BadRequest(c *gin.Context, fallback string) {
	locale := middleware.GetLocale(c)
	message := h.translator.Localize(locale, "error.bad.request", nil, fallback)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message, c.Request.URL.Path))
}

// HandleBindingError maps a request binding failure to a 400 response.
// Constraint violations produce a fieldErrors map; anything else (malformed
// JSON, wrong types) produces a bare bad-request body.
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	locale := middleware.GetLocale(c)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fieldErrors[lowerFirst(fe.Field())] = h.fieldMessage(locale, fe)
		}
		message := h.translator.Localize(locale, "error.validation.failed", nil, "Validation failed")
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(message, c.Request.URL.Path, fieldErrors))
		return
	}

	h.BadRequest(c, err.Error())
}

// HandleError maps domain failures to HTTP responses. Unclassified errors
// are logged in full and surface only as a generic localized 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	locale := middleware.GetLocale(c)
	path := c.Request.URL.Path

	var nfe *shared.NotFoundError
	if errors.As(err, &nfe) {
		message := h.translator.Localize(locale, nfe.MessageKey(), map[string]any{"id": nfe.ID.String()}, nfe.Error())
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, message, path))
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		message := de.Message
		if key, ok := domainMessageKeys[de.Code]; ok {
			message = h.translator.Localize(locale, key, nil, de.Message)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message, path))
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	message := h.translator.Localize(locale, "error.internal.server", nil, "An unexpected error occurred")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, message, path))
}

func (h *BaseHandler) fieldMessage(locale string, fe validator.FieldError) string {
	if key, ok := fieldMessageKeys[fe.Field()]; ok {
		return h.translator.Localize(locale, key, nil, fe.Error())
	}
	return lowerFirst(fe.Field()) + " failed validation on '" + fe.Tag() + "'"
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
