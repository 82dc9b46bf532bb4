package transport

import (
	"errors"
	"net/http"

	"cerveceria-pos/internal/domain"
	"cerveceria-pos/internal/middleware"
	"cerveceria-pos/internal/notify"
	"cerveceria-pos/internal/render"
	"cerveceria-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SideEffectStatus reports one best-effort delivery step independently of
// the others.
type SideEffectStatus struct {
	OK    bool   `json:"ok"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// InvoiceResponse carries the built invoice plus the outcome of the
// document and mail side effects.
type InvoiceResponse struct {
	Invoice  *domain.Invoice  `json:"invoice"`
	Document SideEffectStatus `json:"document"`
	Email    SideEffectStatus `json:"email"`
}

// InvoiceHandler handles invoice generation and delivery
type InvoiceHandler struct {
	invoices service.InvoiceService
	renderer *render.InvoiceRenderer
	mailer   notify.Mailer
	logger   *zap.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(
	invoices service.InvoiceService,
	renderer *render.InvoiceRenderer,
	mailer notify.Mailer,
	logger *zap.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
		renderer: renderer,
		mailer:   mailer,
		logger:   logger,
	}
}

// RegisterRoutes registers the invoicing route
func (h *InvoiceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/customers/{id}/invoice", h.Generate)
}

// Generate builds the invoice for the customer's current cart, then writes
// the HTML document and mails the customer. The two side effects are
// independent: a failed render does not suppress the mail attempt and vice
// versa, and neither failure rolls back anything. The cart is left as-is;
// clearing it is a separate explicit call.
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	invoice, err := h.invoices.BuildInvoice(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrMissingProduct) {
			middleware.RespondWithError(w, http.StatusConflict,
				"cart references a product that no longer exists")
			return
		}
		h.logger.Error("Failed to build invoice", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build invoice")
		return
	}

	resp := InvoiceResponse{Invoice: invoice}

	if path, err := h.renderer.WriteInvoiceFile(invoice); err != nil {
		h.logger.Error("Failed to write invoice document",
			zap.String("invoice_number", invoice.Number),
			zap.Error(err),
		)
		resp.Document.Error = err.Error()
	} else {
		resp.Document.OK = true
		resp.Document.Path = path
	}

	if body, err := h.renderer.RenderMail(invoice); err != nil {
		resp.Email.Error = err.Error()
	} else if err := h.mailer.SendInvoice(invoice, body); err != nil {
		resp.Email.Error = err.Error()
	} else {
		resp.Email.OK = true
	}

	middleware.RespondWithJSON(w, http.StatusCreated, resp)
}
