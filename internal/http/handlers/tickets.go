package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/tickets
func (h *Handlers) ListTickets(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := h.docs(c).Tickets(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/tickets/:id/pdf
func (h *Handlers) TicketPDF(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.docs(c).GenerateTicket(c.Request.Context(), rc.UserID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, pdf, filename)
}

// GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := h.docs(c).Invoices(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/invoices/:number/pdf
func (h *Handlers) InvoicePDF(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	pdf, filename, err := h.docs(c).GenerateInvoice(c.Request.Context(), rc.UserID, c.Param("number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, pdf, filename)
}

func sendPDF(c *gin.Context, pdf []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
