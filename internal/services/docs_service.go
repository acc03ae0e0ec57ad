package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
	"skyreserva/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService lists a traveler's tickets and invoices and renders them as PDF.
type DocsService struct {
	API       TicketAPI
	RequestID string
	Now       func() time.Time
}

func (s DocsService) Tickets(ctx context.Context, userID int64) ([]models.Ticket, error) {
	out, err := s.API.TicketsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Ticket{}
	}
	return out, nil
}

func (s DocsService) Invoices(ctx context.Context, userID int64) ([]models.Invoice, error) {
	out, err := s.API.InvoicesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Invoice{}
	}
	return out, nil
}

func (s DocsService) GenerateTicket(ctx context.Context, userID, ticketID int64) ([]byte, string, error) {
	tickets, err := s.Tickets(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	for _, t := range tickets {
		if t.ID == ticketID {
			utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("bill_id=%d", ticketID))
			return buildTicketPDF(t)
		}
	}
	return nil, "", domain.NotFoundError{Resource: "billete"}
}

func (s DocsService) GenerateInvoice(ctx context.Context, userID int64, number string) ([]byte, string, error) {
	number = strings.TrimSpace(number)
	invoices, err := s.Invoices(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	for _, inv := range invoices {
		if inv.Number == number {
			utils.LogEvent(s.RequestID, "docs", "generate_invoice", "fac_numero="+number)
			return buildInvoicePDF(inv, clock(s.Now))
		}
	}
	return nil, "", domain.NotFoundError{Resource: "factura"}
}

// TicketBadge is the upper-cased state shown on a ticket.
func TicketBadge(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "emitido":
		return "EMITIDO"
	case "usado":
		return "USADO"
	case "cancelado":
		return "CANCELADO"
	}
	return strings.ToUpper(safe(status, "?"))
}

func buildTicketPDF(t models.Ticket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Billete "+t.Code, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("BILLETE ELECTRÓNICO"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("%s   [%s]", safe(t.Code, "-"), TicketBadge(t.Status)))
	pdf.Ln(12)

	var (
		airline, number, date, hour string
		from, to, category          string
	)
	if f := t.Reservation.Flight; f != nil {
		airline = f.Airline.Name
		number = f.Number
		date = utils.DateOnly(f.DepartureDate)
		hour = utils.TimeHM(f.DepartureTime)
		from = cityLabel(f.Origin)
		to = cityLabel(f.Destination)
	}
	if c := t.Reservation.Category; c != nil {
		category = c.Name
	}
	invoice := "-"
	if t.Invoice != nil {
		invoice = safe(t.Invoice.Number, "-")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Pasajero       : %s", safe(t.Passenger.Name, "-")),
		fmt.Sprintf("Cédula         : %s", safe(t.Passenger.Document, "-")),
		fmt.Sprintf("Edad / Tipo    : %d / %s", t.Passenger.Age, safe(t.Passenger.Type, "-")),
		fmt.Sprintf("Vuelo          : %s %s", safe(airline, "-"), safe(number, "-")),
		fmt.Sprintf("Ruta           : %s -> %s", safe(from, "-"), safe(to, "-")),
		fmt.Sprintf("Salida         : %s %s", safe(date, "-"), safe(hour, "-")),
		fmt.Sprintf("Categoría      : %s", safe(category, "-")),
		fmt.Sprintf("Factura        : %s", invoice),
		fmt.Sprintf("Emitido        : %s", safe(utils.DateOnly(t.IssuedAt), "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Presente este billete y su documento de identidad al abordar."), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("BILLETE_%s_%s.pdf", safeFilenamePart(t.Code), safeFilenamePart(t.Passenger.Name))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(inv models.Invoice, printedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Factura "+inv.Number, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FACTURA")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr("Número      : "+safe(inv.Number, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr("Emisión     : "+safe(utils.DateOnly(inv.IssuedAt), "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Impreso     : "+printedAt.Format("2006-01-02 15:04"))
	pdf.Ln(12)

	pdf.Cell(0, 7, "Subtotal    : "+utils.FormatDollars(inv.Subtotal.Float()))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Impuestos   : "+utils.FormatDollars(inv.Taxes.Float()))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total       : "+utils.FormatDollars(inv.Total.Float()))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("FACTURA_%s.pdf", safeFilenamePart(inv.Number)), nil
}

func cityLabel(c models.City) string {
	if c.AirportCode == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.AirportCode)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
