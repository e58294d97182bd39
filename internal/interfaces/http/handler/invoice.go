package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inventra/frontend/internal/application/refdata"
	saleapp "github.com/inventra/frontend/internal/application/sale"
	"github.com/inventra/frontend/internal/domain/inventory"
	"github.com/inventra/frontend/internal/domain/sale"
	"github.com/inventra/frontend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// InvoiceHandler serves invoice history, detail, and receipt reprints.
type InvoiceHandler struct {
	BaseHandler
	invoices *saleapp.InvoiceService
	refdata  *refdata.Provider
	receipts *printing.ReceiptRenderer
	pdf      printing.PDFRenderer
}

// NewInvoiceHandler creates an InvoiceHandler. The PDF renderer may be nil
// when PDF output is disabled; the route then responds 404.
func NewInvoiceHandler(base BaseHandler, invoices *saleapp.InvoiceService, ref *refdata.Provider, receipts *printing.ReceiptRenderer, pdf printing.PDFRenderer) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, invoices: invoices, refdata: ref, receipts: receipts, pdf: pdf}
}

// RegisterRoutes mounts the invoice routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices", h.List)
	rg.GET("/invoices/:publicId", h.Detail)
	rg.GET("/invoices/:publicId/receipt", h.Receipt)
	rg.GET("/invoices/:publicId/receipt.pdf", h.ReceiptPDF)
}

const invoiceListLimit = 50

type invoicesPage struct {
	View
	Invoices []sale.Invoice
	Branches []inventory.Branch
	BranchID string
	Search   string
}

// List renders invoice history with branch and search filters.
func (h *InvoiceHandler) List(c *gin.Context) {
	sess := currentSession(c)
	branchID := c.Query("branchId")
	search := c.Query("q")

	branches, err := h.refdata.Branches(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}
	invoices, err := h.invoices.List(c.Request.Context(), sess.Token, branchID, search, invoiceListLimit)
	if err != nil {
		h.failure(c, err, "/")
		return
	}

	h.render(c, http.StatusOK, "invoices", invoicesPage{
		View:     h.view(c, "Invoices"),
		Invoices: invoices,
		Branches: branches,
		BranchID: branchID,
		Search:   search,
	})
}

type invoiceDetailPage struct {
	View
	Invoice sale.Invoice
}

// Detail renders one invoice with its lines.
func (h *InvoiceHandler) Detail(c *gin.Context) {
	sess := currentSession(c)

	invoice, err := h.invoices.Get(c.Request.Context(), sess.Token, c.Param("publicId"))
	if err != nil {
		h.failure(c, err, "/invoices")
		return
	}
	h.render(c, http.StatusOK, "invoice_detail", invoiceDetailPage{
		View:    h.view(c, "Invoice "+invoice.Number),
		Invoice: invoice,
	})
}

// Receipt reprints the receipt for a past invoice as printable HTML.
func (h *InvoiceHandler) Receipt(c *gin.Context) {
	sess := currentSession(c)

	invoice, err := h.invoices.Get(c.Request.Context(), sess.Token, c.Param("publicId"))
	if err != nil {
		h.failure(c, err, "/invoices")
		return
	}
	html, err := h.receipts.Render(invoice)
	if err != nil {
		h.failure(c, err, "/invoices")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ReceiptPDF reprints the receipt as a PDF download.
func (h *InvoiceHandler) ReceiptPDF(c *gin.Context) {
	if h.pdf == nil {
		c.String(http.StatusNotFound, "PDF output is disabled")
		return
	}
	sess := currentSession(c)

	invoice, err := h.invoices.Get(c.Request.Context(), sess.Token, c.Param("publicId"))
	if err != nil {
		h.failure(c, err, "/invoices")
		return
	}
	html, err := h.receipts.Render(invoice)
	if err != nil {
		h.failure(c, err, "/invoices")
		return
	}
	pdf, err := h.pdf.RenderPDF(c.Request.Context(), html)
	if err != nil {
		h.logger.Error("receipt PDF render failed",
			zap.String("invoice", invoice.Number), zap.Error(err))
		h.failure(c, errInvalidForm("Could not generate the PDF"), "/invoices")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt-`+invoice.Number+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
