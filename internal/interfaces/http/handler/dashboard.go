package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportapp "github.com/inventra/frontend/internal/application/report"
	saleapp "github.com/inventra/frontend/internal/application/sale"
	"github.com/inventra/frontend/internal/domain/report"
	"github.com/inventra/frontend/internal/domain/sale"
	"go.uber.org/zap"
)

// DashboardHandler serves the landing page.
type DashboardHandler struct {
	BaseHandler
	invoices *saleapp.InvoiceService
	reports  *reportapp.Service
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(base BaseHandler, invoices *saleapp.InvoiceService, reports *reportapp.Service) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, invoices: invoices, reports: reports}
}

// RegisterRoutes mounts the dashboard at the root.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Dashboard)
}

type dashboardPage struct {
	View
	RecentInvoices []sale.Invoice
	LowStock       []report.LowStockRow
	LoadError      string
}

// Dashboard shows recent sales and, for managers, the low-stock overview.
// A backend failure renders the page with a notice instead of erroring out.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	sess := currentSession(c)
	page := dashboardPage{View: h.view(c, "Dashboard")}

	recent, err := h.invoices.List(c.Request.Context(), sess.Token, "", "", 5)
	if err != nil {
		h.logger.Warn("dashboard invoice load failed", zap.Error(err))
		page.LoadError = errorMessage(err)
	}
	page.RecentInvoices = recent

	if sess.User.IsManager() {
		lowStock, err := h.reports.LowStock(c.Request.Context(), sess.Token, "")
		if err != nil {
			h.logger.Warn("dashboard low-stock load failed", zap.Error(err))
		} else {
			page.LowStock = lowStock
		}
	}

	h.render(c, http.StatusOK, "dashboard", page)
}
