package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inventra/frontend/internal/application/refdata"
	reportapp "github.com/inventra/frontend/internal/application/report"
	"github.com/inventra/frontend/internal/domain/inventory"
	"github.com/inventra/frontend/internal/domain/report"
)

// ReportHandler serves the manager reports page. The router mounts it
// behind the manager gate.
type ReportHandler struct {
	BaseHandler
	reports *reportapp.Service
	refdata *refdata.Provider
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(base BaseHandler, reports *reportapp.Service, ref *refdata.Provider) *ReportHandler {
	return &ReportHandler{BaseHandler: base, reports: reports, refdata: ref}
}

// RegisterRoutes mounts the reports route.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports", h.Reports)
}

type reportsPage struct {
	View
	Branches []inventory.Branch
	Report   string
	BranchID string
	From     string
	To       string

	Summary     *report.SalesSummary
	TopProducts []report.TopProductRow
	LowStock    []report.LowStockRow
	Valuation   []report.ValuationRow
}

// Reports renders the selected report. The date range defaults to the last
// seven days; a bad date in the query falls back to the default range.
func (h *ReportHandler) Reports(c *gin.Context) {
	sess := currentSession(c)

	kind := c.DefaultQuery("type", "sales-summary")
	branchID := c.Query("branchId")
	from, to := parseRange(c.Query("from"), c.Query("to"))
	dateRange := reportapp.DateRange{From: from, To: to}

	branches, err := h.refdata.Branches(c.Request.Context(), sess.Token)
	if err != nil {
		h.failure(c, err, "/")
		return
	}

	page := reportsPage{
		View:     h.view(c, "Reports"),
		Branches: branches,
		Report:   kind,
		BranchID: branchID,
		From:     from.Format("2006-01-02"),
		To:       to.Format("2006-01-02"),
	}

	ctx := c.Request.Context()
	switch kind {
	case "sales-summary":
		summary, err := h.reports.SalesSummary(ctx, sess.Token, dateRange, branchID)
		if err != nil {
			h.failure(c, err, "/reports")
			return
		}
		page.Summary = &summary
	case "top-products":
		page.TopProducts, err = h.reports.TopProducts(ctx, sess.Token, dateRange, branchID)
	case "top-selling":
		page.TopProducts, err = h.reports.TopSelling(ctx, sess.Token, dateRange, branchID)
	case "low-stock":
		page.LowStock, err = h.reports.LowStock(ctx, sess.Token, branchID)
	case "stock-valuation":
		page.Valuation, err = h.reports.StockValuation(ctx, sess.Token, branchID)
	default:
		h.failure(c, errInvalidForm("Unknown report type"), "/reports")
		return
	}
	if err != nil {
		h.failure(c, err, "/reports")
		return
	}

	h.render(c, http.StatusOK, "reports", page)
}

func parseRange(fromRaw, toRaw string) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now

	if t, err := time.Parse("2006-01-02", fromRaw); err == nil {
		from = t
	}
	if t, err := time.Parse("2006-01-02", toRaw); err == nil {
		to = t
	}
	if to.Before(from) {
		from, to = now.AddDate(0, 0, -7), now
	}
	return from, to
}
