package printing

import (
	"github.com/inventra/frontend/internal/domain/sale"
)

// PendingInvoiceNumber is shown when the backend has not yet assigned a
// number to the invoice being printed.
const PendingInvoiceNumber = "PENDING"

// ShopHeader is the shop identity printed at the top of every receipt.
type ShopHeader struct {
	Name    string
	Address string
	Phone   string
}

// ReceiptData is the template context for one rendered receipt.
type ReceiptData struct {
	Shop    ShopHeader
	Number  string
	Invoice sale.Invoice
}

// ReceiptRenderer turns an invoice payload into a printable HTML receipt.
// It performs no mutation and no network access.
type ReceiptRenderer struct {
	engine *TemplateEngine
	shop   ShopHeader
}

// NewReceiptRenderer creates a renderer with the configured shop header.
func NewReceiptRenderer(engine *TemplateEngine, shop ShopHeader) *ReceiptRenderer {
	return &ReceiptRenderer{engine: engine, shop: shop}
}

// Render produces the receipt HTML for an invoice.
func (r *ReceiptRenderer) Render(inv sale.Invoice) (string, error) {
	number := inv.Number
	if number == "" {
		number = PendingInvoiceNumber
	}
	return r.engine.Render("receipt", receiptTemplate, ReceiptData{
		Shop:    r.shop,
		Number:  number,
		Invoice: inv,
	})
}

// receiptTemplate is the print layout: 80mm thermal paper, shop header,
// invoice metadata, itemized lines, grand total.
const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{.Number}}</title>
<style>
  body { font-family: "Courier New", monospace; font-size: 12px; width: 72mm; margin: 0 auto; }
  .center { text-align: center; }
  .row { display: flex; justify-content: space-between; }
  .rule { border-top: 1px dashed #000; margin: 6px 0; }
  .total { font-weight: bold; font-size: 14px; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 1px 0; vertical-align: top; }
  td.num { text-align: right; white-space: nowrap; }
</style>
</head>
<body>
  <div class="center">
    <div class="total">{{.Shop.Name}}</div>
    {{- if .Shop.Address}}<div>{{.Shop.Address}}</div>{{end}}
    {{- if .Shop.Phone}}<div>{{.Shop.Phone}}</div>{{end}}
  </div>
  <div class="rule"></div>
  <div class="row"><span>Invoice</span><span>{{.Number}}</span></div>
  <div class="row"><span>Date</span><span>{{formatDateTime .Invoice.CreatedAt}}</span></div>
  {{- if .Invoice.BranchName}}
  <div class="row"><span>Branch</span><span>{{.Invoice.BranchName}}</span></div>
  {{- end}}
  {{- if .Invoice.CashierName}}
  <div class="row"><span>Cashier</span><span>{{.Invoice.CashierName}}</span></div>
  {{- end}}
  <div class="rule"></div>
  <table>
  {{- range .Invoice.Lines}}
    <tr><td colspan="2">{{.ProductName}} <small>{{.SKU}}</small></td></tr>
    <tr>
      <td>{{.Quantity}} x {{formatMoney .UnitPrice}}</td>
      <td class="num">{{formatMoney .LineTotal}}</td>
    </tr>
  {{- end}}
  </table>
  <div class="rule"></div>
  <div class="row total"><span>TOTAL</span><span>{{formatMoney .Invoice.GrandTotal}}</span></div>
  {{- if .Invoice.Note}}
  <div class="rule"></div>
  <div>Note: {{.Invoice.Note}}</div>
  {{- end}}
  <div class="rule"></div>
  <div class="center">Thank you for your purchase</div>
</body>
</html>`
