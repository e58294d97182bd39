// Package printing renders invoices into print-friendly receipts. The
// template engine is pure: invoice payload in, HTML out; PDF conversion is
// a separate renderer behind an interface.
package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders HTML templates with receipt data using
// html/template plus formatting helpers.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a template engine with the receipt helpers.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{}
	e.funcMap = template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"title":    titleCase,
		"trim":     strings.TrimSpace,
		"contains": strings.Contains,

		"add": func(a, b int) int { return a + b },
		"mul": mulDecimal,

		"default": defaultString,
	}
	return e
}

// FuncMap exposes the helpers so the page server can share them.
func (e *TemplateEngine) FuncMap() template.FuncMap {
	return e.funcMap
}

// Render parses and executes a template against data.
func (e *TemplateEngine) Render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}
	return buf.String(), nil
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func mulDecimal(d decimal.Decimal, qty int) decimal.Decimal {
	return d.Mul(decimal.NewFromInt(int64(qty)))
}

func defaultString(fallback, value string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
