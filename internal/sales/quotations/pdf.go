package quotations

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/solstice-erp/solstice-erp/internal/sales/customers"
	"github.com/solstice-erp/solstice-erp/internal/sales/pricing"
)

// PDFRenderer converts rendered HTML into a PDF document.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// PDFExporter renders a quotation document for download.
type PDFExporter struct {
	renderer PDFRenderer
	tmpl     *template.Template
	printer  *message.Printer
}

// NewPDFExporter parses the quotation template.
func NewPDFExporter(renderer PDFRenderer) (*PDFExporter, error) {
	printer := message.NewPrinter(language.English)
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"formatMoney": func(v float64) string {
			return printer.Sprintf("%.2f", pricing.RoundCurrency(v))
		},
		"lineDiscount": func(item Item) string {
			amount := pricing.DiscountAmount(float64(item.Quantity), item.UnitPrice, item.DiscountPercent)
			return printer.Sprintf("%.2f", pricing.RoundCurrency(amount))
		},
	}
	tmpl, err := template.New("quotation").Funcs(funcMap).Parse(quotationTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse quotation template: %w", err)
	}
	return &PDFExporter{renderer: renderer, tmpl: tmpl, printer: printer}, nil
}

// QuotationDocument aggregates the data rendered into the PDF.
type QuotationDocument struct {
	Quotation *Quotation
	Customer  *customers.Customer
}

// Render produces the PDF bytes for a quotation.
func (e *PDFExporter) Render(ctx context.Context, doc QuotationDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render quotation html: %w", err)
	}
	pdf, err := e.renderer.RenderHTML(ctx, buf.String())
	if err != nil {
		return nil, fmt.Errorf("render quotation pdf: %w", err)
	}
	return pdf, nil
}

const quotationTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 20px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { border: 1px solid #999; padding: 6px 8px; text-align: left; }
th { background: #eee; }
td.num, th.num { text-align: right; }
.meta { margin-top: 8px; }
.total { margin-top: 12px; font-size: 14px; font-weight: bold; text-align: right; }
</style>
</head>
<body>
<h1>Quotation #{{ .Quotation.ID }}</h1>
<div class="meta">
	<div>Customer: {{ .Customer.Name }}</div>
	{{ if .Customer.AddressLine1 }}<div>{{ .Customer.AddressLine1 }}</div>{{ end }}
	<div>Quote date: {{ formatDate .Quotation.QuoteDate }}</div>
	<div>Valid until: {{ formatDate .Quotation.ValidUntil }}</div>
	<div>Status: {{ .Quotation.Status }}</div>
</div>
<table>
	<thead>
		<tr>
			<th>#</th>
			<th>Product</th>
			<th class="num">Qty</th>
			<th class="num">Unit Price</th>
			<th class="num">Discount %</th>
			<th class="num">Discount</th>
			<th class="num">Line Total</th>
		</tr>
	</thead>
	<tbody>
		{{ range .Quotation.Items }}
		<tr>
			<td>{{ .LineOrder }}</td>
			<td>{{ .ProductID }}</td>
			<td class="num">{{ .Quantity }}</td>
			<td class="num">{{ formatMoney .UnitPrice }}</td>
			<td class="num">{{ .DiscountPercent }}</td>
			<td class="num">{{ lineDiscount . }}</td>
			<td class="num">{{ formatMoney .LineTotal }}</td>
		</tr>
		{{ end }}
	</tbody>
</table>
<div class="total">Total: {{ formatMoney .Quotation.TotalAmount }}</div>
</body>
</html>`
