package quotations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-erp/solstice-erp/internal/sales/customers"
)

type fakeRenderer struct {
	lastHTML string
	output   []byte
}

func (f *fakeRenderer) RenderHTML(_ context.Context, html string) ([]byte, error) {
	f.lastHTML = html
	return f.output, nil
}

func TestPDFExporterRendersLineMoney(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("%PDF-1.7")}
	exporter, err := NewPDFExporter(renderer)
	require.NoError(t, err)

	q := draftQuotation()
	require.NoError(t, q.AddItem(10, 2, 10, 100, 50))
	q.ID = 7

	pdf, err := exporter.Render(context.Background(), QuotationDocument{
		Quotation: &q,
		Customer:  &customers.Customer{ID: 1, Name: "Meridian Logistics", Country: "NL"},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)

	assert.Contains(t, renderer.lastHTML, "Quotation #7")
	assert.Contains(t, renderer.lastHTML, "Meridian Logistics")
	assert.Contains(t, renderer.lastHTML, "180.00", "discounted line total")
	assert.Contains(t, renderer.lastHTML, "20.00", "absolute discount for 2 x 100 at 10%")
}

func TestPDFExporterFormatsDates(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("ok")}
	exporter, err := NewPDFExporter(renderer)
	require.NoError(t, err)

	q := draftQuotation()
	require.NoError(t, q.AddItem(10, 1, 0, 100, 50))
	q.QuoteDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err = exporter.Render(context.Background(), QuotationDocument{
		Quotation: &q,
		Customer:  &customers.Customer{ID: 1, Name: "Meridian Logistics", Country: "NL"},
	})
	require.NoError(t, err)
	assert.Contains(t, renderer.lastHTML, "August 1, 2026")
}
