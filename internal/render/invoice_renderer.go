package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"cerveceria-pos/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	ErrNoCustomerSnapshot = errors.New("invoice has no customer snapshot")
)

// InvoiceRenderer turns the invoice aggregate into human-readable HTML
// documents: the invoice itself and the confirmation mail body. Rendering
// never touches the cart or the store.
type InvoiceRenderer struct {
	invoiceTmpl *template.Template
	mailTmpl    *template.Template
	outputDir   string
}

// NewInvoiceRenderer parses the embedded templates. Rendered invoice files
// are written under outputDir.
func NewInvoiceRenderer(outputDir string) (*InvoiceRenderer, error) {
	invoiceTmpl, err := template.ParseFS(templateFS, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice template: %w", err)
	}

	mailTmpl, err := template.ParseFS(templateFS, "templates/mail.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail template: %w", err)
	}

	return &InvoiceRenderer{
		invoiceTmpl: invoiceTmpl,
		mailTmpl:    mailTmpl,
		outputDir:   outputDir,
	}, nil
}

type invoiceLineView struct {
	ProductName string
	Quantity    int
	UnitPrice   int64
	Total       int64
}

type invoiceView struct {
	Number    string
	Date      string
	Year      int
	FirstName string
	LastName  string
	Address   string
	Phone     int64
	Total     int64
	Lines     []invoiceLineView
}

func buildView(invoice *domain.Invoice) (*invoiceView, error) {
	if invoice.Customer == nil {
		return nil, ErrNoCustomerSnapshot
	}

	// Stable line order for the document: by product id.
	productIDs := make([]int64, 0, len(invoice.Lines))
	for id := range invoice.Lines {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	lines := make([]invoiceLineView, 0, len(productIDs))
	for _, id := range productIDs {
		line := invoice.Lines[id]
		lines = append(lines, invoiceLineView{
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total,
		})
	}

	return &invoiceView{
		Number:    invoice.Number,
		Date:      invoice.IssuedAt.Format("02/01/2006"),
		Year:      invoice.IssuedAt.Year(),
		FirstName: invoice.Customer.FirstName,
		LastName:  invoice.Customer.LastName,
		Address:   invoice.Customer.Address,
		Phone:     invoice.Customer.Phone,
		Total:     invoice.Total,
		Lines:     lines,
	}, nil
}

// RenderInvoice returns the invoice document as HTML.
func (r *InvoiceRenderer) RenderInvoice(invoice *domain.Invoice) (string, error) {
	view, err := buildView(invoice)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.invoiceTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.String(), nil
}

// WriteInvoiceFile renders the invoice and writes it to
// <outputDir>/<invoice-number>.html, returning the file path.
func (r *InvoiceRenderer) WriteInvoiceFile(invoice *domain.Invoice) (string, error) {
	html, err := r.RenderInvoice(invoice)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create invoice output dir: %w", err)
	}

	path := filepath.Join(r.outputDir, invoice.Number+".html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("failed to write invoice file: %w", err)
	}

	return path, nil
}

// RenderMail returns the confirmation mail body as HTML.
func (r *InvoiceRenderer) RenderMail(invoice *domain.Invoice) (string, error) {
	view, err := buildView(invoice)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.mailTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render mail body: %w", err)
	}

	return buf.String(), nil
}
