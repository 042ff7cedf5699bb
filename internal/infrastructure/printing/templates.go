// Package printing renders back-office documents to PDF. Documents are
// executed through embedded HTML templates and printed by headless Chrome.
package printing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

// Company is the letterhead printed on every page
type Company struct {
	Name    string
	ABN     string
	Address string
	Phone   string
}

// Page is the data handed to a document template
type Page struct {
	Title   string
	Company Company
	Doc     any
}

// titles maps template names to the heading printed on the document
var titles = map[string]string{
	"invoice":          "Tax Invoice",
	"manual_invoice":   "Tax Invoice",
	"quotation":        "Quotation",
	"manual_quotation": "Quotation",
	"purchase_order":   "Purchase Order",
}

// Templates holds the parsed document templates
type Templates struct {
	set     *template.Template
	company Company
}

// NewTemplates parses the embedded templates
func NewTemplates(company Company) (*Templates, error) {
	printer := message.NewPrinter(language.English)
	set, err := template.New("documents").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
		},
		"qty":  func(d decimal.Decimal) string { return d.Round(2).String() },
		"date": formatDate,
		"inc":  func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse print templates: %w", err)
	}
	return &Templates{set: set, company: company}, nil
}

// Has reports whether a document template exists
func (t *Templates) Has(name string) bool {
	_, ok := titles[name]
	return ok && t.set.Lookup(name) != nil
}

// HTML executes the named document template
func (t *Templates) HTML(name string, doc any) ([]byte, error) {
	if !t.Has(name) {
		return nil, fmt.Errorf("unknown print template %q", name)
	}
	var buf bytes.Buffer
	page := Page{Title: titles[name], Company: t.company, Doc: doc}
	if err := t.set.ExecuteTemplate(&buf, name, page); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}

func formatDate(v any) string {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.Format("02 Jan 2006")
	case *time.Time:
		if d == nil {
			return ""
		}
		return formatDate(*d)
	default:
		return ""
	}
}
