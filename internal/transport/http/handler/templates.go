package handler

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates. The router installs the
// set on the gin engine; the invoice handler also keeps a reference for
// rendering the cacheable list view to a buffer.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"usd": usd,
	}).ParseFS(templatesFS, "templates/*.html"))
}

// usd formats an amount in cents as a dollar string, e.g. 4999 -> $49.99.
func usd(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
