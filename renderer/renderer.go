package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/stocktracker"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are available to every template.
var funcs = template.FuncMap{
	"join": strings.Join,
}

// RenderValuation renders a valuation as a markdown table, followed by the totals.
// Unavailable prices are rendered as "n/a".
func RenderValuation(v *stocktracker.Valuation) string {
	partials := map[string]string{
		"valuation_rows":   "valuation_rows.md",
		"valuation_totals": "valuation_totals.md",
	}
	return renderTemplate("valuation", "valuation.md", partials, v)
}

// RenderHoldings renders holdings, without prices, as a markdown table.
func RenderHoldings(holdings []stocktracker.Holding) string {
	return renderTemplate("holdings", "holdings.md", nil, holdings)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
