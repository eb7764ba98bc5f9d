package ui

import (
	"html/template"
	"sort"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// InfoPanel is one rendered "what does this show" explainer under a chart.
type InfoPanel struct {
	View  string
	Title string
	Body  template.HTML
}

// Panel copy lives as markdown so it stays readable in source; it is
// rendered once at first use and cached, since the text never changes.
var panelSources = map[string]struct {
	title string
	body  string
}{
	"monthly": {
		title: "Månedlige priser",
		body: `Monthly average spot prices per region in **øre/kWh incl. MVA**.
Each line is one price area; the heatmap view shows the same data as a year/month grid.`,
	},
	"annual": {
		title: "Årlig utvikling",
		body: `Mean price per region per year. Diverging lines mean the price areas
decoupled — typically southern regions (NO1, NO2, NO5) pulling away from
the north after 2021.`,
	},
	"seasonal": {
		title: "Sesongvariasjon",
		body: `Distribution of monthly prices grouped by season, winter first.
Box height shows spread within the season, not just the average: winters are
both more expensive *and* more volatile.`,
	},
	"comparison": {
		title: "Regionsammenligning",
		body: `Summary statistics per price area over the selected range: mean,
min/max, standard deviation and the coefficient of variation
(*stddev / mean*) as a volatility measure.`,
	},
	"trend": {
		title: "Årlig endring",
		body: `Year-over-year change of the whole selection's average price, with a
least-squares trend line over the annual means.`,
	},
}

var (
	panelsOnce     sync.Once
	renderedPanels []InfoPanel
)

// infoPanels returns the rendered explainer panels in stable view order.
func infoPanels() []InfoPanel {
	panelsOnce.Do(func() {
		views := make([]string, 0, len(panelSources))
		for view := range panelSources {
			views = append(views, view)
		}
		sort.Strings(views)

		for _, view := range views {
			src := panelSources[view]
			p := parser.NewWithExtensions(parser.CommonExtensions)
			renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
			rendered := markdown.ToHTML([]byte(src.body), p, renderer)
			renderedPanels = append(renderedPanels, InfoPanel{
				View:  view,
				Title: src.title,
				Body:  template.HTML(rendered),
			})
		}
	})
	return renderedPanels
}
