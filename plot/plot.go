package plot

import (
	"fmt"
	"html/template"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"

	"salesanalysis/models"
)

const DEFAULT_ASSETS_HOST = "https://go-echarts.github.io/go-echarts-assets/assets/"

const (
	CHART_HEIGHT      = "400px"
	FIXED_CHART_WIDTH = "900px"
)

// RESIZE_SCRIPT keeps a full-width chart filling its container as the window changes size.
const RESIZE_SCRIPT = "window.addEventListener('resize', function () { " + render.EchartsInstancePlaceholder + ".resize() });"

// Chart is anything go-echarts can render, with the extra bits we need to update it in place once it is on the page.
type Chart interface {
	components.Charter
	render.Renderer
	JSONNotEscaped() template.HTML
}

// Plotter turns dataset descriptors into go-echarts charts. Every chart gets the dataset kind as its DOM id, so there
// can only be one chart of each kind on a page.
type Plotter struct {
	// AssetsHost is where the browser loads echarts.min.js from.
	AssetsHost string
}

func NewPlotter(assetsHost string) *Plotter {
	if assetsHost == "" {
		assetsHost = DEFAULT_ASSETS_HOST
	}
	return &Plotter{AssetsHost: assetsHost}
}

// New builds the chart matching the dataset's kind.
func (p *Plotter) New(ds models.Dataset, o models.DisplayOptions) (Chart, error) {
	switch ds.Kind {
	case models.LineChart:
		return p.Line(ds, o), nil
	case models.BarChart:
		return p.Bar(ds, o), nil
	case models.PieChart:
		return p.Pie(ds, o), nil
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", ds.Kind)
	}
}

func (p *Plotter) Line(ds models.Dataset, o models.DisplayOptions) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globalOptions(ChartID(ds.Kind), o)...)
	responsive(line, o)
	line.SetXAxis(ds.Labels)

	for _, s := range ds.Series {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.BorderColour}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.BorderColour}),
		)
	}

	return line
}

func (p *Plotter) Bar(ds models.Dataset, o models.DisplayOptions) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(p.globalOptions(ChartID(ds.Kind), o)...)
	responsive(bar, o)
	bar.SetXAxis(ds.Labels)

	for _, s := range ds.Series {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.BarData{
				Value:     v,
				ItemStyle: itemStyle(s, i),
			}
		}
		bar.AddSeries(s.Name, data)
	}

	return bar
}

func (p *Plotter) Pie(ds models.Dataset, o models.DisplayOptions) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(p.globalOptions(ChartID(ds.Kind), o)...)
	responsive(pie, o)

	hoverOffset := 0
	for _, s := range ds.Series {
		data := make([]opts.PieData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.PieData{
				Name:      label(ds.Labels, i),
				Value:     v,
				ItemStyle: itemStyle(s, i),
			}
		}
		pie.AddSeries(s.Name, data)
		hoverOffset = max(hoverOffset, s.HoverOffset)
	}

	if hoverOffset > 0 {
		pie.Accept(hoverOffsetVisitor{scaleSize: hoverOffset})
	}

	return pie
}

// Snippet renders the chart's container and the script that mounts it, ready to be dropped into a page.
func Snippet(c Chart) template.HTML {
	snippet := c.RenderSnippet()
	return template.HTML(snippet.Element + snippet.Script)
}

// Option is the full echarts option object for the chart, as JSON.
func Option(c Chart) template.HTML {
	c.Validate()
	return c.JSONNotEscaped()
}

// UpdateScript replaces the options of a chart that has already been mounted by Snippet. Labels are constant, only
// the series values move, so echarts animates the change instead of redrawing.
func UpdateScript(c Chart, chartID string) string {
	return fmt.Sprintf(`if (typeof %s !== 'undefined') { %s.setOption(%s) }`,
		render.EchartsInstancePrefix+chartID, render.EchartsInstancePrefix+chartID, Option(c))
}

// Page writes a standalone HTML page with all charts on it.
func (p *Plotter) Page(w io.Writer, title string, c ...components.Charter) error {
	page := components.NewPage()
	page.SetPageTitle(title)
	page.SetAssetsHost(p.AssetsHost)
	page.AddCharts(c...)
	return page.Render(w)
}

// ChartID is the DOM id a chart of the given kind is mounted under.
func ChartID(kind models.ChartKind) string {
	return string(kind)
}

// Assets lists the scripts a page needs before any chart snippet can run.
func (p *Plotter) Assets() []string {
	return []string{p.AssetsHost + opts.EchartsJS}
}

func (p *Plotter) globalOptions(chartID string, o models.DisplayOptions) []charts.GlobalOpts {
	width := FIXED_CHART_WIDTH
	if o.Responsive {
		width = "100%"
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:    chartID,
			AssetsHost: p.AssetsHost,
			Width:      width,
			Height:     CHART_HEIGHT,
		}),
		charts.WithTitleOpts(opts.Title{
			Show:  opts.Bool(o.TitleDisplay),
			Title: o.Title,
			Left:  "center",
		}),
		charts.WithLegendOpts(legend(o.LegendPosition)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func responsive(c interface{ AddJSFuncs(fn ...string) }, o models.DisplayOptions) {
	if o.Responsive {
		c.AddJSFuncs(RESIZE_SCRIPT)
	}
}

func legend(position models.LegendPosition) opts.Legend {
	l := opts.Legend{Show: opts.Bool(true)}
	switch position {
	case models.LegendBottom:
		l.Top = "bottom"
	case models.LegendLeft:
		l.Left = "left"
		l.Top = "middle"
		l.Orient = "vertical"
	case models.LegendRight:
		l.Left = "right"
		l.Top = "middle"
		l.Orient = "vertical"
	default:
		// Leaves room for the title above it.
		l.Top = "30"
	}
	return l
}

func itemStyle(s models.Series, i int) *opts.ItemStyle {
	return &opts.ItemStyle{
		Color:       s.ColourAt(i),
		BorderColor: s.BorderColour,
		BorderWidth: s.BorderWidth,
	}
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
