package models

type ChartKind string

const (
	LineChart ChartKind = "line"
	BarChart  ChartKind = "bar"
	PieChart  ChartKind = "pie"
)

type LegendPosition string

const (
	LegendTop    LegendPosition = "top"
	LegendBottom LegendPosition = "bottom"
	LegendLeft   LegendPosition = "left"
	LegendRight  LegendPosition = "right"
)

// Dataset describes everything a chart needs to draw itself: the category labels along one axis (or around the pie)
// and the series plotted against them.
type Dataset struct {
	Kind   ChartKind
	Labels []string
	Series []Series
}

type Series struct {
	// Name is shown in the legend.
	Name   string
	Values []int
	// BackgroundColours fill bars and pie slices. It is indexed by data point and wraps around when there are fewer
	// colours than values, so ["red", "blue"] gives red, blue, red, blue, ...
	BackgroundColours []string
	// BorderColour draws the line on line charts and outlines bars and slices elsewhere.
	BorderColour string
	BorderWidth  float32
	// HoverOffset is how far, in pixels, a pie slice pops out while hovered.
	HoverOffset int
}

// ColourAt returns the background colour for the data point at index i, or "" when the series has none.
func (s Series) ColourAt(i int) string {
	if len(s.BackgroundColours) == 0 || i < 0 {
		return ""
	}
	return s.BackgroundColours[i%len(s.BackgroundColours)]
}

// DisplayOptions is the configuration shared by all three charts.
type DisplayOptions struct {
	Responsive     bool
	LegendPosition LegendPosition
	TitleDisplay   bool
	Title          string
}
