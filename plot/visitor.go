package plot

import "github.com/go-echarts/go-echarts/v2/charts"

// hoverOffsetVisitor grows pie slices on hover. go-echarts has no option for the emphasis scale, so it is added to
// each series on the way out.
type hoverOffsetVisitor struct {
	charts.BaseConfigurationVisitor
	scaleSize int
}

type hoverEmphasis struct {
	Scale     bool `json:"scale"`
	ScaleSize int  `json:"scaleSize"`
}

type hoverSeries struct {
	charts.SingleSeries
	Emphasis hoverEmphasis `json:"emphasis"`
}

func (v hoverOffsetVisitor) VisitSeriesOpt(series charts.MultiSeries) interface{} {
	out := make([]hoverSeries, len(series))
	for i, s := range series {
		out[i] = hoverSeries{
			SingleSeries: s,
			Emphasis:     hoverEmphasis{Scale: true, ScaleSize: v.scaleSize},
		}
	}
	return out
}
