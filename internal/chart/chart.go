// Package chart renders discharge results as PNG line charts, one line per
// condition, with each condition's maximum marked and labelled.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"discharge-analyzer/internal/discharge"
	"discharge-analyzer/internal/model"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Kind names one of the chart artifacts. Values are used as file name stems.
type Kind string

const (
	KindPower          Kind = "power"
	KindEnergy         Kind = "energy"
	KindCapacity       Kind = "capacity"
	KindVoltageCurrent Kind = "voltage_current"
)

// Kinds lists every chart in rendering order.
var Kinds = []Kind{KindPower, KindEnergy, KindCapacity, KindVoltageCurrent}

const (
	width  = 1200
	height = 800
)

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// FileName is the PNG name used by RenderAll.
func (k Kind) FileName() string {
	return string(k) + ".png"
}

// Build assembles the chart for kind. It fails when res has no conditions.
func Build(kind Kind, res *discharge.Result) (*gochart.Chart, error) {
	if res == nil || len(res.Conditions) == 0 {
		return nil, fmt.Errorf("no conditions to plot")
	}
	switch kind {
	case KindPower:
		return metricChart(res, model.MetricPower), nil
	case KindEnergy:
		return metricChart(res, model.MetricEnergy), nil
	case KindCapacity:
		return metricChart(res, model.MetricCapacity), nil
	case KindVoltageCurrent:
		return voltageCurrentChart(res), nil
	default:
		return nil, fmt.Errorf("unknown chart %q", kind)
	}
}

// Render writes the PNG for kind to w.
func Render(w io.Writer, kind Kind, res *discharge.Result) error {
	ch, err := Build(kind, res)
	if err != nil {
		return err
	}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", kind, err)
	}
	return nil
}

// RenderAll writes every chart into dir and returns the file paths.
func RenderAll(dir string, res *discharge.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		path := filepath.Join(dir, k.FileName())
		if err := renderFile(path, k, res); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderFile(path string, kind Kind, res *discharge.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Render(f, kind, res); err != nil {
		return err
	}
	return f.Close()
}

func title(what string, cutoff float64) string {
	return fmt.Sprintf("%s vs Time for Different Temperatures (Cut-off %gV)", what, cutoff)
}

func metricChart(res *discharge.Result, m model.Metric) *gochart.Chart {
	var series []gochart.Series
	var notes []gochart.Value2
	yr := newExtent()
	for i, c := range res.Conditions {
		col := gochart.GetDefaultColor(i)
		ys := c.Series.Values(m)
		yr.add(ys...)
		series = append(series, lineSeries(fmt.Sprintf("%s at %s", m, c.Label), c.Series.Time, ys, lineStyle(col, false)))
		if p, ok := c.Summary.Peak(m); ok {
			label := fmt.Sprintf("Max %s (%.2f %s)", c.Label, p.Value, m.Unit())
			series = append(series, pointSeries(label, p, col))
			notes = append(notes, gochart.Value2{XValue: p.Time, YValue: p.Value, Label: label})
		}
	}
	return assemble(title(metricTitle(m), res.CutoffVoltage), m.Label(), res, yr, series, notes)
}

func voltageCurrentChart(res *discharge.Result) *gochart.Chart {
	var series []gochart.Series
	var notes []gochart.Value2
	yr := newExtent()
	for i, c := range res.Conditions {
		col := gochart.GetDefaultColor(i)
		yr.add(c.Series.Voltage...)
		yr.add(c.Series.Current...)
		series = append(series,
			lineSeries("Voltage at "+c.Label, c.Series.Time, c.Series.Voltage, lineStyle(col, true)),
			lineSeries("Current at "+c.Label, c.Series.Time, c.Series.Current, lineStyle(col, false)),
		)
		for _, m := range []model.Metric{model.MetricVoltage, model.MetricCurrent} {
			p, ok := c.Summary.Peak(m)
			if !ok {
				continue
			}
			label := fmt.Sprintf("Max %s %s (%.2f %s)", metricTitle(m), c.Label, p.Value, m.Unit())
			series = append(series, pointSeries(label, p, col))
			notes = append(notes, gochart.Value2{XValue: p.Time, YValue: p.Value, Label: label})
		}
	}
	return assemble(title("Voltage and Current", res.CutoffVoltage), "Voltage [V] / Current [A]", res, yr, series, notes)
}

func assemble(name, yName string, res *discharge.Result, yr extent, series []gochart.Series, notes []gochart.Value2) *gochart.Chart {
	xr := newExtent()
	for _, c := range res.Conditions {
		xr.add(c.Series.Time...)
	}
	if len(notes) > 0 {
		series = append(series, gochart.AnnotationSeries{Name: "maxima", Annotations: notes})
	}
	ch := &gochart.Chart{
		Title:      name,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  "Time [s]",
			Range: xr.rangeOf(),
		},
		YAxis: gochart.YAxis{
			Name:  yName,
			Range: yr.rangeOf(),
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(ch)}
	return ch
}

func metricTitle(m model.Metric) string {
	switch m {
	case model.MetricPower:
		return "Power"
	case model.MetricEnergy:
		return "Energy"
	case model.MetricCapacity:
		return "Capacity"
	case model.MetricVoltage:
		return "Voltage"
	case model.MetricCurrent:
		return "Current"
	default:
		return string(m)
	}
}

func lineStyle(col drawing.Color, dashed bool) gochart.Style {
	st := gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
	if dashed {
		st.StrokeDashArray = []float64{6, 4}
	}
	return st
}

// pointStyle renders points only (no connecting line).
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func lineSeries(name string, xs, ys []float64, st gochart.Style) gochart.ContinuousSeries {
	// go-chart needs at least two X values per series.
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}
	return gochart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: st}
}

func pointSeries(name string, p model.Peak, col drawing.Color) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{
		Name:    name,
		XValues: []float64{p.Time, p.Time},
		YValues: []float64{p.Value, p.Value},
		Style:   pointStyle(col),
	}
}

// extent tracks the min/max of plotted values.
type extent struct {
	min, max float64
}

func newExtent() extent {
	return extent{min: math.Inf(1), max: math.Inf(-1)}
}

func (e *extent) add(vs ...float64) {
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		e.min = math.Min(e.min, v)
		e.max = math.Max(e.max, v)
	}
}

// rangeOf clamps the axis to the plotted values. A flat or empty extent is
// widened so the renderer has a non-zero span.
func (e extent) rangeOf() *gochart.ContinuousRange {
	lo, hi := e.min, e.max
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	if hi <= lo {
		pad := math.Max(math.Abs(lo)*0.05, 1)
		lo, hi = lo-pad, hi+pad
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}
