package bot

import (
	"bytes"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gymbot/internal/workout"
)

// ErrTooFewPoints is returned when the series has fewer than two points;
// a line chart needs at least two.
var ErrTooFewPoints = fmt.Errorf("chart: need at least two points")

// RenderProgressChart draws the weight-over-time line chart for one
// exercise and returns it as PNG bytes.
func RenderProgressChart(exercise string, series []workout.WeightPoint) ([]byte, error) {
	if len(series) < 2 {
		return nil, ErrTooFewPoints
	}

	xs := make([]time.Time, 0, len(series))
	ys := make([]float64, 0, len(series))
	for _, p := range series {
		xs = append(xs, p.Date)
		ys = append(ys, p.Weight)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Прогресс: %s", exercise),
		Width:  900,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02.01.2006"),
		},
		YAxis: chart.YAxis{
			Name: "кг",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorBlue,
					StrokeWidth: 2.5,
					DotColor:    drawing.ColorBlue,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: render: %w", err)
	}
	return buf.Bytes(), nil
}
