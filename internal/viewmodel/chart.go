package viewmodel

type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// TickNumber tells the client to render axis ticks through the number
// formatter.
const TickNumber = "number"

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	YAxisID         string    `json:"yAxisID,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Axis struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Position    string `json:"position,omitempty"`
	BeginAtZero bool   `json:"beginAtZero"`
	TickFormat  string `json:"tickFormat,omitempty"`
	// OwnGrid is false for secondary axes that must not draw on the chart area.
	OwnGrid bool `json:"ownGrid"`
}

type Chart struct {
	Type ChartType `json:"type"`
	Data ChartData `json:"data"`
	Axes []Axis    `json:"axes"`
}

// Dataset returns the dataset with the given label.
func (c Chart) Dataset(label string) (Dataset, bool) {
	for _, ds := range c.Data.Datasets {
		if ds.Label == label {
			return ds, true
		}
	}
	return Dataset{}, false
}

func hostAxis() Axis {
	return Axis{ID: "x", Title: "Server Hostname", OwnGrid: true}
}

func valueAxis(title, tickFormat string) Axis {
	return Axis{ID: "y", Title: title, BeginAtZero: true, TickFormat: tickFormat, OwnGrid: true}
}
