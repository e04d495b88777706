package viewmodel

import (
	"esv/internal/models"
)

const SecondsPerHour = 3600

// Dataset labels.
const (
	LabelTotal          = "Total"
	LabelJava           = "Java"
	LabelBedrock        = "Bedrock"
	LabelUSD            = "USD Revenue"
	LabelEUR            = "EUR Revenue"
	LabelSessionHours   = "Average Session Time (hours)"
	LabelRevenue        = "Revenue"
	LabelCost           = "Cost"
	LabelTotalJoins     = "Total Joins"
	LabelJavaJoins      = "Java Joins"
	LabelBedrockJoins   = "Bedrock Joins"
	LabelAveragePlayers = "Average Players"
)

// PlatformChart has one category per platform_stats hostname and the
// Total, Java and Bedrock series aligned with it.
func PlatformChart(export *models.StatsExport) Chart {
	n := export.PlatformStats.Len()
	labels := make([]string, 0, n)
	total := make([]float64, 0, n)
	java := make([]float64, 0, n)
	bedrock := make([]float64, 0, n)
	for host, stat := range export.PlatformStats.All() {
		labels = append(labels, host)
		total = append(total, stat.Total)
		java = append(java, stat.Java)
		bedrock = append(bedrock, stat.Bedrock)
	}
	return Chart{
		Type: ChartBar,
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{
				{Label: LabelTotal, Data: total, BackgroundColor: "rgba(234, 179, 8, 0.8)"},
				{Label: LabelJava, Data: java, BackgroundColor: "rgba(59, 130, 246, 0.8)"},
				{Label: LabelBedrock, Data: bedrock, BackgroundColor: "rgba(14, 165, 233, 0.8)"},
			},
		},
		Axes: []Axis{hostAxis(), valueAxis("Number of Players", "")},
	}
}

// RevenueChart has one category per revenue_stats hostname with USD and EUR
// series.
func RevenueChart(export *models.StatsExport) Chart {
	n := export.RevenueStats.Len()
	labels := make([]string, 0, n)
	usd := make([]float64, 0, n)
	eur := make([]float64, 0, n)
	for host, stat := range export.RevenueStats.All() {
		labels = append(labels, host)
		usd = append(usd, stat.USD)
		eur = append(eur, stat.EUR)
	}
	return Chart{
		Type: ChartBar,
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{
				{Label: LabelUSD, Data: usd, BackgroundColor: "rgba(239, 68, 68, 0.8)"},
				{Label: LabelEUR, Data: eur, BackgroundColor: "rgba(168, 85, 247, 0.8)"},
			},
		},
		Axes: []Axis{hostAxis(), valueAxis("Revenue Amount", TickNumber)},
	}
}

// SessionChart converts the average session length of every session_stats
// hostname to hours.
func SessionChart(export *models.StatsExport) Chart {
	n := export.SessionStats.Len()
	labels := make([]string, 0, n)
	hours := make([]float64, 0, n)
	for host, stat := range export.SessionStats.All() {
		labels = append(labels, host)
		hours = append(hours, stat.AverageTimeSeconds/SecondsPerHour)
	}
	return Chart{
		Type: ChartLine,
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           LabelSessionHours,
				Data:            hours,
				BorderColor:     "rgb(34, 197, 94)",
				BackgroundColor: "rgba(34, 197, 94, 0.1)",
				Tension:         0.1,
				Fill:            true,
			}},
		},
		Axes: []Axis{hostAxis(), valueAxis("Duration (Hours)", "")},
	}
}

// CampaignChart has one category per campaign in declaration order. Money
// series use the "y" axis and join series the "y1" axis. A campaign without
// join_stats contributes 0 to each join series.
func CampaignChart(export *models.StatsExport) Chart {
	n := len(export.Campaigns)
	labels := make([]string, 0, n)
	revenue := make([]float64, 0, n)
	cost := make([]float64, 0, n)
	joins := make([]float64, 0, n)
	java := make([]float64, 0, n)
	bedrock := make([]float64, 0, n)
	for _, c := range export.Campaigns {
		labels = append(labels, c.Name)
		revenue = append(revenue, c.TotalRevenue)
		cost = append(cost, c.Cost)

		var js models.JoinStats
		if c.JoinStats != nil {
			js = *c.JoinStats
		}
		joins = append(joins, js.Total)
		java = append(java, js.Java)
		bedrock = append(bedrock, js.Bedrock)
	}
	return Chart{
		Type: ChartBar,
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{
				campaignDataset(LabelRevenue, revenue, "59, 130, 246", "y"),
				campaignDataset(LabelCost, cost, "239, 68, 68", "y"),
				campaignDataset(LabelTotalJoins, joins, "34, 197, 94", "y1"),
				campaignDataset(LabelJavaJoins, java, "234, 179, 8", "y1"),
				campaignDataset(LabelBedrockJoins, bedrock, "168, 85, 247", "y1"),
			},
		},
		Axes: []Axis{
			{ID: "x", Title: "Campaign Name", OwnGrid: true},
			{ID: "y", Title: "Amount in Currency", Position: "left", BeginAtZero: true, TickFormat: TickNumber, OwnGrid: true},
			{ID: "y1", Title: "Number of Joins", Position: "right", BeginAtZero: true, TickFormat: TickNumber},
		},
	}
}

func campaignDataset(label string, data []float64, rgb, axis string) Dataset {
	return Dataset{
		Label:           label,
		Data:            data,
		BackgroundColor: "rgba(" + rgb + ", 0.5)",
		BorderColor:     "rgb(" + rgb + ")",
		BorderWidth:     1,
		YAxisID:         axis,
	}
}

// AveragesChart plots rolling player averages over the fixed windows.
func AveragesChart(pc *models.PlayerCount) Chart {
	labels := make([]string, len(models.AverageWindows))
	copy(labels, models.AverageWindows)
	return Chart{
		Type: ChartLine,
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           LabelAveragePlayers,
				Data:            pc.Averages.Values(),
				BorderColor:     "rgb(59, 130, 246)",
				BackgroundColor: "rgba(59, 130, 246, 0.1)",
				Tension:         0.1,
				Fill:            true,
			}},
		},
		Axes: []Axis{{ID: "x", OwnGrid: true}, valueAxis("Number of Players", "")},
	}
}
