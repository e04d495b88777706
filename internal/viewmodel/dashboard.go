package viewmodel

import (
	"esv/internal/models"
)

type ExportInfo struct {
	ExportDate    string `json:"exportDate"`
	Timeframe     string `json:"timeframe"`
	TimeframeDays string `json:"timeframeDays"`
}

type PlayerCountOverview struct {
	Current     float64 `json:"current"`
	CurrentText string  `json:"currentText"`
	Peak        float64 `json:"peak"`
	PeakText    string  `json:"peakText"`
	PeakTime    string  `json:"peakTime"`
	Averages    Chart   `json:"averages"`
}

type WindowAverage struct {
	Window string  `json:"window"`
	Value  float64 `json:"value"`
}

// ServerPlayerCount is the player count card of one platform hostname.
type ServerPlayerCount struct {
	Hostname string          `json:"hostname"`
	Current  float64         `json:"current"`
	Averages []WindowAverage `json:"averages"`
	Peak     float64         `json:"peak"`
	PeakTime string          `json:"peakTime"`
}

type SessionTime struct {
	Hostname  string `json:"hostname"`
	Formatted string `json:"formatted"`
}

// Dashboard is everything the rendering client needs for one document.
type Dashboard struct {
	Export             ExportInfo           `json:"export"`
	PlayerCount        *PlayerCountOverview `json:"playerCount"`
	ServerPlayerCounts []ServerPlayerCount  `json:"serverPlayerCounts"`
	Platforms          Chart                `json:"platforms"`
	Revenue            Chart                `json:"revenue"`
	Sessions           Chart                `json:"sessions"`
	SessionTimes       []SessionTime        `json:"sessionTimes"`
	Campaigns          Chart                `json:"campaigns"`
	CampaignRows       []CampaignRow        `json:"campaignRows"`
}

type Builder struct {
	format *Formatter
}

func NewBuilder(f *Formatter) *Builder {
	if f == nil {
		f = DefaultFormatter()
	}
	return &Builder{format: f}
}

func (b *Builder) Formatter() *Formatter {
	return b.format
}

// Build derives the dashboard of a validated export. export must not be nil.
func (b *Builder) Build(export *models.StatsExport) *Dashboard {
	return &Dashboard{
		Export: ExportInfo{
			ExportDate:    b.format.DateTime(export.ExportDate),
			Timeframe:     export.Timeframe,
			TimeframeDays: export.TimeframeDays,
		},
		PlayerCount:        b.playerCount(export.PlayerCount),
		ServerPlayerCounts: b.serverPlayerCounts(export),
		Platforms:          PlatformChart(export),
		Revenue:            RevenueChart(export),
		Sessions:           SessionChart(export),
		SessionTimes:       sessionTimes(export),
		Campaigns:          CampaignChart(export),
		CampaignRows:       CampaignRows(export.Campaigns, b.format),
	}
}

func (b *Builder) playerCount(pc *models.PlayerCount) *PlayerCountOverview {
	if pc == nil {
		return nil
	}
	return &PlayerCountOverview{
		Current:     pc.Current,
		CurrentText: b.format.Number(pc.Current),
		Peak:        pc.PeakCount,
		PeakText:    b.format.Number(pc.PeakCount),
		PeakTime:    b.format.DateTime(pc.PeakTime),
		Averages:    AveragesChart(pc),
	}
}

// serverPlayerCounts lists only the hostnames whose platform stats carry a
// player count block.
func (b *Builder) serverPlayerCounts(export *models.StatsExport) []ServerPlayerCount {
	out := make([]ServerPlayerCount, 0)
	for host, stat := range export.PlatformStats.All() {
		pc := stat.PlayerCount
		if pc == nil {
			continue
		}
		averages := make([]WindowAverage, 0, len(models.AverageWindows))
		for i, v := range pc.Averages.Values() {
			averages = append(averages, WindowAverage{Window: models.AverageWindows[i], Value: v})
		}
		peakTime := "N/A"
		if pc.PeakTime != "" {
			peakTime = b.format.DateTime(pc.PeakTime)
		}
		out = append(out, ServerPlayerCount{
			Hostname: host,
			Current:  pc.Current,
			Averages: averages,
			Peak:     pc.PeakCount,
			PeakTime: peakTime,
		})
	}
	return out
}

func sessionTimes(export *models.StatsExport) []SessionTime {
	out := make([]SessionTime, 0, export.SessionStats.Len())
	for host, stat := range export.SessionStats.All() {
		out = append(out, SessionTime{Hostname: host, Formatted: stat.AverageTimeFormatted})
	}
	return out
}
