package models

// CampaignStatus is the lifecycle state of a marketing campaign.
type CampaignStatus string

const (
	StatusActive  CampaignStatus = "active"
	StatusEnded   CampaignStatus = "ended"
	StatusPlanned CampaignStatus = "planned"
)

var CampaignStatuses = []CampaignStatus{StatusActive, StatusEnded, StatusPlanned}

func (s CampaignStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusEnded, StatusPlanned:
		return true
	}
	return false
}

// Rolling average window labels, in display order.
const (
	Window24h = "24h"
	Window7d  = "7d"
	Window14d = "14d"
	Window30d = "30d"
)

var AverageWindows = []string{Window24h, Window7d, Window14d, Window30d}

type Averages struct {
	Day       float64 `json:"24h"`
	Week      float64 `json:"7d"`
	Fortnight float64 `json:"14d"`
	Month     float64 `json:"30d"`
}

// Values returns the averages aligned with AverageWindows.
func (a Averages) Values() []float64 {
	return []float64{a.Day, a.Week, a.Fortnight, a.Month}
}

type PlayerCount struct {
	Current   float64  `json:"current"`
	Averages  Averages `json:"averages"`
	PeakCount float64  `json:"peak_count"`
	PeakTime  string   `json:"peak_time"`
}

type PlatformStat struct {
	Total       float64      `json:"total"`
	Java        float64      `json:"java"`
	Bedrock     float64      `json:"bedrock"`
	PlayerCount *PlayerCount `json:"player_count,omitempty"`
}

type RevenueStat struct {
	USD float64 `json:"USD"`
	EUR float64 `json:"EUR"`
}

type SessionStat struct {
	AverageTimeSeconds   float64 `json:"average_time_seconds"`
	AverageTimeFormatted string  `json:"average_time_formatted"`
}

type JoinStats struct {
	Total   float64 `json:"total"`
	Java    float64 `json:"java"`
	Bedrock float64 `json:"bedrock"`
}

type Campaign struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Currency     string         `json:"currency"`
	Cost         float64        `json:"cost"`
	TotalRevenue float64        `json:"total_revenue"`
	Profit       *float64       `json:"profit,omitempty"`
	ROI          *float64       `json:"roi,omitempty"`
	Status       CampaignStatus `json:"status"`
	Hostnames    []string       `json:"hostnames"`
	JoinStats    *JoinStats     `json:"join_stats,omitempty"`
}

// StatsExport is one validated EasyStats export document.
type StatsExport struct {
	ExportDate    string                `json:"export_date"`
	Timeframe     string                `json:"timeframe"`
	TimeframeDays string                `json:"timeframe_days"`
	PlayerCount   *PlayerCount          `json:"player_count,omitempty"`
	PlatformStats HostMap[PlatformStat] `json:"platform_stats"`
	RevenueStats  HostMap[RevenueStat]  `json:"revenue_stats"`
	SessionStats  HostMap[SessionStat]  `json:"session_stats"`
	Campaigns     []Campaign            `json:"campaigns"`
}
