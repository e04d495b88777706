package viewmodel

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"esv/internal/models"
)

// Tone is the colour class of a signed metric.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// toneOf is positive only for a present value above zero. Absent values
// share the negative tone.
func toneOf(v *float64) Tone {
	if v != nil && *v > 0 {
		return TonePositive
	}
	return ToneNegative
}

type CampaignRow struct {
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	StartDate    string                `json:"startDate"`
	EndDate      string                `json:"endDate"`
	Period       string                `json:"period"`
	Currency     string                `json:"currency"`
	Cost         float64               `json:"cost"`
	CostText     string                `json:"costText"`
	Revenue      float64               `json:"revenue"`
	RevenueText  string                `json:"revenueText"`
	Profit       *float64              `json:"profit,omitempty"`
	ProfitText   string                `json:"profitText"`
	ProfitTone   Tone                  `json:"profitTone"`
	ROI          *float64              `json:"roi,omitempty"`
	ROIText      string                `json:"roiText"`
	ROITone      Tone                  `json:"roiTone"`
	Status       models.CampaignStatus `json:"status"`
	Hostnames    []string              `json:"hostnames"`
	JoinStats    *models.JoinStats     `json:"joinStats,omitempty"`
	TotalJoins   string                `json:"totalJoins"`
	JavaJoins    string                `json:"javaJoins"`
	BedrockJoins string                `json:"bedrockJoins"`
}

// CampaignRows builds one table row per campaign in declaration order.
func CampaignRows(campaigns []models.Campaign, f *Formatter) []CampaignRow {
	rows := make([]CampaignRow, 0, len(campaigns))
	for _, c := range campaigns {
		row := CampaignRow{
			Name:         c.Name,
			Description:  c.Description,
			StartDate:    c.StartDate,
			EndDate:      c.EndDate,
			Period:       f.Date(c.StartDate) + " - " + f.Date(c.EndDate),
			Currency:     c.Currency,
			Cost:         c.Cost,
			CostText:     f.Number(c.Cost),
			Revenue:      c.TotalRevenue,
			RevenueText:  f.Number(c.TotalRevenue),
			Profit:       c.Profit,
			ProfitText:   f.OptionalNumber(c.Profit),
			ProfitTone:   toneOf(c.Profit),
			ROI:          c.ROI,
			ROIText:      Placeholder,
			ROITone:      toneOf(c.ROI),
			Status:       c.Status,
			Hostnames:    slices.Clone(c.Hostnames),
			JoinStats:    c.JoinStats,
			TotalJoins:   Placeholder,
			JavaJoins:    Placeholder,
			BedrockJoins: Placeholder,
		}
		if c.ROI != nil {
			row.ROIText = f.Percent(*c.ROI)
		}
		if js := c.JoinStats; js != nil {
			row.TotalJoins = f.joinCount(js.Total)
			row.JavaJoins = f.joinCount(js.Java)
			row.BedrockJoins = f.joinCount(js.Bedrock)
		}
		rows = append(rows, row)
	}
	return rows
}

// joinCount renders zero joins as the placeholder, same as absent stats.
func (f *Formatter) joinCount(n float64) string {
	if n == 0 {
		return Placeholder
	}
	return f.Number(n)
}

type SortKey string

const (
	SortName    SortKey = "name"
	SortStart   SortKey = "start"
	SortEnd     SortKey = "end"
	SortCost    SortKey = "cost"
	SortRevenue SortKey = "revenue"
	SortProfit  SortKey = "profit"
	SortROI     SortKey = "roi"
	SortStatus  SortKey = "status"
	SortJoins   SortKey = "joins"
)

var sortKeys = []SortKey{SortName, SortStart, SortEnd, SortCost, SortRevenue, SortProfit, SortROI, SortStatus, SortJoins}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(sortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// SortCampaignRows returns a stably sorted copy of rows. In ascending order
// rows with an absent optional metric come last.
func SortCampaignRows(rows []CampaignRow, key SortKey, descending bool) []CampaignRow {
	out := slices.Clone(rows)
	compare := rowComparator(key)
	slices.SortStableFunc(out, func(a, b CampaignRow) int {
		r := compare(a, b)
		if descending {
			return -r
		}
		return r
	})
	return out
}

func rowComparator(key SortKey) func(a, b CampaignRow) int {
	switch key {
	case SortStart:
		return func(a, b CampaignRow) int { return compareTimestamps(a.StartDate, b.StartDate) }
	case SortEnd:
		return func(a, b CampaignRow) int { return compareTimestamps(a.EndDate, b.EndDate) }
	case SortCost:
		return func(a, b CampaignRow) int { return cmp.Compare(a.Cost, b.Cost) }
	case SortRevenue:
		return func(a, b CampaignRow) int { return cmp.Compare(a.Revenue, b.Revenue) }
	case SortProfit:
		return func(a, b CampaignRow) int { return compareOptional(a.Profit, b.Profit) }
	case SortROI:
		return func(a, b CampaignRow) int { return compareOptional(a.ROI, b.ROI) }
	case SortStatus:
		return func(a, b CampaignRow) int { return cmp.Compare(a.Status, b.Status) }
	case SortJoins:
		return func(a, b CampaignRow) int { return compareOptional(totalJoins(a), totalJoins(b)) }
	default:
		return func(a, b CampaignRow) int { return cmp.Compare(a.Name, b.Name) }
	}
}

func totalJoins(r CampaignRow) *float64 {
	if r.JoinStats == nil {
		return nil
	}
	return &r.JoinStats.Total
}

func compareOptional(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

func compareTimestamps(a, b string) int {
	ta, okA := parseTimestamp(a)
	tb, okB := parseTimestamp(b)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return cmp.Compare(a, b)
}
