package testutil

import (
	"fmt"
	"strings"
)

// ValidExportJSON is a complete export document as written by the plugin.
// Hostnames are deliberately out of alphabetical order.
const ValidExportJSON = `{
  "export_date": "2024-03-15T12:30:00Z",
  "timeframe": "Last 30 days",
  "timeframe_days": "30",
  "player_count": {
    "current": 42,
    "averages": {"24h": 38.5, "7d": 35, "14d": 33.25, "30d": 30},
    "peak_count": 120,
    "peak_time": "2024-03-10T20:15:00Z"
  },
  "platform_stats": {
    "survival.example.net": {
      "total": 1500,
      "java": 1100,
      "bedrock": 400,
      "player_count": {
        "current": 30,
        "averages": {"24h": 25, "7d": 22, "14d": 21, "30d": 20},
        "peak_count": 80,
        "peak_time": "2024-03-09T19:00:00Z"
      }
    },
    "creative.example.net": {"total": 250, "java": 200, "bedrock": 50}
  },
  "revenue_stats": {
    "survival.example.net": {"USD": 12500.5, "EUR": 3400},
    "creative.example.net": {"USD": 0, "EUR": 120.75}
  },
  "session_stats": {
    "survival.example.net": {"average_time_seconds": 7200, "average_time_formatted": "2h 0m"},
    "creative.example.net": {"average_time_seconds": 1800, "average_time_formatted": "30m"}
  },
  "campaigns": [
    {
      "name": "Spring Launch",
      "description": "Server list ads",
      "start_date": "2024-03-01T00:00:00Z",
      "end_date": "2024-03-31T00:00:00Z",
      "currency": "USD",
      "cost": 2000,
      "total_revenue": 5400,
      "profit": 3400,
      "roi": 170,
      "status": "active",
      "hostnames": ["survival.example.net"],
      "join_stats": {"total": 640, "java": 500, "bedrock": 140}
    },
    {
      "name": "Winter Promo",
      "description": "YouTube sponsorship",
      "start_date": "2023-12-01T00:00:00Z",
      "end_date": "2023-12-31T00:00:00Z",
      "currency": "EUR",
      "cost": 1500,
      "total_revenue": 900,
      "profit": -600,
      "roi": -40,
      "status": "ended",
      "hostnames": ["survival.example.net", "creative.example.net"]
    }
  ]
}`

// MinimalExportJSON carries only the required members.
const MinimalExportJSON = `{
  "export_date": "2024-01-01T00:00:00Z",
  "timeframe": "Last 7 days",
  "timeframe_days": "7",
  "platform_stats": {},
  "revenue_stats": {},
  "session_stats": {},
  "campaigns": []
}`

// LargeExportJSON builds an export with the given number of campaigns spread
// over a handful of hosts. Values vary per campaign so the document does not
// compress down to nothing.
func LargeExportJSON(campaigns int) string {
	hosts := []string{"alpha.example.net", "beta.example.net", "gamma.example.net", "delta.example.net"}
	statuses := []string{"active", "ended", "planned"}

	var b strings.Builder
	b.WriteString(`{"export_date":"2024-03-15T12:30:00Z","timeframe":"Last 30 days","timeframe_days":"30",`)
	sections := []struct {
		key  string
		each func(i int) string
	}{
		{"platform_stats", func(i int) string {
			return fmt.Sprintf(`{"total":%d,"java":%d,"bedrock":%d}`, 1000+i*37, 700+i*29, 300+i*8)
		}},
		{"revenue_stats", func(i int) string {
			return fmt.Sprintf(`{"USD":%d.25,"EUR":%d.5}`, 5000+i*113, 4000+i*97)
		}},
		{"session_stats", func(i int) string {
			return fmt.Sprintf(`{"average_time_seconds":%d,"average_time_formatted":"%dm"}`, 1800+i*60, 30+i)
		}},
	}
	for _, sec := range sections {
		fmt.Fprintf(&b, `%q:{`, sec.key)
		for i, h := range hosts {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, `%q:%s`, h, sec.each(i))
		}
		b.WriteString(`},`)
	}
	b.WriteString(`"campaigns":[`)
	for i := 0; i < campaigns; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		cost := 100 + (i*7919)%9973
		revenue := 50 + (i*104729)%19991
		fmt.Fprintf(&b, `{"name":"Campaign %d","description":"Placement %x on list %d","start_date":"2024-%02d-%02dT00:00:00Z","end_date":"2024-%02d-%02dT00:00:00Z","currency":"USD","cost":%d,"total_revenue":%d,"profit":%d,"roi":%.3f,"status":%q,"hostnames":[%q],"join_stats":{"total":%d,"java":%d,"bedrock":%d}}`,
			i, i*2654435761, i%97,
			i%12+1, i%28+1, (i+1)%12+1, (i*3)%28+1,
			cost, revenue, revenue-cost, float64(revenue-cost)/float64(cost)*100,
			statuses[i%len(statuses)], hosts[i%len(hosts)],
			(i*31)%5000+10, (i*17)%3000+5, (i*13)%2000+5)
	}
	b.WriteString(`]}`)
	return b.String()
}
