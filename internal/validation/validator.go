package validation

import (
	"math"
	"strconv"
	"strings"

	"esv/internal/models"
)

// Parse decodes data and validates it as a StatsExport document.
func Parse(data []byte) (*models.StatsExport, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Validate(raw)
}

// Validate checks raw, as produced by Decode, against the export schema and
// builds the typed record. The first mismatch aborts validation and is
// returned as *Error; no partial record is ever returned.
func Validate(raw any) (*models.StatsExport, error) {
	c := &checker{}
	root := c.asObject(raw, "")

	export := &models.StatsExport{
		ExportDate:    c.str(root, "export_date"),
		Timeframe:     c.str(root, "timeframe"),
		TimeframeDays: c.str(root, "timeframe_days"),
		PlayerCount:   c.optPlayerCount(root, "player_count"),
		PlatformStats: hostMap(c, root, "platform_stats", c.platformStat),
		RevenueStats:  hostMap(c, root, "revenue_stats", c.revenueStat),
		SessionStats:  hostMap(c, root, "session_stats", c.sessionStat),
		Campaigns:     c.campaigns(root, "campaigns"),
	}
	if c.err != nil {
		return nil, c.err
	}
	return export, nil
}

// checker keeps the first error; every accessor is a no-op once it is set.
type checker struct {
	err *Error
}

type node struct {
	obj  *Object
	path string
}

func (c *checker) fail(e *Error) {
	if c.err == nil {
		c.err = e
	}
}

func (c *checker) present(n node, key string) bool {
	if c.err != nil || n.obj == nil {
		return false
	}
	_, ok := n.obj.Get(key)
	return ok
}

func (c *checker) field(n node, key, expected string) (any, string, bool) {
	path := joinKey(n.path, key)
	if c.err != nil || n.obj == nil {
		return nil, path, false
	}
	v, ok := n.obj.Get(key)
	if !ok {
		c.fail(missing(path, expected))
		return nil, path, false
	}
	return v, path, true
}

func (c *checker) str(n node, key string) string {
	v, path, ok := c.field(n, key, kindString)
	if !ok {
		return ""
	}
	return c.asString(v, path)
}

func (c *checker) asString(v any, path string) string {
	s, ok := v.(string)
	if !ok {
		c.fail(mismatch(path, kindString, v))
	}
	return s
}

func (c *checker) num(n node, key string) float64 {
	v, path, ok := c.field(n, key, kindNumber)
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		c.fail(mismatch(path, kindNumber, v))
		return 0
	}
	return f
}

func (c *checker) optNum(n node, key string) *float64 {
	if !c.present(n, key) {
		return nil
	}
	f := c.num(n, key)
	if c.err != nil {
		return nil
	}
	return &f
}

func (c *checker) object(n node, key string) node {
	v, path, ok := c.field(n, key, kindObject)
	if !ok {
		return node{path: path}
	}
	return c.asObject(v, path)
}

func (c *checker) asObject(v any, path string) node {
	if c.err != nil {
		return node{path: path}
	}
	obj, ok := v.(*Object)
	if !ok {
		c.fail(mismatch(path, kindObject, v))
		return node{path: path}
	}
	return node{obj: obj, path: path}
}

func (c *checker) array(n node, key string) ([]any, string) {
	v, path, ok := c.field(n, key, kindArray)
	if !ok {
		return nil, path
	}
	arr, ok := v.([]any)
	if !ok {
		c.fail(mismatch(path, kindArray, v))
		return nil, path
	}
	return arr, path
}

func (c *checker) status(n node, key string) models.CampaignStatus {
	expected := "one of " + strings.Join(statusNames(), "|")
	v, path, ok := c.field(n, key, expected)
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		c.fail(mismatch(path, expected, v))
		return ""
	}
	status := models.CampaignStatus(s)
	if !status.IsValid() {
		c.fail(&Error{Path: path, Expected: expected, Received: strconv.Quote(s)})
		return ""
	}
	return status
}

func (c *checker) playerCount(n node) *models.PlayerCount {
	pc := &models.PlayerCount{
		Current:   c.num(n, "current"),
		Averages:  c.averages(c.object(n, "averages")),
		PeakCount: c.num(n, "peak_count"),
		PeakTime:  c.str(n, "peak_time"),
	}
	if c.err != nil {
		return nil
	}
	return pc
}

func (c *checker) optPlayerCount(n node, key string) *models.PlayerCount {
	if !c.present(n, key) {
		return nil
	}
	return c.playerCount(c.object(n, key))
}

func (c *checker) averages(n node) models.Averages {
	return models.Averages{
		Day:       c.num(n, models.Window24h),
		Week:      c.num(n, models.Window7d),
		Fortnight: c.num(n, models.Window14d),
		Month:     c.num(n, models.Window30d),
	}
}

func (c *checker) platformStat(n node) models.PlatformStat {
	return models.PlatformStat{
		Total:       c.num(n, "total"),
		Java:        c.num(n, "java"),
		Bedrock:     c.num(n, "bedrock"),
		PlayerCount: c.optPlayerCount(n, "player_count"),
	}
}

func (c *checker) revenueStat(n node) models.RevenueStat {
	return models.RevenueStat{
		USD: c.num(n, "USD"),
		EUR: c.num(n, "EUR"),
	}
}

func (c *checker) sessionStat(n node) models.SessionStat {
	return models.SessionStat{
		AverageTimeSeconds:   c.num(n, "average_time_seconds"),
		AverageTimeFormatted: c.str(n, "average_time_formatted"),
	}
}

func (c *checker) joinStats(n node) *models.JoinStats {
	js := &models.JoinStats{
		Total:   c.num(n, "total"),
		Java:    c.num(n, "java"),
		Bedrock: c.num(n, "bedrock"),
	}
	if c.err != nil {
		return nil
	}
	return js
}

func (c *checker) campaign(n node) models.Campaign {
	camp := models.Campaign{
		Name:         c.str(n, "name"),
		Description:  c.str(n, "description"),
		StartDate:    c.str(n, "start_date"),
		EndDate:      c.str(n, "end_date"),
		Currency:     c.str(n, "currency"),
		Cost:         c.num(n, "cost"),
		TotalRevenue: c.num(n, "total_revenue"),
		Profit:       c.optNum(n, "profit"),
		ROI:          c.optNum(n, "roi"),
		Status:       c.status(n, "status"),
		Hostnames:    c.hostnames(n, "hostnames"),
	}
	if c.present(n, "join_stats") {
		camp.JoinStats = c.joinStats(c.object(n, "join_stats"))
	}
	return camp
}

func (c *checker) hostnames(n node, key string) []string {
	items, path := c.array(n, key)
	if c.err != nil {
		return nil
	}
	if len(items) == 0 {
		c.fail(&Error{Path: path, Expected: "non-empty array", Received: "empty array"})
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		out = append(out, c.asString(item, indexPath(path, i)))
	}
	if c.err != nil {
		return nil
	}
	return out
}

func (c *checker) campaigns(n node, key string) []models.Campaign {
	items, path := c.array(n, key)
	if c.err != nil {
		return nil
	}
	out := make([]models.Campaign, 0, len(items))
	for i, item := range items {
		camp := c.campaign(c.asObject(item, indexPath(path, i)))
		if c.err != nil {
			return nil
		}
		out = append(out, camp)
	}
	return out
}

func hostMap[T any](c *checker, n node, key string, each func(node) T) models.HostMap[T] {
	m := c.object(n, key)
	if c.err != nil {
		return models.HostMap[T]{}
	}
	out := models.NewHostMap[T](m.obj.Len())
	for _, host := range m.obj.Keys() {
		v, _ := m.obj.Get(host)
		rec := each(c.asObject(v, hostPath(m.path, host)))
		if c.err != nil {
			return models.HostMap[T]{}
		}
		out.Set(host, rec)
	}
	return out
}

func statusNames() []string {
	names := make([]string, len(models.CampaignStatuses))
	for i, s := range models.CampaignStatuses {
		names[i] = string(s)
	}
	return names
}

func joinKey(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func hostPath(parent, host string) string {
	return parent + "[" + strconv.Quote(host) + "]"
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
