package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"esv/internal/models"

	json "github.com/goccy/go-json"
)

const (
	baseURL       = "http://127.0.0.1:8080"
	numWorkers    = 50
	testDuration  = 10 * time.Second
	numDocuments  = 200
	maxHosts      = 8
	maxCampaigns  = 12
	invalidShare  = 0.2
	repeatedShare = 0.5
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// corpus holds pre-generated documents so cache hits can be measured.
var corpus [][]byte

func main() {
	fmt.Println("=== ESV Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Documents: %d\n\n", numWorkers, testDuration, numDocuments)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	seed := rand.New(rand.NewSource(1))
	corpus = make([][]byte, numDocuments)
	for i := range corpus {
		corpus[i] = generateDocument(seed)
	}

	fmt.Println("\n--- Phase 1: Fresh uploads (POST /api/dashboard) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doUpload(rng, generateDocument(rng))
	})

	fmt.Println("\n--- Phase 2: Mixed load (repeated uploads, invalid files, validation) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < repeatedShare:
			return doUpload(rng, corpus[rng.Intn(len(corpus))])
		case r < repeatedShare+invalidShare:
			return doInvalidUpload(rng)
		case r < 0.85:
			return doValidate(corpus[rng.Intn(len(corpus))])
		default:
			return doFormat(rng)
		}
	})
}

func generateDocument(rng *rand.Rand) []byte {
	hosts := rng.Intn(maxHosts) + 1
	export := models.StatsExport{
		ExportDate:    time.Now().Add(-time.Duration(rng.Intn(720)) * time.Hour).UTC().Format(time.RFC3339),
		Timeframe:     "Last 30 days",
		TimeframeDays: "30",
		PlatformStats: models.NewHostMap[models.PlatformStat](hosts),
		RevenueStats:  models.NewHostMap[models.RevenueStat](hosts),
		SessionStats:  models.NewHostMap[models.SessionStat](hosts),
	}
	if rng.Float64() < 0.7 {
		export.PlayerCount = playerCount(rng)
	}
	names := make([]string, hosts)
	for i := range names {
		names[i] = fmt.Sprintf("mc%d.example.net", rng.Intn(1000))
		java, bedrock := float64(rng.Intn(5000)), float64(rng.Intn(2000))
		stat := models.PlatformStat{Total: java + bedrock, Java: java, Bedrock: bedrock}
		if rng.Float64() < 0.5 {
			stat.PlayerCount = playerCount(rng)
		}
		export.PlatformStats.Set(names[i], stat)
		export.RevenueStats.Set(names[i], models.RevenueStat{USD: rng.Float64() * 10000, EUR: rng.Float64() * 8000})
		seconds := float64(rng.Intn(4 * 3600))
		export.SessionStats.Set(names[i], models.SessionStat{
			AverageTimeSeconds:   seconds,
			AverageTimeFormatted: fmt.Sprintf("%dh %dm", int(seconds)/3600, int(seconds)%3600/60),
		})
	}
	campaigns := rng.Intn(maxCampaigns)
	export.Campaigns = make([]models.Campaign, campaigns)
	for i := range export.Campaigns {
		cost, revenue := float64(rng.Intn(5000)), float64(rng.Intn(9000))
		profit, roi := revenue-cost, 0.0
		if cost > 0 {
			roi = profit / cost * 100
		}
		c := models.Campaign{
			Name:         fmt.Sprintf("Campaign %d", i+1),
			Description:  "generated",
			StartDate:    "2024-01-01T00:00:00Z",
			EndDate:      "2024-02-01T00:00:00Z",
			Currency:     "USD",
			Cost:         cost,
			TotalRevenue: revenue,
			Profit:       &profit,
			ROI:          &roi,
			Status:       models.CampaignStatuses[rng.Intn(len(models.CampaignStatuses))],
			Hostnames:    []string{names[rng.Intn(len(names))]},
		}
		if rng.Float64() < 0.6 {
			java, bedrock := float64(rng.Intn(500)), float64(rng.Intn(200))
			c.JoinStats = &models.JoinStats{Total: java + bedrock, Java: java, Bedrock: bedrock}
		}
		export.Campaigns[i] = c
	}
	data, _ := json.Marshal(&export)
	return data
}

func playerCount(rng *rand.Rand) *models.PlayerCount {
	base := float64(rng.Intn(300))
	return &models.PlayerCount{
		Current:   base,
		Averages:  models.Averages{Day: base * 0.9, Week: base * 0.8, Fortnight: base * 0.75, Month: base * 0.7},
		PeakCount: base * 2,
		PeakTime:  "2024-03-10T20:15:00Z",
	}
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 92))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func post(endpoint, url string, body []byte, expected int) result {
	start := time.Now()
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(body))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != expected}
}

func doUpload(rng *rand.Rand, doc []byte) result {
	url := baseURL + "/api/dashboard"
	if rng.Float64() < 0.3 {
		url += "?sort=profit&order=desc"
	}
	return post("POST /api/dashboard", url, doc, http.StatusOK)
}

func doInvalidUpload(rng *rand.Rand) result {
	doc := corpus[rng.Intn(len(corpus))]
	var broken []byte
	if rng.Float64() < 0.5 {
		broken = doc[:len(doc)/2]
	} else {
		broken = bytes.Replace(doc, []byte(`"campaigns"`), []byte(`"campaign_list"`), 1)
	}
	return post("POST /api/dashboard (bad)", baseURL+"/api/dashboard", broken, http.StatusBadRequest)
}

func doValidate(doc []byte) result {
	return post("POST /api/validate", baseURL+"/api/validate", doc, http.StatusOK)
}

func doFormat(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/api/format?n=%f", baseURL, (rng.Float64()-0.5)*1e7)
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /api/format", 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{"GET /api/format", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
