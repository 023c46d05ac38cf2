package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/punchamoorthee/revenueops/internal/models"
)

// Config holds the benchmark settings
var (
	targetURL   string
	concurrency int
	duration    time.Duration
	workload    string
	replayRate  float64
)

// Metrics
var (
	totalRequests uint64
	success200    uint64 // Evaluations and idempotent replays
	success201    uint64 // Scenarios created
	fail400       uint64 // Validation errors
	fail409       uint64 // Key in progress
	fail422       uint64 // Inconsistent facts or key mismatch
	failOther     uint64
)

func init() {
	flag.StringVar(&targetURL, "url", "http://localhost:8080", "API Base URL")
	flag.IntVar(&concurrency, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 30*time.Second, "Test duration")
	flag.StringVar(&workload, "workload", "entries", "Workload type: entries | scenarios")
	flag.Float64Var(&replayRate, "replay", 0.2, "Share of scenario requests that reuse a key")
}

func main() {
	flag.Parse()
	if workload != "entries" && workload != "scenarios" {
		log.Fatalf("unknown workload %q", workload)
	}
	log.Printf("Starting Benchmark: %s | Workers: %d | Duration: %s", workload, concurrency, duration)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go worker(&wg, start)
	}

	wg.Wait()
	printResults(time.Since(start))
}

func worker(wg *sync.WaitGroup, start time.Time) {
	defer wg.Done()
	client := &http.Client{Timeout: 5 * time.Second}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastKey string
	var lastBody []byte

	for time.Since(start) < duration {
		var req *http.Request
		if workload == "scenarios" {
			key, body := uuid.NewString(), mustJSON(models.ScenarioRequest{Name: "bench", Facts: randomFacts(rng)})
			if lastKey != "" && rng.Float64() < replayRate {
				key, body = lastKey, lastBody
			}
			lastKey, lastBody = key, body

			req, _ = http.NewRequest("POST", targetURL+"/api/v1/scenarios", bytes.NewReader(body))
			req.Header.Set("Idempotency-Key", key)
		} else {
			req, _ = http.NewRequest("POST", targetURL+"/api/v1/entries", bytes.NewReader(mustJSON(randomFacts(rng))))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			atomic.AddUint64(&failOther, 1)
			continue
		}

		atomic.AddUint64(&totalRequests, 1)
		switch resp.StatusCode {
		case 200:
			atomic.AddUint64(&success200, 1)
		case 201:
			atomic.AddUint64(&success201, 1)
		case 400:
			atomic.AddUint64(&fail400, 1)
		case 409:
			atomic.AddUint64(&fail409, 1)
		case 422:
			atomic.AddUint64(&fail422, 1)
		default:
			atomic.AddUint64(&failOther, 1)
		}
		resp.Body.Close()
	}
}

// randomFacts draws a fact set across every method, basis and timing.
func randomFacts(rng *rand.Rand) *models.FactsRequest {
	methods := []string{"cash", "accrual"}
	reporting := []string{"", "cash", "accrual"}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	date := func() string { return base.AddDate(0, 0, rng.Intn(60)).Format("2006-01-02") }
	amount := func() int64 { return int64(rng.Intn(1000)+1) * 110 }

	f := &models.FactsRequest{
		AccountingMethod: methods[rng.Intn(len(methods))],
		GSTReporting:     &models.GSTReporting{},
		Deposit:          &models.Deposit{},
		Payment:          &models.Payment{},
		Sales:            &models.Sales{SalesAmount: amount(), SalesDate: date()},
		Refund:           &models.Refund{},
	}
	if rng.Intn(2) == 0 {
		f.GSTReporting.GSTRegistered = true
		f.GSTReporting.GSTReportingMethod = reporting[1+rng.Intn(2)]
	}
	if rng.Intn(2) == 0 {
		f.Deposit = &models.Deposit{ReceivedDeposit: true, DepositReceivedAmount: amount() / 10, DepositReceivedDate: date()}
	}
	if rng.Intn(2) == 0 {
		f.Payment = &models.Payment{ReceivedPayment: true, PaymentReceivedAmount: amount(), PaymentReceivedDate: date()}
	}
	if rng.Intn(10) == 0 {
		f.Refund = &models.Refund{Refunded: true, RefundAmount: amount(), RefundDate: date()}
	}
	return f
}

func mustJSON(v interface{}) []byte {
	body, err := json.Marshal(v)
	if err != nil {
		log.Fatal(err)
	}
	return body
}

func printResults(d time.Duration) {
	total := atomic.LoadUint64(&totalRequests)

	results := map[string]interface{}{
		"workload":       workload,
		"duration_sec":   d.Seconds(),
		"total_requests": total,
		"throughput_tps": float64(total) / d.Seconds(),
		"ok":             atomic.LoadUint64(&success200),
		"created":        atomic.LoadUint64(&success201),
		"invalid":        atomic.LoadUint64(&fail400),
		"conflict":       atomic.LoadUint64(&fail409),
		"inconsistent":   atomic.LoadUint64(&fail422),
		"errors":         atomic.LoadUint64(&failOther),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)

	filename := fmt.Sprintf("results_%s.json", workload)
	file, err := os.Create(filename)
	if err != nil {
		log.Printf("could not save results: %v", err)
		return
	}
	defer file.Close()
	json.NewEncoder(file).Encode(results)
}
