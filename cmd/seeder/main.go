package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/punchamoorthee/revenueops/internal/config"
	"github.com/punchamoorthee/revenueops/internal/models"
	"github.com/punchamoorthee/revenueops/internal/store"
)

func facts(method string, registered bool, reporting string) models.FactsRequest {
	return models.FactsRequest{
		AccountingMethod: method,
		GSTReporting:     &models.GSTReporting{GSTRegistered: registered, GSTReportingMethod: reporting},
		Deposit:          &models.Deposit{},
		Payment:          &models.Payment{},
		Sales:            &models.Sales{},
		Refund:           &models.Refund{},
	}
}

// canonical returns the reference scenarios used to check the rules by hand.
func canonical() []models.ScenarioRequest {
	a := facts("cash", false, "")
	a.Deposit = &models.Deposit{ReceivedDeposit: true, DepositReceivedAmount: 100000, DepositReceivedDate: "2024-01-01"}

	b := facts("cash", true, "cash")
	b.Deposit = &models.Deposit{ReceivedDeposit: true, DepositReceivedAmount: 110000, DepositReceivedDate: "2024-01-01"}

	c := facts("accrual", true, "accrual")
	c.Sales = &models.Sales{SalesAmount: 100000, SalesDate: "2024-02-01"}

	d := facts("accrual", false, "")
	d.Payment = &models.Payment{ReceivedPayment: true, PaymentReceivedAmount: 120000, PaymentReceivedDate: "2024-01-10"}
	d.Sales = &models.Sales{SalesAmount: 100000, SalesDate: "2024-01-20"}

	e := facts("cash", true, "cash")
	e.Refund = &models.Refund{Refunded: true, RefundAmount: 55000, RefundDate: "2024-03-01"}

	return []models.ScenarioRequest{
		{Name: "A: cash deposit, not registered", Facts: &a},
		{Name: "B: cash deposit, GST registered", Facts: &b},
		{Name: "C: accrual sale on account, GST accrual", Facts: &c},
		{Name: "D: accrual payment before sale, over-receipt", Facts: &d},
		{Name: "E: refund, GST registered", Facts: &e},
	}
}

func main() {
	apiURL := flag.String("api", "", "seed through the HTTP API at this base URL instead of COPY")
	flag.Parse()

	scenarios := canonical()
	if *apiURL != "" {
		if err := seedViaAPI(*apiURL, scenarios); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireDB(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := store.NewStore(ctx, cfg.DBSource)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	log.Println("--- Seeding Database ---")

	var count int
	if err := db.Db.QueryRow(ctx, "SELECT COUNT(*) FROM scenarios").Scan(&count); err != nil {
		log.Fatal(err)
	}
	if count >= len(scenarios) {
		log.Printf("Database already has %d scenarios. Skipping.", count)
		return
	}

	// Bulk Insert using CopyFrom
	rows := make([][]interface{}, 0, len(scenarios))
	for _, sc := range scenarios {
		factsJSON, err := json.Marshal(sc.Facts)
		if err != nil {
			log.Fatal(err)
		}
		rows = append(rows, []interface{}{sc.Name, json.RawMessage(factsJSON), time.Now()})
	}

	copyCount, err := db.Db.CopyFrom(
		ctx,
		pgx.Identifier{"scenarios"},
		[]string{"name", "facts", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		log.Fatalf("Bulk insert failed: %v", err)
	}

	log.Printf("Successfully seeded %d scenarios.", copyCount)
}

func seedViaAPI(baseURL string, scenarios []models.ScenarioRequest) error {
	client := &http.Client{Timeout: 5 * time.Second}
	for _, sc := range scenarios {
		body, err := json.Marshal(sc)
		if err != nil {
			return err
		}
		req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/scenarios", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", uuid.NewString())

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("seeding %q: %w", sc.Name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("seeding %q: unexpected status %d", sc.Name, resp.StatusCode)
		}
		log.Printf("Seeded %q", sc.Name)
	}
	return nil
}
