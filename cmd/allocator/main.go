// cmd/allocator/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"github.com/deperkenne/InventoryManagements/internal/adjustment"
	"github.com/deperkenne/InventoryManagements/internal/allocation"
	"github.com/deperkenne/InventoryManagements/internal/cancellation"
	"github.com/deperkenne/InventoryManagements/internal/operator"
	"github.com/deperkenne/InventoryManagements/internal/orders"
	"github.com/deperkenne/InventoryManagements/internal/stock"
	"github.com/deperkenne/InventoryManagements/internal/telemetry"
	"github.com/deperkenne/InventoryManagements/pkg/eventlog"
)

func main() {
	ctx := context.Background()

	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		shutdown, err := telemetry.SetupTracing(ctx, "allocator", endpoint)
		if err != nil {
			log.Printf("tracing disabled: %v", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	var events eventlog.Log
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		db, err := sql.Open("postgres", dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		pgLog := eventlog.NewPostgresLog(db)
		if err := pgLog.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare event log schema: %v", err)
		}
		events = pgLog
	} else {
		events = eventlog.NewMemoryLog()
	}

	orderStore := orders.NewMemoryStore()
	ledger := stock.NewMemoryLedger()

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, orderStore, ledger); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Printf("seeded demo warehouse and orders")
	}

	guard, err := operator.NewGuard(getEnv("OPERATOR_PASSWORD", "dev_password_change_in_prod"))
	if err != nil {
		log.Fatalf("Failed to set up operator guard: %v", err)
	}

	cancelSvc := cancellation.NewService(events, ledger)
	allocSvc := allocation.NewService(orderStore, ledger, events, cancelSvc)
	adjustSvc := adjustment.NewService(ledger, orderStore, events, allocSvc)

	allocHandler := allocation.NewHandler(allocSvc, orderStore)
	cancelHandler := cancellation.NewHandler(cancelSvc)
	adjustHandler := adjustment.NewHandler(adjustSvc, guard)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Post("/allocation/process", allocHandler.HandleProcess)
	router.Post("/orders", allocHandler.HandleAddOrder)
	router.Post("/cancellation/cancel", cancelHandler.HandleCancel)
	router.Post("/adjustment/sku", adjustHandler.HandleAdjust)

	port := getEnv("PORT", "8080")
	fmt.Printf("Starting Allocator Service on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// seedDemoData loads the demo warehouse and three pending orders.
func seedDemoData(ctx context.Context, store *orders.MemoryStore, ledger *stock.MemoryLedger) error {
	skus := []stock.Sku{
		{ID: "skuId_01", ProductName: "COLA_L1", Location: "Shelf 1", Locked: false, Available: 100},
		{ID: "skuId_02", ProductName: "COLA_L1", Location: "Shelf 2", Locked: true, Available: 200},
		{ID: "skuId_03", ProductName: "FANTA_L1", Location: "Shelf 2", Locked: false, Available: 200},
		{ID: "skuId_04", ProductName: "WATER_L1", Location: "Shelf 3", Locked: false, Available: 60},
		{ID: "skuId_05", ProductName: "ORANGE_L1", Location: "Shelf 3", Locked: false, Available: 40},
		{ID: "skuId_06", ProductName: "ORANGE_L1", Location: "Shelf 3", Locked: true, Available: 40},
		{ID: "skuId_07", ProductName: "ORANGE_L1", Location: "Shelf 3", Locked: false, Available: 40},
		{ID: "skuId_08", ProductName: "ORANGE_L1", Location: "Shelf 4", Locked: false, Available: 40},
	}
	for _, sku := range skus {
		if err := ledger.Register(sku); err != nil {
			return err
		}
	}

	seed := []*orders.Order{
		orders.NewOrder("ORDER_001", time.Date(2025, 9, 10, 20, 40, 2, 0, time.UTC), true, orders.PriorityHigh,
			orders.NewLine("ORANGE_L1", 30),
			orders.NewLine("WATER_L1", 50),
		),
		orders.NewOrder("ORDER_002", time.Date(2025, 9, 10, 20, 40, 0, 0, time.UTC), true, orders.PriorityHigh,
			orders.NewLine("ORANGE_L1", 50),
			orders.NewLine("WATER_L1", 30),
		),
		orders.NewOrder("ORDER_003", time.Date(2025, 9, 10, 20, 40, 2, 0, time.UTC), true, orders.PriorityNormal,
			orders.NewLine("ORANGE_L1", 30),
			orders.NewLine("WATER_L1", 50),
		),
	}
	for _, order := range seed {
		if err := store.Add(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
