package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/asaidimu/go-datagrid/config"
	"github.com/asaidimu/go-datagrid/core/table"
	"github.com/asaidimu/go-datagrid/loader"
	"github.com/asaidimu/go-datagrid/render"
)

const ordersSchemaSQL = `
	CREATE TABLE orders (
		date     TEXT NOT NULL,
		customer TEXT NOT NULL,
		total    REAL NOT NULL
	)`

var seedOrders = [][]any{
	{"2024-01-01", "Ann", 100.0},
	{"2024-02-01", "Bob", 50.0},
	{"2024-02-14", "Annabel", 75.5},
	{"2024-03-03", "Cal", 210.0},
	{"2024-03-21", "Bob", 35.0},
	{"2024-04-02", "Dana", 120.0},
	{"2024-04-18", "Ann", 64.5},
	{"2024-05-05", "Eve", 99.99},
	{"2024-05-30", "Cal", 12.0},
	{"2024-06-11", "Dana", 180.0},
	{"2024-06-29", "Eve", 48.0},
	{"2024-07-04", "Ann", 300.0},
}

func main() {
	ctx := context.Background()

	// --- Dataset: seed an in-memory SQLite table and load it once ---
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, ordersSchemaSQL); err != nil {
		log.Fatalf("Failed to create orders table: %v", err)
	}
	for _, row := range seedOrders {
		if _, err := db.ExecContext(ctx, "INSERT INTO orders (date, customer, total) VALUES (?, ?, ?)", row...); err != nil {
			log.Fatalf("Failed to seed orders: %v", err)
		}
	}

	dataset, err := loader.FromSQL(ctx, db, nil, "SELECT date, customer, total FROM orders")
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	fmt.Printf("Loaded %d orders.\n\n", len(dataset))

	// --- Configuration: datagrid.yaml in the working directory, if any ---
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if len(cfg.SearchFields) == 0 {
		cfg.SearchFields = []string{"date", "customer"}
	}

	// --- Pipeline over the dataset ---
	view := table.NewViewBuilder().RowsPerPage(cfg.RowsPerPage).Build()
	grid, err := table.New(dataset, view, table.Options{
		QueryField:    cfg.QueryField,
		SearchFields:  cfg.SearchFields,
		CaseSensitive: cfg.CaseSensitive,
		WindowWidth:   cfg.WindowWidth,
	})
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	grid.RegisterSubscription(table.RegisterSubscriptionOptions{
		Event: table.PageChanged,
		Label: "page-logger",
		Callback: func(ctx context.Context, event table.TableEvent) error {
			fmt.Printf("-- page changed to %d\n", event.Window.Page)
			return nil
		},
	})

	out := render.New(os.Stdout, []string{"date", "customer", "total"})

	show := func(title string, action table.Action) {
		fmt.Println(title)
		result, err := grid.Render(action)
		if err != nil {
			log.Fatalf("Render failed: %v", err)
		}
		if err := out.Render(result); err != nil {
			log.Fatalf("Output failed: %v", err)
		}
		fmt.Println()
	}

	// --- A short interaction session ---
	show("Initial view:", table.Action{})

	grid.SetView(table.NewViewBuilder().RowsPerPage(cfg.RowsPerPage).Search("ann").Build())
	show(`Search "ann":`, table.Action{})

	grid.SetView(table.NewViewBuilder().RowsPerPage(cfg.RowsPerPage).Range("total", 50, 150).Build())
	show("Orders between 50 and 150:", table.Action{})

	show("Sorted by total (ascending):", table.Action{Kind: table.ActionSort, Field: "total"})
	show("Sorted by total (descending):", table.Action{Kind: table.ActionSort, Field: "total"})
	show("Next page:", table.Action{Kind: table.ActionPageNext})
	show("Range cleared for this render:", table.Action{Kind: table.ActionClear, Field: "total"})
}
