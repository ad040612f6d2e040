package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	fingraph "github.com/quantabase/fingraph"
	"github.com/quantabase/fingraph/extract"
	"github.com/quantabase/fingraph/ingest"
)

// Small but structurally complete samples of each supported format, enough
// to exercise the full pipeline against a fresh database.
var sampleQuickBooks = []byte(`{
  "data": {
    "Header": {
      "ReportName": "ProfitAndLoss",
      "ReportBasis": "Accrual",
      "StartPeriod": "2024-01-01",
      "EndPeriod": "2024-03-31",
      "Currency": "USD"
    },
    "Columns": {
      "Column": [
        {"ColTitle": "", "ColType": "Account"},
        {"ColTitle": "Jan 2024", "ColType": "Money",
         "MetaData": [
           {"Name": "StartDate", "Value": "2024-01-01"},
           {"Name": "EndDate", "Value": "2024-01-31"}
         ]}
      ]
    },
    "Rows": {
      "Row": [
        {
          "Header": {"ColData": [{"value": "Income"}]},
          "type": "Section",
          "Rows": {
            "Row": [
              {"ColData": [{"value": "Sales", "id": "1"}, {"value": "12,500.00"}], "type": "Data"},
              {"ColData": [{"value": "Consulting", "id": "2"}, {"value": "4,100.00"}], "type": "Data"}
            ]
          }
        },
        {
          "Header": {"ColData": [{"value": "Expenses"}]},
          "type": "Section",
          "Rows": {
            "Row": [
              {"ColData": [{"value": "Rent", "id": "10"}, {"value": "2,000.00"}], "type": "Data"}
            ]
          }
        }
      ]
    }
  }
}`)

var sampleRootfi = []byte(`{
  "data": [
    {
      "rootfi_id": 101,
      "rootfi_company_id": 7,
      "platform_id": "2024-01-01_2024-01-31",
      "period_start": "2024-01-01",
      "period_end": "2024-01-31",
      "currency_id": "USD",
      "gross_profit": 14100,
      "operating_profit": 12100,
      "net_profit": 11900,
      "revenue": [
        {"name": "Subscription Revenue", "value": 11600, "account_id": "rev-1"},
        {"name": "Professional Services", "value": 2500, "account_id": "rev-2"}
      ],
      "operating_expenses": [
        {"name": "Payroll", "value": 1500, "account_id": "exp-1",
         "line_items": [
           {"name": "Engineering Salaries", "value": 1100, "account_id": "exp-1-1"},
           {"name": "Sales Salaries", "value": 400, "account_id": "exp-1-2"}
         ]}
      ],
      "cost_of_goods_sold": [
        {"name": "Hosting", "value": 500, "account_id": "cogs-1"}
      ],
      "non_operating_revenue": [],
      "non_operating_expenses": [
        {"name": "Interest", "value": 200, "account_id": "noe-1"}
      ]
    }
  ]
}`)

var (
	dbPath  = flag.String("db", "./fingraph_db", "path to the database directory")
	srcDir  = flag.String("src", "", "directory of report files to ingest instead of the built-in samples")
	format  = flag.String("format", extract.FormatRootfi, "format for files in -src")
	samples = []ingest.Document{
		{ID: "sample-quickbooks.json", Format: extract.FormatQuickBooks, Raw: sampleQuickBooks},
		{ID: "sample-rootfi.json", Format: extract.FormatRootfi, Raw: sampleRootfi},
	}
)

func main() {
	flag.Parse()

	db, err := fingraph.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()

	// Seed the default ontology first so the samples land on reviewed
	// classes instead of auto-generated pending ones where they overlap.
	if err := db.Registry().Seed(ctx); err != nil {
		panic(err)
	}

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	documents := samples
	if *srcDir != "" {
		documents, err = documentsFromDir(*srcDir, *format)
		if err != nil {
			panic(err)
		}
	}

	results := pipeline.IngestDocuments(ctx, documents)
	pipeline.Wait()

	for _, result := range results {
		if result.Failed() {
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", result.DocumentID, result.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "seeded %s: %d observations, %d new classes\n",
			result.DocumentID, len(result.Observations), result.ClassesCreated)
	}
}

// documentsFromDir loads every .json file in dir as a document of the given
// format.
func documentsFromDir(dir, format string) ([]ingest.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var documents []ingest.Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		documents = append(documents, ingest.Document{
			ID:     entry.Name(),
			Format: format,
			Raw:    raw,
		})
	}
	return documents, nil
}
