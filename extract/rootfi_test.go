package extract

import (
	"testing"

	"github.com/quantabase/fingraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootfiRevenueRecord(t *testing.T) {
	doc := `{
		"data": [{
			"rootfi_id": 17,
			"rootfi_company_id": 42,
			"platform_id": "qb-1",
			"period_start": "2024-01-01",
			"period_end": "2024-01-31",
			"revenue": [{"name": "Service revenue", "value": 500}],
			"operating_expenses": []
		}]
	}`

	records, meta, err := Parse([]byte(doc), FormatRootfi, "doc-1")
	require.NoError(t, err)

	// company + revenue + summary + period
	require.Len(t, records, 4)

	company := records[0]
	assert.Equal(t, "company", company.EntityType)
	assert.Equal(t, "Rootfi Company 42", company.Name)
	assert.Equal(t, "Rootfi API", company.Properties["financial_system"])

	revenue := records[1]
	assert.Equal(t, "revenue_stream", revenue.EntityType)
	assert.Equal(t, "Service revenue", revenue.Name)
	assert.Equal(t, 500.0, revenue.Amount)
	assert.True(t, revenue.HasAmount)
	assert.Equal(t, 0.95, revenue.Confidence)
	assert.False(t, revenue.PeriodStart.IsZero())

	summary := records[2]
	assert.Equal(t, "financial_summary", summary.EntityType)
	assert.Equal(t, "500", summary.Properties["total_revenue"])
	assert.Equal(t, "0", summary.Properties["total_operating_expenses"])

	period := records[3]
	assert.Equal(t, "financial_period", period.EntityType)
	assert.Equal(t, 1.0, period.Confidence)

	assert.Equal(t, 4, meta.RecordsTotal)
	assert.Equal(t, []string{"company", "revenue_stream", "financial_summary", "financial_period"}, meta.EntityTypes)
}

func TestRootfiEmptyRecordStillEmitsSkeleton(t *testing.T) {
	doc := `{
		"data": [{
			"rootfi_id": 1,
			"rootfi_company_id": 9,
			"period_start": "2024-02-01",
			"period_end": "2024-02-29"
		}]
	}`

	records, _, err := Parse([]byte(doc), FormatRootfi, "doc-1")
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "company", records[0].EntityType)
	assert.Equal(t, "financial_summary", records[1].EntityType)
	assert.Equal(t, "financial_period", records[2].EntityType)
}

func TestRootfiLineItemChildren(t *testing.T) {
	doc := `{
		"data": [{
			"rootfi_id": 3,
			"rootfi_company_id": 7,
			"period_start": "2024-01-01",
			"period_end": "2024-01-31",
			"cost_of_goods_sold": [{
				"name": "Materials",
				"value": 300,
				"line_items": [
					{"name": "Steel", "value": 200, "account_id": "a-1"},
					{"name": "Copper", "value": 100, "account_id": "a-2"}
				]
			}]
		}]
	}`

	records, _, err := Parse([]byte(doc), FormatRootfi, "doc-1")
	require.NoError(t, err)

	// company + cogs parent + 2 line items + summary + period
	require.Len(t, records, 6)

	parent := records[1]
	assert.Equal(t, "cost_of_goods_sold", parent.EntityType)
	assert.Equal(t, "2", parent.Properties["line_items_count"])

	steel := records[2]
	assert.Equal(t, "cost_of_goods_sold_line_item", steel.EntityType)
	assert.Equal(t, "Steel", steel.Name)
	assert.Equal(t, 200.0, steel.Amount)
	assert.Equal(t, "a-1", steel.AccountID)
	assert.Equal(t, "Materials", steel.ParentName)
	assert.Equal(t, 0.85, steel.Confidence)

	assert.Equal(t, "Copper", records[3].Name)
}

func TestRootfiMultipleRecords(t *testing.T) {
	doc := `{
		"data": [
			{"rootfi_id": 1, "rootfi_company_id": 5, "period_start": "2024-01-01", "period_end": "2024-01-31"},
			{"rootfi_id": 2, "rootfi_company_id": 5, "period_start": "2024-02-01", "period_end": "2024-02-29"}
		]
	}`

	records, _, err := Parse([]byte(doc), FormatRootfi, "doc-1")
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, "Period 2024-01-01 to 2024-01-31", records[2].Name)
	assert.Equal(t, "Period 2024-02-01 to 2024-02-29", records[5].Name)
}

func TestRootfiMissingNameDefaults(t *testing.T) {
	doc := `{
		"data": [{
			"rootfi_id": 1,
			"rootfi_company_id": 5,
			"period_start": "2024-01-01",
			"period_end": "2024-01-31",
			"revenue": [{"value": 250}]
		}]
	}`

	records, meta, err := Parse([]byte(doc), FormatRootfi, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Revenue", records[1].Name)
	assert.Equal(t, 1, meta.FieldsDefaulted)
}

func TestRootfiMissingDataRootFails(t *testing.T) {
	_, _, err := Parse([]byte(`{"records": []}`), FormatRootfi, "doc-1")
	require.Error(t, err)
	assert.True(t, core.IsFormatError(err))
}
