// Copyright 2026 Quantabase
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/quantabase/fingraph/core"
)

const rootfiParserVersion = "2.0"

// RootfiAdapter parses flat multi-period Rootfi API exports. Each record in
// the document's data array yields a fixed entity skeleton: one company, one
// entity per array item across the five financial arrays (with one child
// entity per nested line item), one financial summary, and one period.
// Company and period are emitted even when every array is empty.
type RootfiAdapter struct{}

var _ Adapter = (*RootfiAdapter)(nil)

type rootfiDocument struct {
	Data *[]rootfiRecord `json:"data"`
}

type rootfiRecord struct {
	RootfiID             int64        `json:"rootfi_id"`
	RootfiCompanyID      int64        `json:"rootfi_company_id"`
	PlatformID           string       `json:"platform_id"`
	PeriodStart          string       `json:"period_start"`
	PeriodEnd            string       `json:"period_end"`
	GrossProfit          float64      `json:"gross_profit"`
	OperatingProfit      float64      `json:"operating_profit"`
	NetProfit            float64      `json:"net_profit"`
	Revenue              []rootfiItem `json:"revenue"`
	OperatingExpenses    []rootfiItem `json:"operating_expenses"`
	CostOfGoodsSold      []rootfiItem `json:"cost_of_goods_sold"`
	NonOperatingRevenue  []rootfiItem `json:"non_operating_revenue"`
	NonOperatingExpenses []rootfiItem `json:"non_operating_expenses"`
}

type rootfiItem struct {
	Name      string       `json:"name"`
	Value     float64      `json:"value"`
	AccountID string       `json:"account_id"`
	LineItems []rootfiItem `json:"line_items"`
}

// rootfiArray describes how one of the five financial arrays maps onto
// extraction records.
type rootfiArray struct {
	entityType  string
	defaultName string
	confidence  float64
	items       func(*rootfiRecord) []rootfiItem
	properties  func(*rootfiRecord, *rootfiItem) map[string]string
}

var rootfiArrays = []rootfiArray{
	{
		entityType:  "revenue_stream",
		defaultName: "Unknown Revenue",
		confidence:  0.95,
		items:       func(r *rootfiRecord) []rootfiItem { return r.Revenue },
		properties: func(r *rootfiRecord, item *rootfiItem) map[string]string {
			return map[string]string{"revenue_type": "business_revenue"}
		},
	},
	{
		entityType:  "expense_category",
		defaultName: "Unknown Expense",
		confidence:  0.95,
		items:       func(r *rootfiRecord) []rootfiItem { return r.OperatingExpenses },
		properties: func(r *rootfiRecord, item *rootfiItem) map[string]string {
			return map[string]string{"expense_type": "operating_expense"}
		},
	},
	{
		entityType:  "cost_of_goods_sold",
		defaultName: "Unknown COGS",
		confidence:  0.9,
		items:       func(r *rootfiRecord) []rootfiItem { return r.CostOfGoodsSold },
	},
	{
		entityType:  "non_operating_revenue",
		defaultName: "Unknown Non-Op Revenue",
		confidence:  0.9,
		items:       func(r *rootfiRecord) []rootfiItem { return r.NonOperatingRevenue },
	},
	{
		entityType:  "non_operating_expense",
		defaultName: "Unknown Non-Op Expense",
		confidence:  0.9,
		items:       func(r *rootfiRecord) []rootfiItem { return r.NonOperatingExpenses },
	},
}

// Format returns the declared format this adapter handles.
func (a *RootfiAdapter) Format() string {
	return FormatRootfi
}

// Parse converts a Rootfi export into extraction records, one skeleton per
// period record in document order.
func (a *RootfiAdapter) Parse(raw []byte, documentID string) ([]*core.ExtractionRecord, *core.ParseMetadata, error) {
	documentID = resolveDocumentID(raw, documentID)

	var doc rootfiDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, &core.FormatError{
			DocumentID: documentID,
			Format:     FormatRootfi,
			Reason:     "document is not valid JSON",
			Err:        err,
		}
	}
	if doc.Data == nil {
		return nil, nil, &core.FormatError{
			DocumentID: documentID,
			Format:     FormatRootfi,
			Reason:     "missing required data root",
		}
	}

	state := &rootfiParseState{}
	var records []*core.ExtractionRecord
	for i := range *doc.Data {
		records = append(records, state.parseRecord(&(*doc.Data)[i])...)
	}

	meta := newParseMetadata(FormatRootfi, rootfiParserVersion, documentID, raw, records, state.defaulted)
	return records, meta, nil
}

type rootfiParseState struct {
	defaulted int
}

func (s *rootfiParseState) parseRecord(record *rootfiRecord) []*core.ExtractionRecord {
	records := []*core.ExtractionRecord{s.companyRecord(record)}

	for _, array := range rootfiArrays {
		for _, item := range array.items(record) {
			parent := s.itemRecord(record, &array, item)
			records = append(records, parent)

			for _, line := range item.LineItems {
				records = append(records, s.lineItemRecord(record, &array, parent.Name, line))
			}
		}
	}

	records = append(records, s.summaryRecord(record), s.periodRecord(record))
	return records
}

func (s *rootfiParseState) companyRecord(record *rootfiRecord) *core.ExtractionRecord {
	return &core.ExtractionRecord{
		EntityType:  "company",
		Name:        fmt.Sprintf("Rootfi Company %d", record.RootfiCompanyID),
		Currency:    "USD",
		PeriodStart: parseDate(record.PeriodStart),
		PeriodEnd:   parseDate(record.PeriodEnd),
		Properties: map[string]string{
			"company_type":      "api_integrated",
			"financial_system":  "Rootfi API",
			"rootfi_company_id": strconv.FormatInt(record.RootfiCompanyID, 10),
			"platform_id":       record.PlatformID,
			"gross_profit":      formatAmount(record.GrossProfit),
			"rootfi_id":         strconv.FormatInt(record.RootfiID, 10),
		},
		Confidence: 0.95,
	}
}

func (s *rootfiParseState) itemRecord(record *rootfiRecord, array *rootfiArray, item rootfiItem) *core.ExtractionRecord {
	name := item.Name
	if name == "" {
		name = array.defaultName
		s.defaulted++
	}

	properties := map[string]string{
		"line_items_count": strconv.Itoa(len(item.LineItems)),
		"platform_id":      record.PlatformID,
		"rootfi_id":        strconv.FormatInt(record.RootfiID, 10),
	}
	if array.properties != nil {
		for k, v := range array.properties(record, &item) {
			properties[k] = v
		}
	}

	return &core.ExtractionRecord{
		EntityType:  array.entityType,
		Name:        name,
		AccountID:   item.AccountID,
		Amount:      item.Value,
		HasAmount:   true,
		Currency:    "USD",
		PeriodStart: parseDate(record.PeriodStart),
		PeriodEnd:   parseDate(record.PeriodEnd),
		Properties:  properties,
		Confidence:  array.confidence,
	}
}

func (s *rootfiParseState) lineItemRecord(record *rootfiRecord, array *rootfiArray, parentName string, line rootfiItem) *core.ExtractionRecord {
	name := line.Name
	if name == "" {
		name = "Unknown Line Item"
		s.defaulted++
	}

	return &core.ExtractionRecord{
		EntityType:  array.entityType + "_line_item",
		Name:        name,
		AccountID:   line.AccountID,
		Amount:      line.Value,
		HasAmount:   true,
		Currency:    "USD",
		PeriodStart: parseDate(record.PeriodStart),
		PeriodEnd:   parseDate(record.PeriodEnd),
		ParentName:  parentName,
		Properties: map[string]string{
			"parent_category": parentName,
		},
		Confidence: 0.85,
	}
}

// summaryRecord recomputes totals from the arrays. The source-supplied
// gross/operating/net profit aggregates are carried alongside without
// cross-validation.
func (s *rootfiParseState) summaryRecord(record *rootfiRecord) *core.ExtractionRecord {
	return &core.ExtractionRecord{
		EntityType:  "financial_summary",
		Name:        fmt.Sprintf("Financial Summary %s to %s", record.PeriodStart, record.PeriodEnd),
		Currency:    "USD",
		PeriodStart: parseDate(record.PeriodStart),
		PeriodEnd:   parseDate(record.PeriodEnd),
		Properties: map[string]string{
			"summary_type":             "monthly_summary",
			"gross_profit":             formatAmount(record.GrossProfit),
			"operating_profit":         formatAmount(record.OperatingProfit),
			"net_profit":               formatAmount(record.NetProfit),
			"total_revenue":            formatAmount(sumItems(record.Revenue)),
			"total_operating_expenses": formatAmount(sumItems(record.OperatingExpenses)),
			"cost_of_goods_sold":       formatAmount(sumItems(record.CostOfGoodsSold)),
			"platform_id":              record.PlatformID,
			"rootfi_id":                strconv.FormatInt(record.RootfiID, 10),
		},
		Confidence: 0.95,
	}
}

func (s *rootfiParseState) periodRecord(record *rootfiRecord) *core.ExtractionRecord {
	return &core.ExtractionRecord{
		EntityType:  "financial_period",
		Name:        fmt.Sprintf("Period %s to %s", record.PeriodStart, record.PeriodEnd),
		Currency:    "USD",
		PeriodStart: parseDate(record.PeriodStart),
		PeriodEnd:   parseDate(record.PeriodEnd),
		Properties: map[string]string{
			"period_type": "monthly",
			"platform_id": record.PlatformID,
			"company_id":  strconv.FormatInt(record.RootfiCompanyID, 10),
			"rootfi_id":   strconv.FormatInt(record.RootfiID, 10),
		},
		Confidence: 1.0,
	}
}

func sumItems(items []rootfiItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Value
	}
	return total
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
