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
	"strconv"
	"strings"

	"github.com/quantabase/fingraph/core"
)

const quickbooksParserVersion = "1.0"

// QuickBooksAdapter parses QuickBooks-style hierarchical profit-and-loss
// reports. The report is a tree of group headers whose rows may themselves
// contain sub-rows; the adapter walks it by recursive descent, propagating
// the ancestor category name to infer each account's entity subtype.
type QuickBooksAdapter struct{}

var _ Adapter = (*QuickBooksAdapter)(nil)

// Typed intermediate representation of the report, validated at the parse
// boundary. Downstream code never touches open maps.
type qbReport struct {
	Data *qbReportData `json:"data"`
}

type qbReportData struct {
	Header  qbHeader  `json:"Header"`
	Columns qbColumns `json:"Columns"`
	Rows    qbRows    `json:"Rows"`
}

type qbHeader struct {
	ReportName  string     `json:"ReportName"`
	ReportBasis string     `json:"ReportBasis"`
	StartPeriod string     `json:"StartPeriod"`
	EndPeriod   string     `json:"EndPeriod"`
	Currency    string     `json:"Currency"`
	Option      []qbOption `json:"Option"`
}

type qbOption struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type qbColumns struct {
	Column []qbColumn `json:"Column"`
}

type qbColumn struct {
	ColTitle string     `json:"ColTitle"`
	ColType  string     `json:"ColType"`
	MetaData []qbOption `json:"MetaData"`
}

type qbRows struct {
	Row []qbRow `json:"Row"`
}

type qbRow struct {
	Header  *qbRowHeader `json:"Header"`
	ColData []qbCell     `json:"ColData"`
	Rows    *qbRows      `json:"Rows"`
}

type qbRowHeader struct {
	ColData []qbCell `json:"ColData"`
}

type qbCell struct {
	Value string `json:"value"`
	ID    string `json:"id"`
}

// qbPeriod is one monetary column matched to its reporting period.
type qbPeriod struct {
	Key       string
	Title     string
	StartDate string
	EndDate   string
}

// Format returns the declared format this adapter handles.
func (a *QuickBooksAdapter) Format() string {
	return FormatQuickBooks
}

// Parse converts a QuickBooks report into extraction records: one company
// record from the report header, then one record per account group and per
// leaf account row, in document order.
func (a *QuickBooksAdapter) Parse(raw []byte, documentID string) ([]*core.ExtractionRecord, *core.ParseMetadata, error) {
	documentID = resolveDocumentID(raw, documentID)

	var report qbReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, nil, &core.FormatError{
			DocumentID: documentID,
			Format:     FormatQuickBooks,
			Reason:     "document is not valid JSON",
			Err:        err,
		}
	}
	if report.Data == nil {
		return nil, nil, &core.FormatError{
			DocumentID: documentID,
			Format:     FormatQuickBooks,
			Reason:     "missing required data root",
		}
	}

	state := &qbParseState{
		periods: extractTimePeriods(report.Data.Columns.Column),
	}

	records := []*core.ExtractionRecord{state.companyRecord(report.Data.Header)}
	records = append(records, state.parseRows(report.Data.Rows.Row, "")...)

	meta := newParseMetadata(FormatQuickBooks, quickbooksParserVersion, documentID, raw, records, state.defaulted)
	return records, meta, nil
}

// qbParseState carries the per-run period table and defaulted-field counter
// through the recursive descent.
type qbParseState struct {
	periods   []qbPeriod
	defaulted int
}

// extractTimePeriods matches each monetary column to its start/end date pair
// from the column metadata. Non-monetary columns (the account-name column in
// particular) are skipped.
func extractTimePeriods(columns []qbColumn) []qbPeriod {
	var periods []qbPeriod
	for _, col := range columns {
		if col.ColType != "Money" {
			continue
		}
		meta := make(map[string]string, len(col.MetaData))
		for _, item := range col.MetaData {
			meta[item.Name] = item.Value
		}
		start, okStart := meta["StartDate"]
		end, okEnd := meta["EndDate"]
		if !okStart || !okEnd {
			continue
		}
		key := meta["ColKey"]
		if key == "" {
			key = col.ColTitle
		}
		periods = append(periods, qbPeriod{
			Key:       key,
			Title:     col.ColTitle,
			StartDate: start,
			EndDate:   end,
		})
	}
	return periods
}

// companyRecord builds the reporting-entity record from the report header.
func (s *qbParseState) companyRecord(header qbHeader) *core.ExtractionRecord {
	currency := header.Currency
	if currency == "" {
		currency = "USD"
		s.defaulted++
	}
	standard := optionValue(header.Option, "AccountingStandard")
	if standard == "" {
		standard = "GAAP"
		s.defaulted++
	}
	basis := header.ReportBasis
	if basis == "" {
		basis = "Accrual"
		s.defaulted++
	}

	return &core.ExtractionRecord{
		EntityType:  "company",
		Name:        "QuickBooks Company",
		Currency:    currency,
		PeriodStart: parseDate(header.StartPeriod),
		PeriodEnd:   parseDate(header.EndPeriod),
		Properties: map[string]string{
			"company_type":        "reporting_entity",
			"financial_system":    "QuickBooks",
			"report_name":         header.ReportName,
			"report_basis":        basis,
			"accounting_standard": standard,
			"base_currency":       currency,
			"reporting_period":    header.StartPeriod + " to " + header.EndPeriod,
		},
		Confidence: 0.9,
	}
}

// parseRows walks one level of the row tree. A row with a header is a group:
// at the top level the group name becomes the category and the group itself
// emits nothing; below the top level the group emits an account record before
// descending. A row with column data is a leaf account.
func (s *qbParseState) parseRows(rows []qbRow, category string) []*core.ExtractionRecord {
	var records []*core.ExtractionRecord

	for _, row := range rows {
		switch {
		case row.Header != nil:
			name := cellValue(row.Header.ColData, 0)
			next := category
			if category == "" {
				next = name
			} else if record := s.accountRecord(name, row.Header.ColData, category); record != nil {
				records = append(records, record)
			}
			if row.Rows != nil {
				records = append(records, s.parseRows(row.Rows.Row, next)...)
			}

		case len(row.ColData) > 0:
			if record := s.accountRecord(cellValue(row.ColData, 0), row.ColData, category); record != nil {
				records = append(records, record)
			}
		}
	}

	return records
}

// accountRecord builds one account record from a row's cells. Aggregate rows
// (empty name or "Total") produce nil. The cells after the name column form a
// time series keyed by reporting period; unparsable cells default to 0.
func (s *qbParseState) accountRecord(name string, cells []qbCell, category string) *core.ExtractionRecord {
	if name == "" || name == "Total" {
		return nil
	}

	series := make(map[string]float64, len(s.periods))
	dataPoints := 0
	for i, period := range s.periods {
		if len(cells) <= i+1 {
			break
		}
		value, err := parseMoney(cells[i+1].Value)
		if err != nil {
			value = 0.0
			s.defaulted++
		}
		series[period.Key] = value
		if value != 0 {
			dataPoints++
		}
	}

	var total float64
	for _, v := range series {
		total += v
	}

	record := &core.ExtractionRecord{
		EntityType: accountEntityType(category),
		Name:       name,
		AccountID:  cellID(cells, 0),
		Amount:     total,
		HasAmount:  len(series) > 0,
		Currency:   "USD",
		TimeSeries: series,
		ParentName: category,
		Properties: map[string]string{
			"account_category": category,
			"total_amount":     strconv.FormatFloat(total, 'f', -1, 64),
			"data_points":      strconv.Itoa(dataPoints),
		},
		Confidence: 0.9,
	}
	return record
}

// accountEntityType infers the entity subtype from the ancestor category
// name by case-insensitive substring match.
func accountEntityType(category string) string {
	lower := strings.ToLower(category)
	switch {
	case strings.Contains(lower, "income"):
		return "revenue_account"
	case strings.Contains(lower, "expense"), strings.Contains(lower, "cost"):
		return "expense_account"
	default:
		return "financial_account"
	}
}

// parseMoney parses a monetary cell, tolerating thousands separators.
func parseMoney(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func optionValue(options []qbOption, name string) string {
	for _, option := range options {
		if option.Name == name {
			return option.Value
		}
	}
	return ""
}

func cellValue(cells []qbCell, index int) string {
	if len(cells) > index {
		return cells[index].Value
	}
	return ""
}

func cellID(cells []qbCell, index int) string {
	if len(cells) > index {
		return cells[index].ID
	}
	return ""
}
