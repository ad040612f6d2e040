package extract

import "github.com/quantabase/fingraph/core"

// Completeness weights for the batch quality score.
const (
	qualityAmountWeight   = 0.3
	qualityCurrencyWeight = 0.2
	qualityPeriodWeight   = 0.3
	qualityNameWeight     = 0.2
)

// ScoreBatch rates a parsed batch for completeness. Each record contributes
// a weighted sum over four checks (amount, currency, both period bounds,
// name); the batch score is the mean over all records. An empty batch
// scores 0.0. The result always lies in [0, 1].
func ScoreBatch(records []*core.ExtractionRecord) float64 {
	if len(records) == 0 {
		return 0.0
	}

	var total float64
	for _, record := range records {
		if record.HasAmount {
			total += qualityAmountWeight
		}
		if record.Currency != "" {
			total += qualityCurrencyWeight
		}
		if !record.PeriodStart.IsZero() && !record.PeriodEnd.IsZero() {
			total += qualityPeriodWeight
		}
		if record.Name != "" {
			total += qualityNameWeight
		}
	}

	return total / float64(len(records))
}
