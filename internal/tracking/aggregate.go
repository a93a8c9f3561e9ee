package tracking

import "painel-conto/internal/models"

// AggregateCommercialValue derives the current value of a commercial
// objective from its declared data sources: won leads for "crm", active
// clients for "clients". Financial objectives sum monetary values, quantity
// objectives count records. Percentage objectives are not auto-aggregated and
// always yield 0. Input collections are not mutated.
func AggregateCommercialValue(sources []string, valueType models.ObjectiveValueType, leads []*models.Lead, clients []*models.Client) float64 {
	var value float64

	if containsSource(sources, models.SourceCRM) {
		for _, l := range leads {
			if l.Stage != models.StageWon {
				continue
			}
			switch valueType {
			case models.ValueFinancial:
				value += l.Value
			case models.ValueQuantity:
				value++
			}
		}
	}

	if containsSource(sources, models.SourceClients) {
		for _, c := range clients {
			if c.Status != models.ClientActive {
				continue
			}
			switch valueType {
			case models.ValueFinancial:
				value += c.MonthlyValue
			case models.ValueQuantity:
				value++
			}
		}
	}

	return value
}

func containsSource(sources []string, s models.DataSource) bool {
	for _, src := range sources {
		if src == string(s) {
			return true
		}
	}
	return false
}
