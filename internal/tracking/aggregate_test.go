package tracking

import (
	"testing"

	"painel-conto/internal/models"
)

func testLeads() []*models.Lead {
	return []*models.Lead{
		{Stage: models.StageWon, Value: 3000},
		{Stage: models.StageWon, Value: 2000},
		{Stage: models.StageProposal, Value: 9000},
		{Stage: models.StageLost, Value: 500},
	}
}

func testClients() []*models.Client {
	return []*models.Client{
		{Status: models.ClientActive, MonthlyValue: 1500},
		{Status: models.ClientActive, MonthlyValue: 800},
		{Status: models.ClientChurn, MonthlyValue: 5000},
		{Status: models.ClientInactive, MonthlyValue: 300},
	}
}

func TestAggregateCRMFinancial(t *testing.T) {
	got := AggregateCommercialValue([]string{"crm"}, models.ValueFinancial, testLeads(), testClients())
	if got != 5000 {
		t.Errorf("expected 5000 from won leads, got %v", got)
	}
}

func TestAggregateCRMQuantity(t *testing.T) {
	got := AggregateCommercialValue([]string{"crm"}, models.ValueQuantity, testLeads(), testClients())
	if got != 2 {
		t.Errorf("expected 2 won leads, got %v", got)
	}
}

func TestAggregateClientsFinancial(t *testing.T) {
	got := AggregateCommercialValue([]string{"clients"}, models.ValueFinancial, testLeads(), testClients())
	if got != 2300 {
		t.Errorf("expected 2300 MRR from active clients, got %v", got)
	}
}

func TestAggregateAdditivity(t *testing.T) {
	leads, clients := testLeads(), testClients()
	for _, vt := range []models.ObjectiveValueType{models.ValueFinancial, models.ValueQuantity} {
		both := AggregateCommercialValue([]string{"crm", "clients"}, vt, leads, clients)
		crm := AggregateCommercialValue([]string{"crm"}, vt, leads, clients)
		cl := AggregateCommercialValue([]string{"clients"}, vt, leads, clients)
		if both != crm+cl {
			t.Errorf("%s: combined %v != crm %v + clients %v", vt, both, crm, cl)
		}
	}
}

func TestAggregatePercentageIsNoop(t *testing.T) {
	got := AggregateCommercialValue([]string{"crm", "clients"}, models.ValuePercentage, testLeads(), testClients())
	if got != 0 {
		t.Errorf("percentage aggregation must contribute nothing, got %v", got)
	}
}

func TestAggregateEmptySources(t *testing.T) {
	got := AggregateCommercialValue(nil, models.ValueFinancial, testLeads(), testClients())
	if got != 0 {
		t.Errorf("no sources: expected 0, got %v", got)
	}
}
