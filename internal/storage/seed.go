package storage

import "docuflow/internal/models"

func strPtr(s string) *string { return &s }

func bankStatementFields() []models.TemplateField {
	return []models.TemplateField{
		{Name: "accountNumber", Label: "Account Number", Type: "string"},
		{Name: "statementPeriod", Label: "Statement Period", Type: "string"},
		{Name: "transactions", Label: "Transactions", Type: "array", Fields: []models.TemplateField{
			{Name: "date", Label: "Date", Type: "date"},
			{Name: "description", Label: "Description", Type: "string"},
			{Name: "amount", Label: "Amount", Type: "number"},
		}},
	}
}

// seedTemplates installs the built-in bank statement templates. Runs once,
// from the constructor, before the store is shared.
func (s *MemStore) seedTemplates() {
	s.mu.Lock()
	defer s.mu.Unlock()

	banks := []struct {
		name string
		bank string
	}{
		{"Chase Bank Statement", "Chase"},
		{"Bank of America", "Bank of America"},
		{"Wells Fargo", "Wells Fargo"},
		{"Citibank", "Citibank"},
	}
	for _, b := range banks {
		s.createTemplateLocked(NewTemplate{
			Name:         b.name,
			Description:  strPtr("Template for " + b.bank + " statements"),
			DocumentType: "bank_statement",
			BankName:     strPtr(b.bank),
			Fields:       bankStatementFields(),
		})
	}
}
