package service

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// ExportHeader is the header row of the transaction CSV export.
var ExportHeader = []string{"Date", "Type", "Amount", "Category", "Description"}

// WriteTransactionsCSV serialises rows in the order given.
func WriteTransactionsCSV(w io.Writer, rows []entity.TransactionWithCategory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		t := row.Transaction
		categoryName := ""
		if row.Category != nil {
			categoryName = row.Category.Name
		}

		record := []string{
			t.Date.Format(valueobject.DateLayout),
			string(t.Type),
			t.Amount.StringFixed(MoneyScale),
			categoryName,
			t.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
