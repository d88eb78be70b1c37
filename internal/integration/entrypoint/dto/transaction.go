package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/application/usecase/transaction"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount accepts a JSON number or string; Date defaults to today.
type CreateTransactionRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=Income Expense"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=500"`
	Date        *string         `json:"date,omitempty"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	CategoryID  *string          `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty" binding:"omitempty,oneof=Income Expense"`
	Description *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	Date        *string          `json:"date,omitempty"`
	ReceiptURL  *string          `json:"receipt_url,omitempty"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	UserID      string                       `json:"user_id"`
	CategoryID  string                       `json:"category_id"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	Amount      string                       `json:"amount"`
	Type        string                       `json:"type"`
	Description string                       `json:"description"`
	Date        string                       `json:"date"`
	ReceiptURL  string                       `json:"receipt_url,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// CreateTransactionResponse wraps the new transaction with the resulting balance.
type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     string              `json:"balance"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// TransactionSummaryResponse represents the balance and current month totals.
type TransactionSummaryResponse struct {
	Balance    string                    `json:"balance"`
	Month      TransactionTotalsResponse `json:"month"`
	MonthStart string                    `json:"month_start"`
	MonthEnd   string                    `json:"month_end"`
}

// MonthlyTotalsResponse represents one month of a yearly summary.
type MonthlyTotalsResponse struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	TransactionTotalsResponse
}

// CategoryAmountResponse represents a per-category total.
type CategoryAmountResponse struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Total      string `json:"total"`
}

// MonthlySummaryResponse represents the yearly summary with the expense breakdown.
type MonthlySummaryResponse struct {
	Year             int                      `json:"year"`
	Months           []MonthlyTotalsResponse  `json:"months"`
	ExpenseBreakdown []CategoryAmountResponse `json:"expense_breakdown"`
	BreakdownStart   string                   `json:"breakdown_start"`
	BreakdownEnd     string                   `json:"breakdown_end"`
}

// ToTransactionResponse converts a TransactionWithCategory to a TransactionResponse DTO.
func ToTransactionResponse(row *entity.TransactionWithCategory) TransactionResponse {
	txn := row.Transaction
	response := TransactionResponse{
		ID:          txn.ID.String(),
		UserID:      txn.UserID.String(),
		CategoryID:  txn.CategoryID.String(),
		Amount:      txn.Amount.StringFixed(2),
		Type:        string(txn.Type),
		Description: txn.Description,
		Date:        txn.Date.Format(valueobject.DateLayout),
		ReceiptURL:  txn.ReceiptURL,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}

	if row.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    row.Category.ID.String(),
			Name:  row.Category.Name,
			Color: row.Category.Color,
			Icon:  row.Category.Icon,
		}
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
			HasNext:    output.Pagination.HasNext,
			HasPrev:    output.Pagination.HasPrev,
		},
	}
}

// ToTotalsResponse converts ledger totals to their API form.
func ToTotalsResponse(totals entity.TransactionTotals) TransactionTotalsResponse {
	return TransactionTotalsResponse{
		IncomeTotal:  totals.IncomeTotal.StringFixed(2),
		ExpenseTotal: totals.ExpenseTotal.StringFixed(2),
		NetTotal:     totals.NetTotal.StringFixed(2),
	}
}

// ToTransactionSummaryResponse converts a GetSummaryOutput to its API form.
func ToTransactionSummaryResponse(output *transaction.GetSummaryOutput) TransactionSummaryResponse {
	return TransactionSummaryResponse{
		Balance:    output.Balance.StringFixed(2),
		Month:      ToTotalsResponse(output.MonthTotals),
		MonthStart: output.MonthStart.Format(valueobject.DateLayout),
		MonthEnd:   output.MonthEnd.Format(valueobject.DateLayout),
	}
}

// ToCategoryAmountResponses converts per-category totals to their API form.
func ToCategoryAmountResponses(amounts []transaction.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, len(amounts))
	for i, a := range amounts {
		out[i] = CategoryAmountResponse{
			CategoryID: a.Category.ID.String(),
			Name:       a.Category.Name,
			Color:      a.Category.Color,
			Total:      a.Total.StringFixed(2),
		}
	}
	return out
}

// ToMonthlySummaryResponse converts a GetMonthlySummaryOutput to its API form.
func ToMonthlySummaryResponse(output *transaction.GetMonthlySummaryOutput) MonthlySummaryResponse {
	months := make([]MonthlyTotalsResponse, len(output.Months))
	for i, m := range output.Months {
		months[i] = MonthlyTotalsResponse{
			Month:                     int(m.Month),
			Name:                      m.Month.String(),
			TransactionTotalsResponse: ToTotalsResponse(m.Totals),
		}
	}

	return MonthlySummaryResponse{
		Year:             output.Year,
		Months:           months,
		ExpenseBreakdown: ToCategoryAmountResponses(output.ExpenseBreakdown),
		BreakdownStart:   output.BreakdownStart.Format(valueobject.DateLayout),
		BreakdownEnd:     output.BreakdownEnd.Format(valueobject.DateLayout),
	}
}
