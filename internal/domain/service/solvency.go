package service

import (
	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
)

// MoneyScale is the number of fractional digits carried by amounts.
const MoneyScale = 2

// CanAfford reports whether an expense of proposed fits in currentBalance.
// The boundary is inclusive.
func CanAfford(proposed, currentBalance decimal.Decimal) bool {
	return proposed.LessThanOrEqual(currentBalance)
}

// CheckSolvency declines an expense that exceeds the balance.
// Income is never checked.
func CheckSolvency(txnType entity.TransactionType, amount, currentBalance decimal.Decimal) error {
	if txnType != entity.TransactionTypeExpense {
		return nil
	}
	if CanAfford(amount, currentBalance) {
		return nil
	}
	return domainerror.NewInsufficientFundsError(currentBalance)
}

// ValidateAmount rejects amounts that are not positive or carry more than two
// fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must have at most two decimal places",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}
