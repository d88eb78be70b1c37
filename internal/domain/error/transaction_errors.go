// Package error defines domain-specific errors for the Self Focus application.
package error

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the amount is not positive or has more than two decimals.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrCategoryNotOwnedByUser is returned when the category does not belong to the user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrInsufficientFunds is returned when an expense exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010003"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010004"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotOwned      TransactionErrorCode = "TXN-010006"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010007"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010008"

	// Ledger rule errors (02XXXX)
	ErrCodeInsufficientFunds TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
// Balance is only populated for ErrCodeInsufficientFunds.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
	Balance *decimal.Decimal
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInsufficientFundsError builds the declined-expense error with the balance embedded.
func NewInsufficientFundsError(balance decimal.Decimal) *TransactionError {
	b := balance
	return &TransactionError{
		Code:    ErrCodeInsufficientFunds,
		Message: fmt.Sprintf("insufficient funds, current balance: $%s", balance.StringFixed(2)),
		Balance: &b,
	}
}

// Is reports whether target is ErrInsufficientFunds for an insufficient funds error.
func (e *TransactionError) Is(target error) bool {
	return target == ErrInsufficientFunds && e.Code == ErrCodeInsufficientFunds
}
