// Package apperr defines the error vocabulary shared by the posting,
// aggregation and inference engines and the HTTP boundary that reports them.
package apperr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifies the class of a ledger error. Validation kinds are detected
// before any store mutation and are always safe to report to the caller.
type Kind string

const (
	KindInsufficientLines Kind = "insufficient_lines"
	KindInvalidLine       Kind = "invalid_line"
	KindUnbalanced        Kind = "unbalanced"
	KindInvalidReference  Kind = "invalid_reference"
	KindNoAmount          Kind = "no_amount"
	KindNoCategoryMatch   Kind = "no_category_match"
	KindNoPaymentAccount  Kind = "no_payment_account"
	KindStoreFailure      Kind = "store_failure"
	KindDuplicateCode     Kind = "duplicate_code"
)

// ClientError reports whether the kind is the caller's fault: the input must
// be corrected, retrying unchanged will not help.
func (k Kind) ClientError() bool {
	return k != KindStoreFailure
}

// Totals carries the computed debit/credit sums attached to an unbalanced
// error for user feedback.
type Totals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// Error is a ledger error with a machine-readable kind.
type Error struct {
	Kind    Kind
	Message string
	Totals  *Totals // set only for KindUnbalanced
	Err     error   // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Unbalanced builds an unbalanced-entry error carrying the offending totals.
func Unbalanced(debit, credit decimal.Decimal) *Error {
	return &Error{
		Kind:    KindUnbalanced,
		Message: fmt.Sprintf("entry is unbalanced: total debit %s, total credit %s", debit, credit),
		Totals:  &Totals{Debit: debit, Credit: credit},
	}
}

// Store wraps a transport or transaction-layer fault.
func Store(err error) *Error {
	return &Error{Kind: KindStoreFailure, Message: "ledger store failure", Err: err}
}

// KindOf extracts the kind of err, or KindStoreFailure when err is not a
// ledger error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// As is a convenience wrapper around errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
