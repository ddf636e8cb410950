package models

// AccountType classifies an account within the chart of accounts and
// determines which side of the ledger increases its balance.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeRevenue   AccountType = "Revenue"
	AccountTypeExpense   AccountType = "Expense"
)

// AccountTypes lists every valid account type, in reporting order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// Valid reports whether t is one of the five recognised account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether debits increase the balance of accounts of
// this type. Asset and Expense accounts are debit-normal; Liability, Equity
// and Revenue accounts are credit-normal.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account is one row of an owner's chart of accounts. The core treats it as
// a read model: accounts are created through the registry and their type is
// immutable afterwards.
type Account struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"-"`
	Code        string      `json:"code"` // human-readable sort key, unique per owner
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Description string      `json:"description,omitempty"`
}
