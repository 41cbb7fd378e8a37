package transaction

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a transaction does not exist or belongs to a
// different user. The two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("transaction not found")

// Type classifies a transaction as money in or money out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category is one of the fixed set of spending/income categories.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryBills         Category = "Bills"
	CategoryShopping      Category = "Shopping"
	CategorySalary        Category = "Salary"
	CategoryInvestment    Category = "Investment"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryOthers        Category = "Others"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategoryBills,
	CategoryShopping,
	CategorySalary,
	CategoryInvestment,
	CategoryEntertainment,
	CategoryHealth,
	CategoryOthers,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DateFormat is the wire format for transaction dates (calendar date, no time).
const DateFormat = "2006-01-02"

type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Type      Type      `json:"type"`
	Category  Category  `json:"category"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateTransactionParams struct {
	ID       string
	UserID   string
	Title    string
	Amount   float64
	Type     Type
	Category Category
	Date     string
	Note     string
}

// UpdateTransactionParams replaces every mutable field. The owning user id is
// never part of the update set.
type UpdateTransactionParams struct {
	Title    string
	Amount   float64
	Type     Type
	Category Category
	Date     string
	Note     string
}
