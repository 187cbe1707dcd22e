package models

import "time"

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

type CategorySource string

const (
	CategorySourceSeed     CategorySource = "seed"
	CategorySourceAutoRule CategorySource = "auto_rule"
	CategorySourceManual   CategorySource = "manual"
	CategorySourceAI       CategorySource = "ai"
)

// Transaction is a ledger entry as read from the store. Amount is a non-negative
// magnitude; direction is carried by Type. A zero Date means the stored value
// could not be parsed.
type Transaction struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"account_id"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description"`
	Merchant           string          `json:"merchant,omitempty"`
	Amount             float64         `json:"amount"`
	Type               TransactionType `json:"type"`
	Category           string          `json:"category"`
	CategorySource     CategorySource  `json:"category_source,omitempty"`
	CategoryConfidence float64         `json:"category_confidence"`
	CategoryReason     string          `json:"category_reason,omitempty"`
	IsUnusual          *bool           `json:"is_unusual"`
	UnusualReason      string          `json:"unusual_reason,omitempty"`
}

func (t Transaction) IsDebit() bool {
	return t.Type == TransactionTypeDebit
}

// CategoryUpdate touches only the categorizer-owned fields of a transaction.
type CategoryUpdate struct {
	ID                 string         `json:"id"`
	Category           string         `json:"category"`
	CategorySource     CategorySource `json:"category_source"`
	CategoryConfidence float64        `json:"category_confidence"`
	CategoryReason     string         `json:"category_reason"`
}

func (u CategoryUpdate) ApplyTo(t *Transaction) {
	t.Category = u.Category
	t.CategorySource = u.CategorySource
	t.CategoryConfidence = u.CategoryConfidence
	t.CategoryReason = u.CategoryReason
}

// UnusualUpdate touches only the anomaly-owned fields of a transaction.
type UnusualUpdate struct {
	ID            string  `json:"id"`
	IsUnusual     bool    `json:"is_unusual"`
	UnusualReason *string `json:"unusual_reason"`
}

func (u UnusualUpdate) ApplyTo(t *Transaction) {
	flag := u.IsUnusual
	t.IsUnusual = &flag
	t.UnusualReason = ""
	if u.UnusualReason != nil {
		t.UnusualReason = *u.UnusualReason
	}
}

// BatchResult is returned by the recategorize and detect-unusual passes.
type BatchResult struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
}
