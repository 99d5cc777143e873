package models

import "time"

// Category is the income/expense classification of an Entry.
type Category string

const (
	Income  Category = "income"
	Expense Category = "expense"
)

func (c Category) Valid() bool {
	return c == Income || c == Expense
}

// Label is the name shown to the user.
func (c Category) Label() string {
	if c == Income {
		return "収入"
	}
	return "支出"
}

// Entry is one income or expense record. Entries are never edited, only deleted.
type Entry struct {
	ID          int64     `json:"id"`
	Category    Category  `json:"category" validate:"required,oneof=income expense"`
	Description string    `json:"description" validate:"required"`
	Amount      float64   `json:"amount" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
}

type User struct {
	ID           int64  `gorm:"primaryKey"`
	Login        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}
