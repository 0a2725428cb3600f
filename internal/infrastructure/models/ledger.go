package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID           string              `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone            *string             `gorm:"type:varchar(50)"`
	Address          *string             `gorm:"type:text"`
	City             *string             `gorm:"type:varchar(100)"`
	State            *string             `gorm:"type:varchar(100)"`
	ZipCode          *string             `gorm:"type:varchar(20)"`
	Country          *string             `gorm:"type:varchar(100)"`
	EmploymentStatus *string             `gorm:"type:varchar(50)"`
	AnnualIncome     decimal.NullDecimal `gorm:"type:decimal(20,2)"`
	AdditionalInfo   *string             `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Relations
	User User `gorm:"foreignKey:UserID;references:ID"`
}

type Account struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	AccountNumber string              `gorm:"type:varchar(20);uniqueIndex;not null"`
	Type          string              `gorm:"type:varchar(20);not null"`
	Balance       decimal.Decimal     `gorm:"type:decimal(20,2);not null"`
	Status        string              `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Tenure        *int                `gorm:"type:integer"`
	InterestRate  decimal.NullDecimal `gorm:"type:decimal(6,2)"`
	MaturityDate  *time.Time          `gorm:"type:timestamp"`
	CreatedAt     time.Time           `gorm:"index"`
	UpdatedAt     time.Time

	// Relations
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID"`
}

type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Reference   string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Description *string         `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"index"`

	// Relations
	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

type Loan struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LoanNumber string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Interest   decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Term       int             `gorm:"type:integer;not null"`
	Status     string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt  time.Time       `gorm:"index"`
	UpdatedAt  time.Time

	// Relations
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID"`
}

type LoanPayment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LoanID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	DueDate   time.Time       `gorm:"type:timestamp;not null"`
	CreatedAt time.Time       `gorm:"index"`

	// Relations
	Loan Loan `gorm:"foreignKey:LoanID;references:ID"`
}
