package repositories

import (
	"context"
	"time"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/infrastructure/models"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanRepository implements loan data operations
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create creates a loan. A duplicate loan number is ErrConflict.
func (r *LoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	if loan.ID == uuid.Nil {
		loan.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = now
	}
	loan.UpdatedAt = now
	m := &models.Loan{
		ID:         loan.ID,
		CustomerID: loan.CustomerID,
		LoanNumber: loan.LoanNumber,
		Amount:     loan.Amount,
		Interest:   loan.Interest,
		Term:       loan.Term,
		Status:     string(loan.Status),
		CreatedAt:  loan.CreatedAt,
		UpdatedAt:  loan.UpdatedAt,
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a loan by ID
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error) {
	var m models.Loan
	if err := lockedDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return loanToEntity(&m), nil
}

// List lists loans newest first, optionally for a single customer
func (r *LoanRepository) List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]*entities.Loan, int64, error) {
	byCustomer := func(db *gorm.DB) *gorm.DB {
		if customerID != nil {
			return db.Where("customer_id = ?", *customerID)
		}
		return db
	}

	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Loan{}).Scopes(byCustomer).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := GetDB(ctx, r.db).Scopes(byCustomer).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	var rows []models.Loan
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return loansToEntities(rows), total, nil
}

// ListByStatus lists loans in any of the given statuses, oldest first
func (r *LoanRepository) ListByStatus(ctx context.Context, statuses ...entities.LoanStatus) ([]*entities.Loan, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	var rows []models.Loan
	if err := GetDB(ctx, r.db).Where("status IN ?", values).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return loansToEntities(rows), nil
}

// UpdateStatus overwrites the stored status
func (r *LoanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.LoanStatus) error {
	result := GetDB(ctx, r.db).Model(&models.Loan{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func loansToEntities(rows []models.Loan) []*entities.Loan {
	loans := make([]*entities.Loan, 0, len(rows))
	for i := range rows {
		loans = append(loans, loanToEntity(&rows[i]))
	}
	return loans
}

func loanToEntity(m *models.Loan) *entities.Loan {
	return &entities.Loan{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		LoanNumber: m.LoanNumber,
		Amount:     m.Amount,
		Interest:   m.Interest,
		Term:       m.Term,
		Status:     entities.LoanStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// LoanPaymentRepository implements loan repayment operations
type LoanPaymentRepository struct {
	db *gorm.DB
}

// NewLoanPaymentRepository creates a new loan payment repository
func NewLoanPaymentRepository(db *gorm.DB) *LoanPaymentRepository {
	return &LoanPaymentRepository{db: db}
}

// Create appends a payment
func (r *LoanPaymentRepository) Create(ctx context.Context, payment *entities.LoanPayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = utils.GenerateUUIDv7()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	if payment.DueDate.IsZero() {
		payment.DueDate = payment.CreatedAt
	}
	m := &models.LoanPayment{
		ID:        payment.ID,
		LoanID:    payment.LoanID,
		Amount:    payment.Amount,
		DueDate:   payment.DueDate,
		CreatedAt: payment.CreatedAt,
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// ListByLoanID lists the payments of a loan newest first
func (r *LoanPaymentRepository) ListByLoanID(ctx context.Context, loanID uuid.UUID) ([]*entities.LoanPayment, error) {
	var rows []models.LoanPayment
	if err := GetDB(ctx, r.db).Where("loan_id = ?", loanID).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]*entities.LoanPayment, 0, len(rows))
	for i := range rows {
		m := rows[i]
		payments = append(payments, &entities.LoanPayment{
			ID:        m.ID,
			LoanID:    m.LoanID,
			Amount:    m.Amount,
			DueDate:   m.DueDate,
			CreatedAt: m.CreatedAt,
		})
	}
	return payments, nil
}
