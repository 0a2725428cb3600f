package repositories

import (
	"context"
	"time"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/infrastructure/models"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// CustomerRepository implements customer profile operations
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a customer profile. A second profile for the same user is ErrConflict.
func (r *CustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return translateError(GetDB(ctx, r.db).Create(customerToModel(customer)).Error)
}

// GetByID gets a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	if err := GetDB(ctx, r.db).Preload("User").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return customerToEntity(&m), nil
}

// GetByUserID gets the customer profile of a user
func (r *CustomerRepository) GetByUserID(ctx context.Context, userID string) (*entities.Customer, error) {
	var m models.Customer
	if err := GetDB(ctx, r.db).Preload("User").Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return customerToEntity(&m), nil
}

// Update updates the profile fields of a customer
func (r *CustomerRepository) Update(ctx context.Context, customer *entities.Customer) error {
	customer.UpdatedAt = time.Now()
	m := customerToModel(customer)
	updates := map[string]interface{}{
		"phone":             m.Phone,
		"address":           m.Address,
		"city":              m.City,
		"state":             m.State,
		"zip_code":          m.ZipCode,
		"country":           m.Country,
		"employment_status": m.EmploymentStatus,
		"annual_income":     m.AnnualIncome,
		"additional_info":   m.AdditionalInfo,
		"updated_at":        customer.UpdatedAt,
	}
	result := GetDB(ctx, r.db).Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists customers newest first
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*entities.Customer, int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	if err := db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Preload("User").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	var rows []models.Customer
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	customers := make([]*entities.Customer, 0, len(rows))
	for i := range rows {
		customers = append(customers, customerToEntity(&rows[i]))
	}
	return customers, total, nil
}

func customerToModel(c *entities.Customer) *models.Customer {
	return &models.Customer{
		ID:               c.ID,
		UserID:           c.UserID,
		Phone:            c.Phone.Ptr(),
		Address:          c.Address.Ptr(),
		City:             c.City.Ptr(),
		State:            c.State.Ptr(),
		ZipCode:          c.ZipCode.Ptr(),
		Country:          c.Country.Ptr(),
		EmploymentStatus: c.EmploymentStatus.Ptr(),
		AnnualIncome:     c.AnnualIncome,
		AdditionalInfo:   c.AdditionalInfo.Ptr(),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func customerToEntity(m *models.Customer) *entities.Customer {
	c := &entities.Customer{
		ID:               m.ID,
		UserID:           m.UserID,
		Phone:            null.StringFromPtr(m.Phone),
		Address:          null.StringFromPtr(m.Address),
		City:             null.StringFromPtr(m.City),
		State:            null.StringFromPtr(m.State),
		ZipCode:          null.StringFromPtr(m.ZipCode),
		Country:          null.StringFromPtr(m.Country),
		EmploymentStatus: null.StringFromPtr(m.EmploymentStatus),
		AnnualIncome:     m.AnnualIncome,
		AdditionalInfo:   null.StringFromPtr(m.AdditionalInfo),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.User.ID != "" {
		c.User = userToEntity(&m.User)
	}
	return c
}
