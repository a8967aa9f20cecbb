package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ErkinN/go-crm/internal/models"
)

// ErrDuplicatePassword is returned by Create when another record already
// holds the same password under case-insensitive comparison.
var ErrDuplicatePassword = errors.New("password already in use")

// CustomerStore wraps all persistence for customer records.
type CustomerStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// ListPage returns up to limit customers sorted newest first, skipping offset.
func (s *CustomerStore) ListPage(offset, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&customers).Error
	return customers, err
}

func (s *CustomerStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Customer{}).Count(&count).Error
	return count, err
}

func (s *CustomerStore) FindByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByPassword matches the record secret ignoring case, mirroring the
// collation used by the duplicate check at creation time.
func (s *CustomerStore) FindByPassword(password string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("LOWER(password) = LOWER(?)", password).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// SearchByName does a case-insensitive substring match against first or last
// name. The term must already be sanitized; the pattern is bound as a query
// parameter, never interpolated.
func (s *CustomerStore) SearchByName(term string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + term + "%"
	err := s.db.
		Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)", pattern, pattern).
		Find(&customers).Error
	return customers, err
}

// Create inserts a new customer, assigning ID and timestamps. It returns
// ErrDuplicatePassword when the secret is already taken; the pre-check is
// backed by the unique index on LOWER(password) so a concurrent create with
// the same secret cannot slip through.
func (s *CustomerStore) Create(customer *models.Customer) error {
	var existing models.Customer
	err := s.db.Where("LOWER(password) = LOWER(?)", customer.Password).First(&existing).Error
	if err == nil {
		return ErrDuplicatePassword
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.db.Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePassword
		}
		return err
	}

	return nil
}

// UpdateByID applies the given column values to one record and refreshes
// updated_at. Returns gorm.ErrRecordNotFound when the id does not exist.
func (s *CustomerStore) UpdateByID(id uint, fields map[string]interface{}) error {
	result := s.db.Model(&models.Customer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByID removes a record permanently. Deleting an id that does not
// exist is not an error.
func (s *CustomerStore) DeleteByID(id uint) error {
	return s.db.Delete(&models.Customer{}, id).Error
}
