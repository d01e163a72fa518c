package store

import (
	"gorm.io/gorm"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
)

type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Create(contact *model.Contact) error {
	return translate(s.db.Create(contact).Error)
}

func (s *ContactStore) List() ([]model.Contact, error) {
	var contacts []model.Contact
	if err := s.db.Order("created_at desc").Find(&contacts).Error; err != nil {
		return nil, translate(err)
	}
	return contacts, nil
}

// Update applies the given column updates and returns the refreshed row.
func (s *ContactStore) Update(id uint, updates map[string]interface{}) (*model.Contact, error) {
	var contact model.Contact
	if err := s.db.First(&contact, id).Error; err != nil {
		return nil, translate(err)
	}

	if err := s.db.Model(&contact).Updates(updates).Error; err != nil {
		return nil, translate(err)
	}

	if err := s.db.First(&contact, id).Error; err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

func (s *ContactStore) Delete(id uint) error {
	res := s.db.Delete(&model.Contact{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
