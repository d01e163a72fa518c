package store

import (
	"gorm.io/gorm"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
)

type NewsletterStore struct {
	db *gorm.DB
}

func NewNewsletterStore(db *gorm.DB) *NewsletterStore {
	return &NewsletterStore{db: db}
}

// Create inserts the subscriber; a duplicate email surfaces as ErrConflict.
func (s *NewsletterStore) Create(sub *model.NewsletterSubscriber) error {
	return translate(s.db.Create(sub).Error)
}

func (s *NewsletterStore) List() ([]model.NewsletterSubscriber, error) {
	var subs []model.NewsletterSubscriber
	if err := s.db.Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, translate(err)
	}
	return subs, nil
}

func (s *NewsletterStore) FindByToken(token string) (*model.NewsletterSubscriber, error) {
	var sub model.NewsletterSubscriber
	if err := s.db.Where("unsubscribe_token = ?", token).First(&sub).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (s *NewsletterStore) Delete(id uint) error {
	res := s.db.Delete(&model.NewsletterSubscriber{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
