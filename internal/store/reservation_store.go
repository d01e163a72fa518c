package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
)

type ReservationStore struct {
	db *gorm.DB
}

func NewReservationStore(db *gorm.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

// UpsertCustomer creates the customer or, when the email already exists,
// refreshes name and phone. The returned row always carries the ID.
func (s *ReservationStore) UpsertCustomer(name, email, phone string) (*model.Customer, error) {
	customer := model.Customer{Name: name, Email: email, Phone: phone}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "updated_at"}),
	}).Create(&customer).Error
	if err != nil {
		return nil, translate(err)
	}

	if err := s.db.Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

// Create inserts the reservation. A (date, time) collision comes back as
// ErrConflict from the unique index; there is no capacity logic beyond that.
func (s *ReservationStore) Create(r *model.Reservation) error {
	return translate(s.db.Create(r).Error)
}

func (s *ReservationStore) ListWithCustomers() ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := s.db.Preload("Customer").
		Order("date asc, time asc").
		Find(&reservations).Error
	if err != nil {
		return nil, translate(err)
	}
	return reservations, nil
}

func (s *ReservationStore) GetWithCustomer(id uint) (*model.Reservation, error) {
	var r model.Reservation
	if err := s.db.Preload("Customer").First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// UpdateStatus persists the new status and returns the reservation with its
// customer preloaded. The write commits before any notification is attempted.
func (s *ReservationStore) UpdateStatus(id uint, status model.ReservationStatus) (*model.Reservation, error) {
	var r model.Reservation
	if err := s.db.First(&r, id).Error; err != nil {
		return nil, translate(err)
	}

	if err := s.db.Model(&r).Update("status", status).Error; err != nil {
		return nil, translate(err)
	}

	if err := s.db.Preload("Customer").First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *ReservationStore) Delete(id uint) error {
	res := s.db.Delete(&model.Reservation{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PendingOn lists PENDING reservations for one date, customer preloaded,
// ordered by slot. Used by the daily digest job.
func (s *ReservationStore) PendingOn(date string) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := s.db.Preload("Customer").
		Where("date = ? AND status = ?", date, model.ReservationPending).
		Order("time asc").
		Find(&reservations).Error
	if err != nil {
		return nil, translate(err)
	}
	return reservations, nil
}
