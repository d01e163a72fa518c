package model

import "time"

type Service string

const (
	ServiceLunch  Service = "lunch"
	ServiceDinner Service = "dinner"
)

func (s Service) Valid() bool {
	return s == ServiceLunch || s == ServiceDinner
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCanceled  ReservationStatus = "CANCELED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCanceled:
		return true
	}
	return false
}

// Bookable slot labels per service. There is no capacity model: one
// reservation per (date, time) pair, enforced by the unique index below.
var (
	LunchSlots  = []string{"11:45", "12:00", "12:15", "12:30", "12:45", "13:00", "13:15", "13:30"}
	DinnerSlots = []string{"18:45", "19:00", "19:15", "19:30", "19:45", "20:00", "20:15", "20:30"}
)

// ValidSlot reports whether the time label is bookable for the service.
func ValidSlot(service Service, timeLabel string) bool {
	slots := LunchSlots
	if service == ServiceDinner {
		slots = DinnerSlots
	}
	for _, s := range slots {
		if s == timeLabel {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	CustomerID uint              `json:"customer_id" gorm:"not null;index"`
	Date       string            `json:"date" gorm:"size:10;not null;uniqueIndex:idx_reservations_slot"`
	Time       string            `json:"time" gorm:"size:5;not null;uniqueIndex:idx_reservations_slot"`
	Service    Service           `json:"service" gorm:"size:10;not null"`
	People     int               `json:"people" gorm:"not null"`
	Notes      *string           `json:"notes,omitempty" gorm:"type:text"`
	Status     ReservationStatus `json:"status" gorm:"size:10;not null;default:'PENDING'"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Customer Customer `json:"-" gorm:"foreignKey:CustomerID"`
}
