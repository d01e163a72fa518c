package model

import "time"

type ContactStatus string

const (
	ContactNew     ContactStatus = "NEW"
	ContactRead    ContactStatus = "READ"
	ContactReplied ContactStatus = "REPLIED"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied:
		return true
	}
	return false
}

// Contact is a message sent through the public contact form. It starts as
// NEW, becomes READ when an admin first opens it and REPLIED once a response
// is stored. Replying again overwrites the stored response.
type Contact struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"size:255;not null"`
	Email     string        `json:"email" gorm:"size:255;not null"`
	Phone     *string       `json:"phone,omitempty" gorm:"size:50"`
	Subject   string        `json:"subject" gorm:"size:255;not null"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	Status    ContactStatus `json:"status" gorm:"size:10;not null;default:'NEW'"`
	Response  *string       `json:"response,omitempty" gorm:"type:text"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
