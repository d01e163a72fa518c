package model

import "time"

// NewsletterSubscriber holds a signup and the opaque token that is the sole
// credential for self-service unsubscribe.
type NewsletterSubscriber struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Email            string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	UnsubscribeToken string    `json:"-" gorm:"size:64;uniqueIndex;not null"`
	CreatedAt        time.Time `json:"created_at"`
}

func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
