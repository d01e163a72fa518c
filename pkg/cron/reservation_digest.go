package cron

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
	"github.com/mathieustrosberg/restaurant-app/pkg/email"
)

type ReservationSource interface {
	PendingOn(date string) ([]model.Reservation, error)
}

type DigestMailer interface {
	SendReservationDigestEmail(operatorEmail string, data email.ReservationDigestData) error
}

type Queue interface {
	Enqueue(name string, run func() error)
}

var (
	lastRunTime time.Time
	mutex       sync.Mutex
)

// InitReservationDigestCron emails the operator every morning with the
// day's still-pending reservations so none are left unconfirmed.
func InitReservationDigestCron(source ReservationSource, mailer DigestMailer, queue Queue, operatorEmail string) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		mutex.Lock()
		defer mutex.Unlock()

		if time.Since(lastRunTime) < 23*time.Hour {
			log.Printf("Reservation digest already sent today, skipping...")
			return
		}

		sendReservationDigest(source, mailer, queue, operatorEmail)
		lastRunTime = time.Now()
	})
	if err != nil {
		log.Printf("Could not initialize reservation digest cron: %v", err)
		return nil
	}

	c.Start()
	log.Printf("Reservation digest cron initialized successfully")
	return c
}

func sendReservationDigest(source ReservationSource, mailer DigestMailer, queue Queue, operatorEmail string) {
	today := time.Now().Format("2006-01-02")

	pending, err := source.PendingOn(today)
	if err != nil {
		log.Printf("Error fetching pending reservations: %v", err)
		return
	}
	if len(pending) == 0 {
		log.Printf("No pending reservations for %s, skipping digest", today)
		return
	}

	data := email.ReservationDigestData{Date: today}
	for _, r := range pending {
		data.Entries = append(data.Entries, email.DigestEntry{
			Time:   r.Time,
			Name:   r.Customer.Name,
			Phone:  r.Customer.Phone,
			People: r.People,
		})
	}

	log.Printf("Sending reservation digest for %s with %d entries", today, len(data.Entries))
	queue.Enqueue("reservation digest", func() error {
		return mailer.SendReservationDigestEmail(operatorEmail, data)
	})
}
