package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
	"github.com/mathieustrosberg/restaurant-app/internal/store"
	"github.com/mathieustrosberg/restaurant-app/pkg/email"
)

type ReservationStore interface {
	UpsertCustomer(name, email, phone string) (*model.Customer, error)
	Create(r *model.Reservation) error
	ListWithCustomers() ([]model.Reservation, error)
	UpdateStatus(id uint, status model.ReservationStatus) (*model.Reservation, error)
	Delete(id uint) error
}

type ReservationMailer interface {
	SendReservationConfirmedEmail(to string, data email.ReservationEmailData) error
	SendReservationCanceledEmail(to string, data email.ReservationEmailData) error
}

type ReservationController struct {
	store  ReservationStore
	mailer ReservationMailer
	queue  Queue
}

func NewReservationController(store ReservationStore, mailer ReservationMailer, queue Queue) *ReservationController {
	return &ReservationController{store: store, mailer: mailer, queue: queue}
}

type ReservationInput struct {
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Date    string        `json:"date"`
	Time    string        `json:"time"`
	Service model.Service `json:"service"`
	People  int           `json:"people"`
	Notes   *string       `json:"notes"`
}

// FlattenedReservation is a reservation joined with its customer's contact
// fields, the shape the admin dashboard lists.
type FlattenedReservation struct {
	ID      uint                    `json:"id"`
	Name    string                  `json:"name"`
	Email   string                  `json:"email"`
	Phone   string                  `json:"phone"`
	Date    string                  `json:"date"`
	Time    string                  `json:"time"`
	Service model.Service           `json:"service"`
	People  int                     `json:"people"`
	Notes   *string                 `json:"notes,omitempty"`
	Status  model.ReservationStatus `json:"status"`
}

func flatten(r *model.Reservation) FlattenedReservation {
	return FlattenedReservation{
		ID:      r.ID,
		Name:    r.Customer.Name,
		Email:   r.Customer.Email,
		Phone:   r.Customer.Phone,
		Date:    r.Date,
		Time:    r.Time,
		Service: r.Service,
		People:  r.People,
		Notes:   r.Notes,
		Status:  r.Status,
	}
}

// Create handles the public reservation form. The customer is upserted by
// email before the reservation insert; the two writes are not atomic, an
// orphaned customer after a failed insert is tolerated.
func (ctl *ReservationController) Create(c *fiber.Ctx) error {
	input := new(ReservationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Name == "" || input.Email == "" || input.Phone == "" ||
		input.Date == "" || input.Time == "" || input.Service == "" || input.People == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if !input.Service.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service",
		})
	}
	if !model.ValidSlot(input.Service, input.Time) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid time slot",
		})
	}
	if input.People < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid number of people",
		})
	}

	customer, err := ctl.store.UpsertCustomer(input.Name, input.Email, input.Phone)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save customer",
		})
	}

	reservation := &model.Reservation{
		CustomerID: customer.ID,
		Date:       input.Date,
		Time:       input.Time,
		Service:    input.Service,
		People:     input.People,
		Notes:      input.Notes,
		Status:     model.ReservationPending,
	}

	if err := ctl.store.Create(reservation); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Slot already booked",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create reservation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(reservation)
}

func (ctl *ReservationController) List(c *fiber.Ctx) error {
	reservations, err := ctl.store.ListWithCustomers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch reservations",
		})
	}

	out := make([]FlattenedReservation, 0, len(reservations))
	for i := range reservations {
		out = append(out, flatten(&reservations[i]))
	}
	return c.JSON(out)
}

// UpdateStatus sets the reservation status. There are no transition guards:
// any status is reachable from any other, and moving back to CONFIRMED or
// CANCELED re-sends the matching email. The status write commits before the
// email is enqueued, so a dispatch failure never rolls it back.
func (ctl *ReservationController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ID",
		})
	}

	input := struct {
		Status model.ReservationStatus `json:"status"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if !input.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	reservation, err := ctl.store.UpdateStatus(uint(id), input.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Reservation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update reservation",
		})
	}

	if input.Status == model.ReservationConfirmed || input.Status == model.ReservationCanceled {
		to := reservation.Customer.Email
		data := email.ReservationEmailData{
			CustomerName: reservation.Customer.Name,
			Date:         reservation.Date,
			Time:         reservation.Time,
			Service:      string(reservation.Service),
			People:       reservation.People,
		}
		if input.Status == model.ReservationConfirmed {
			ctl.queue.Enqueue("reservation confirmed", func() error {
				return ctl.mailer.SendReservationConfirmedEmail(to, data)
			})
		} else {
			ctl.queue.Enqueue("reservation canceled", func() error {
				return ctl.mailer.SendReservationCanceledEmail(to, data)
			})
		}
	}

	flat := flatten(reservation)
	return c.JSON(flat)
}

func (ctl *ReservationController) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ID",
		})
	}

	if err := ctl.store.Delete(uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Reservation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete reservation",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
