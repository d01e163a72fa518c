package controller

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
	"github.com/mathieustrosberg/restaurant-app/internal/store"
	"github.com/mathieustrosberg/restaurant-app/pkg/email"
)

type ContactStore interface {
	Create(contact *model.Contact) error
	List() ([]model.Contact, error)
	Update(id uint, updates map[string]interface{}) (*model.Contact, error)
	Delete(id uint) error
}

type ContactMailer interface {
	SendContactNotificationEmail(operatorEmail string, data email.ContactNotificationData) error
}

type ContactController struct {
	store ContactStore
	mailer ContactMailer
	queue Queue
	// operatorEmail receives the new-message notification; the customer is
	// not emailed on create or reply.
	operatorEmail string
}

func NewContactController(store ContactStore, mailer ContactMailer, queue Queue, operatorEmail string) *ContactController {
	return &ContactController{store: store, mailer: mailer, queue: queue, operatorEmail: operatorEmail}
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ContactInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

func (ctl *ContactController) Create(c *fiber.Ctx) error {
	input := new(ContactInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if input.Name == "" || input.Email == "" || input.Subject == "" || input.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "All fields are required",
		})
	}
	if !emailRegex.MatchString(input.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email format",
		})
	}

	contact := &model.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  model.ContactNew,
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" {
			contact.Phone = &phone
		}
	}

	if err := ctl.store.Create(contact); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save message",
		})
	}

	data := email.ContactNotificationData{
		CustomerName:  contact.Name,
		CustomerEmail: contact.Email,
		Subject:       contact.Subject,
		Message:       contact.Message,
	}
	if contact.Phone != nil {
		data.Phone = *contact.Phone
	}
	ctl.queue.Enqueue("contact notification", func() error {
		return ctl.mailer.SendContactNotificationEmail(ctl.operatorEmail, data)
	})

	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (ctl *ContactController) List(c *fiber.Ctx) error {
	contacts, err := ctl.store.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch messages",
		})
	}
	return c.JSON(contacts)
}

// Update covers both admin flows on one endpoint: opening a message sends
// {status:"READ"}; replying sends {response} and moves the message to
// REPLIED, overwriting any previous response. Re-marking READ as READ is a
// no-op transition.
func (ctl *ContactController) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ID",
		})
	}

	input := struct {
		Status   *model.ContactStatus `json:"status"`
		Response *string              `json:"response"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{}
	if input.Status != nil {
		if !input.Status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status",
			})
		}
		updates["status"] = *input.Status
	}
	if input.Response != nil {
		updates["response"] = *input.Response
		if input.Status == nil {
			updates["status"] = model.ContactReplied
		}
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nothing to update",
		})
	}

	contact, err := ctl.store.Update(uint(id), updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Message not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update message",
		})
	}

	return c.JSON(contact)
}

func (ctl *ContactController) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ID",
		})
	}

	if err := ctl.store.Delete(uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Message not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete message",
		})
	}

	return c.JSON(fiber.Map{"message": "Message deleted"})
}
