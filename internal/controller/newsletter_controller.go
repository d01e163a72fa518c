package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
	"github.com/mathieustrosberg/restaurant-app/internal/store"
	"github.com/mathieustrosberg/restaurant-app/pkg/utils/token"
)

type NewsletterStore interface {
	Create(sub *model.NewsletterSubscriber) error
	List() ([]model.NewsletterSubscriber, error)
	FindByToken(token string) (*model.NewsletterSubscriber, error)
	Delete(id uint) error
}

type NewsletterMailer interface {
	SendNewsletterWelcomeEmail(to, unsubscribeToken string) error
	SendUnsubscribeConfirmationEmail(to string) error
}

type NewsletterController struct {
	store  NewsletterStore
	mailer NewsletterMailer
	queue  Queue
}

func NewNewsletterController(store NewsletterStore, mailer NewsletterMailer, queue Queue) *NewsletterController {
	return &NewsletterController{store: store, mailer: mailer, queue: queue}
}

// Subscribe handles the public signup form. The unsubscribe token minted
// here is the only credential ever issued for removing the address.
func (ctl *NewsletterController) Subscribe(c *fiber.Ctx) error {
	input := struct {
		Email string `json:"email"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	unsubscribeToken, err := token.New()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete subscription",
		})
	}

	sub := &model.NewsletterSubscriber{
		Email:            input.Email,
		UnsubscribeToken: unsubscribeToken,
	}
	if err := ctl.store.Create(sub); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Already subscribed",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete subscription",
		})
	}

	to := sub.Email
	ctl.queue.Enqueue("newsletter welcome", func() error {
		return ctl.mailer.SendNewsletterWelcomeEmail(to, unsubscribeToken)
	})

	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (ctl *NewsletterController) List(c *fiber.Ctx) error {
	subs, err := ctl.store.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscribers",
		})
	}
	return c.JSON(subs)
}

func (ctl *NewsletterController) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ID",
		})
	}

	if err := ctl.store.Delete(uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Subscriber not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete subscriber",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// VerifyUnsubscribe checks a token from the unsubscribe landing page without
// deleting anything.
func (ctl *NewsletterController) VerifyUnsubscribe(c *fiber.Ctx) error {
	t := c.Query("token")
	if t == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token is required",
		})
	}

	sub, err := ctl.store.FindByToken(t)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not verify token",
		})
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"email": sub.Email,
	})
}

// ConfirmUnsubscribe deletes the subscriber matching the token and sends a
// confirmation email, best-effort.
func (ctl *NewsletterController) ConfirmUnsubscribe(c *fiber.Ctx) error {
	input := struct {
		Token string `json:"token"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token is required",
		})
	}

	sub, err := ctl.store.FindByToken(input.Token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not unsubscribe",
		})
	}

	if err := ctl.store.Delete(sub.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not unsubscribe",
		})
	}

	to := sub.Email
	ctl.queue.Enqueue("unsubscribe confirmation", func() error {
		return ctl.mailer.SendUnsubscribeConfirmationEmail(to)
	})

	return c.JSON(fiber.Map{
		"message": "Successfully unsubscribed",
		"email":   sub.Email,
	})
}
