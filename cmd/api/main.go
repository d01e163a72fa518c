package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/mathieustrosberg/restaurant-app/internal/controller"
	"github.com/mathieustrosberg/restaurant-app/internal/middleware"
	"github.com/mathieustrosberg/restaurant-app/internal/model"
	"github.com/mathieustrosberg/restaurant-app/internal/store"
	"github.com/mathieustrosberg/restaurant-app/pkg/config"
	"github.com/mathieustrosberg/restaurant-app/pkg/cron"
	"github.com/mathieustrosberg/restaurant-app/pkg/database"
	"github.com/mathieustrosberg/restaurant-app/pkg/email"
	"github.com/mathieustrosberg/restaurant-app/pkg/seed"
	"github.com/mathieustrosberg/restaurant-app/pkg/utils/jwt"
	"github.com/mathieustrosberg/restaurant-app/pkg/utils/storage"
)

func setupRoutes(
	app *fiber.App,
	tokens *jwt.Manager,
	auth *controller.AuthController,
	reservations *controller.ReservationController,
	contacts *controller.ContactController,
	newsletter *controller.NewsletterController,
	content *controller.ContentController,
	uploads *controller.UploadController,
) {
	api := app.Group("/api")
	admin := middleware.AuthMiddleware(tokens)

	// Auth
	api.Post("/auth/login", auth.Login)
	api.Get("/auth/me", admin, auth.GetMe)

	// Reservations: public create, admin triage
	api.Post("/reservations", reservations.Create)
	api.Get("/reservations", admin, reservations.List)
	api.Put("/reservations/:id", admin, reservations.UpdateStatus)
	api.Delete("/reservations/:id", admin, reservations.Delete)

	// Contact messages: public create, admin triage/reply
	api.Post("/contacts", contacts.Create)
	api.Get("/contacts", admin, contacts.List)
	api.Put("/contacts/:id", admin, contacts.Update)
	api.Delete("/contacts/:id", admin, contacts.Delete)

	// Newsletter
	api.Post("/newsletter", newsletter.Subscribe)
	api.Get("/newsletter", admin, newsletter.List)
	api.Delete("/newsletter/:id", admin, newsletter.Delete)
	api.Get("/unsubscribe", newsletter.VerifyUnsubscribe)
	api.Post("/unsubscribe", newsletter.ConfirmUnsubscribe)

	// Content, menu, settings: public read, admin write
	api.Get("/content/home", content.GetHome)
	api.Put("/content/home", admin, content.UpdateHome)
	api.Get("/menu", content.GetMenu)
	api.Put("/menu", admin, content.UpdateMenu)
	api.Get("/settings", content.GetSettings)
	api.Put("/settings", admin, content.UpdateSetting)

	// Image upload
	api.Post("/upload", admin, uploads.Upload)
}

func main() {
	cfg := config.Load()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = database.Migrate(db,
		&model.User{},
		&model.Customer{},
		&model.Reservation{},
		&model.Contact{},
		&model.NewsletterSubscriber{},
		&model.ContentPage{},
		&model.MenuCategory{},
		&model.Setting{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	if err := seed.SeedAdminUser(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Printf("Could not seed admin user: %v", err)
	}

	mailer, err := email.NewService(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.ReplyTo, cfg.Email.BaseURL)
	if err != nil {
		log.Fatal("Could not initialize email service:", err)
	}

	queue := email.NewDispatcher(64, 3, 5*time.Second)
	defer queue.Close()

	uploader, err := storage.NewR2Storage(
		cfg.Storage.R2AccountID,
		cfg.Storage.R2AccessKey,
		cfg.Storage.R2SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.PublicURL,
	)
	if err != nil {
		log.Fatal("Could not initialize storage:", err)
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, 24*time.Hour)

	reservationStore := store.NewReservationStore(db)

	auth := controller.NewAuthController(store.NewUserStore(db), tokens)
	reservations := controller.NewReservationController(reservationStore, mailer, queue)
	contacts := controller.NewContactController(store.NewContactStore(db), mailer, queue, cfg.Email.OperatorEmail)
	newsletter := controller.NewNewsletterController(store.NewNewsletterStore(db), mailer, queue)
	content := controller.NewContentController(store.NewContentStore(db))
	uploads := controller.NewUploadController(uploader)

	digestCron := cron.InitReservationDigestCron(reservationStore, mailer, queue, cfg.Email.OperatorEmail)
	if digestCron != nil {
		defer digestCron.Stop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, tokens, auth, reservations, contacts, newsletter, content, uploads)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
