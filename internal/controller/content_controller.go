package controller

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
	"github.com/mathieustrosberg/restaurant-app/internal/store"
)

type ContentStore interface {
	GetPage(slug string) (*model.ContentPage, error)
	UpsertPage(slug string, sections datatypes.JSON, updatedBy string) (*model.ContentPage, error)
	ListMenu() ([]model.MenuCategory, error)
	UpsertMenuCategory(category string, items datatypes.JSON) (*model.MenuCategory, error)
	SeedMenu(categories []model.MenuCategory) error
	AllSettings() (map[string]string, error)
	UpsertSetting(key, value string) (*model.Setting, error)
}

// ContentController serves the document-style resources: page content, menu
// and settings. These are plain get/replace endpoints with upsert-on-write.
type ContentController struct {
	store ContentStore
}

func NewContentController(store ContentStore) *ContentController {
	return &ContentController{store: store}
}

// GetHome returns the home page document, creating it with default sections
// on first read.
func (ctl *ContentController) GetHome(c *fiber.Ctx) error {
	page, err := ctl.store.GetPage("home")
	if errors.Is(err, store.ErrNotFound) {
		page, err = ctl.store.UpsertPage("home", model.DefaultHomeSections(), "")
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch page content",
		})
	}
	return c.JSON(page)
}

func (ctl *ContentController) UpdateHome(c *fiber.Ctx) error {
	input := struct {
		Sections  json.RawMessage `json:"sections"`
		UpdatedBy string          `json:"updated_by"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if len(input.Sections) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Sections are required",
		})
	}

	page, err := ctl.store.UpsertPage("home", datatypes.JSON(input.Sections), input.UpdatedBy)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update page content",
		})
	}
	return c.JSON(page)
}

// GetMenu lists all menu categories, seeding the defaults when the table is
// still empty.
func (ctl *ContentController) GetMenu(c *fiber.Ctx) error {
	categories, err := ctl.store.ListMenu()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch menu",
		})
	}

	if len(categories) == 0 {
		defaults := model.DefaultMenu()
		if err := ctl.store.SeedMenu(defaults); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not initialize menu",
			})
		}
		return c.JSON(defaults)
	}
	return c.JSON(categories)
}

func (ctl *ContentController) UpdateMenu(c *fiber.Ctx) error {
	input := struct {
		Category string          `json:"category"`
		Items    json.RawMessage `json:"items"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.Category == "" || len(input.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category and items are required",
		})
	}

	// Items must be a JSON array of menu entries.
	var items []model.MenuItem
	if err := json.Unmarshal(input.Items, &items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Items must be an array",
		})
	}

	category, err := ctl.store.UpsertMenuCategory(input.Category, datatypes.JSON(input.Items))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update menu",
		})
	}
	return c.JSON(category)
}

// GetSettings returns all settings flattened to a key/value map.
func (ctl *ContentController) GetSettings(c *fiber.Ctx) error {
	settings, err := ctl.store.AllSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch settings",
		})
	}
	return c.JSON(settings)
}

func (ctl *ContentController) UpdateSetting(c *fiber.Ctx) error {
	input := struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Key is required",
		})
	}

	setting, err := ctl.store.UpsertSetting(input.Key, input.Value)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update setting",
		})
	}
	return c.JSON(setting)
}
