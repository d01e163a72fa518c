package store

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
)

// ContentStore covers the document-style resources: page content, menu
// categories and key/value settings. Everything here is upsert-on-write.
type ContentStore struct {
	db *gorm.DB
}

func NewContentStore(db *gorm.DB) *ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) GetPage(slug string) (*model.ContentPage, error) {
	var page model.ContentPage
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		return nil, translate(err)
	}
	return &page, nil
}

func (s *ContentStore) UpsertPage(slug string, sections datatypes.JSON, updatedBy string) (*model.ContentPage, error) {
	page := model.ContentPage{Slug: slug, Sections: sections, UpdatedBy: updatedBy}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"sections", "updated_by", "updated_at"}),
	}).Create(&page).Error
	if err != nil {
		return nil, translate(err)
	}
	return s.GetPage(slug)
}

func (s *ContentStore) ListMenu() ([]model.MenuCategory, error) {
	var categories []model.MenuCategory
	if err := s.db.Order("category asc").Find(&categories).Error; err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

func (s *ContentStore) UpsertMenuCategory(category string, items datatypes.JSON) (*model.MenuCategory, error) {
	row := model.MenuCategory{Category: category, Items: items}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, translate(err)
	}

	var out model.MenuCategory
	if err := s.db.Where("category = ?", category).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// SeedMenu inserts the default menu. Called only when the table is empty.
func (s *ContentStore) SeedMenu(categories []model.MenuCategory) error {
	return translate(s.db.Create(&categories).Error)
}

// AllSettings returns every setting flattened into a key/value map.
func (s *ContentStore) AllSettings() (map[string]string, error) {
	var settings []model.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, translate(err)
	}

	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

func (s *ContentStore) UpsertSetting(key, value string) (*model.Setting, error) {
	setting := model.Setting{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, translate(err)
	}

	var out model.Setting
	if err := s.db.Where("key = ?", key).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}
