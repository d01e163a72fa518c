package model

import (
	"time"

	"gorm.io/datatypes"
)

// ContentPage stores the editable sections of a public page as a JSON
// document, upserted by slug.
type ContentPage struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Slug      string         `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Sections  datatypes.JSON `json:"sections" gorm:"not null"`
	UpdatedBy string         `json:"updated_by" gorm:"size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// MenuCategory is one menu column ("entrees", "plats", "desserts") with its
// items stored as a JSON array, upserted by category.
type MenuCategory struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Category  string         `json:"category" gorm:"size:100;uniqueIndex;not null"`
	Items     datatypes.JSON `json:"items" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (MenuCategory) TableName() string {
	return "menu_categories"
}

// MenuItem is the shape of a single entry inside MenuCategory.Items.
type MenuItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Setting is a loosely-typed key/value pair for site-wide settings.
type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"size:100;uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultHomeSections is the content a fresh install serves for the home
// page before anyone has edited it.
func DefaultHomeSections() datatypes.JSON {
	return datatypes.JSON(`[
		{"type":"title","value":{"text":"Mon Restaurant"}},
		{"type":"paragraph","value":{"text":"Bienvenue dans notre restaurant"}},
		{"type":"image","value":{"src":"/image.jpg","alt":"Façade du restaurant"}}
	]`)
}

// DefaultMenu is the menu a fresh install serves before the first edit.
func DefaultMenu() []MenuCategory {
	return []MenuCategory{
		{
			Category: "entrees",
			Items: datatypes.JSON(`[
				{"name":"Salade verte","description":"Salade fraîche de saison","price":"8€"},
				{"name":"Soupe à l'oignon","description":"Soupe traditionnelle française","price":"10€"}
			]`),
		},
		{
			Category: "plats",
			Items: datatypes.JSON(`[
				{"name":"Filet de bœuf","description":"Pièce de bœuf grillée","price":"28€"},
				{"name":"Saumon grillé","description":"Filet de saumon aux herbes","price":"24€"}
			]`),
		},
		{
			Category: "desserts",
			Items: datatypes.JSON(`[
				{"name":"Tarte aux pommes","description":"Tarte maison aux pommes","price":"8€"},
				{"name":"Mousse au chocolat","description":"Mousse onctueuse au chocolat noir","price":"9€"}
			]`),
		},
	}
}
