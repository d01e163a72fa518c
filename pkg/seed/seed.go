package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mathieustrosberg/restaurant-app/internal/model"
)

// SeedAdminUser creates the admin account from the environment when it does
// not exist yet. Passwords are only ever stored hashed.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{Email: email, Password: string(hashed)}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Printf("Admin user %s seeded successfully!", email)
	return nil
}
