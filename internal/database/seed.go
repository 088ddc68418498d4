package database

import (
	"log"
	"os"

	"fieldreport/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates an empty database with the master data and the bootstrap
// admin account. It is a no-op once users exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	branches := []model.Branch{{Code: "KCP-01"}, {Code: "KCP-02"}, {Code: "KCP-03"}}
	areas := []model.Area{{Code: "AREA-1"}, {Code: "AREA-2"}, {Code: "AREA-3"}}
	for _, b := range branches {
		if err := db.FirstOrCreate(&model.Branch{}, b).Error; err != nil {
			return err
		}
	}
	for _, a := range areas {
		if err := db.FirstOrCreate(&model.Area{}, a).Error; err != nil {
			return err
		}
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("WARNING: SEED_ADMIN_PASSWORD not set, using development default")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:   "admin",
		Name:       "Administrator",
		Password:   string(hashed),
		Role:       model.RoleAdmin,
		BranchCode: "KCP-01",
		AreaCode:   "AREA-1",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeded initial admin account and master data")
	return nil
}
