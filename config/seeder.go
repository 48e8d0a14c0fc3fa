package config

import (
	"log"

	"github.com/nilesh-dagdi/CampusMart/models"
	"github.com/nilesh-dagdi/CampusMart/utils"

	"gorm.io/gorm"
)

func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Email:    "student1@rtu.ac.in",
			Password: password,
			Name:     "Student One",
			Year:     "2nd Year",
			Mobile:   "9876543210",
		},
		{
			Email:    "student2@rtu.ac.in",
			Password: password,
			Name:     "Student Two",
			Year:     "3rd Year",
			Mobile:   "9876543211",
		},
	}

	for _, user := range users {
		var existing models.User
		if err := db.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Email, err)
				} else {
					log.Printf("User seeded: %s (ID: %d)", user.Email, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Email)
		}
	}

	log.Println("✅ Seeding complete.")
}

func SeedItems(db *gorm.DB) {
	var seller models.User
	if err := db.Where("email = ?", "student1@rtu.ac.in").First(&seller).Error; err != nil {
		log.Printf("Skipping item seed, no seed user: %v", err)
		return
	}

	items := []models.Item{
		{
			SellerID:    seller.ID,
			Title:       "Engineering Mathematics Vol. 1",
			Description: "Third semester textbook, barely used.",
			Price:       250,
			Category:    "books",
			Condition:   "like-new",
			Status:      models.ItemAvailable,
		},
		{
			SellerID:    seller.ID,
			Title:       "Hero Sprint cycle",
			Description: "Good condition, new tyres last month.",
			Price:       3500,
			Category:    "cycles",
			Condition:   "used",
			Status:      models.ItemAvailable,
		},
	}

	for _, item := range items {
		var existing models.Item
		if err := db.Where("title = ? AND seller_id = ?", item.Title, seller.ID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&item).Error; err != nil {
				log.Printf("Failed to seed item %s: %v", item.Title, err)
			}
		}
	}
}
