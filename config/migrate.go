package config

import (
	"log"

	"github.com/nilesh-dagdi/CampusMart/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Migrate the schema
	err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.WishlistItem{},
		&models.Purchase{},
		&models.Message{},
		&models.OTP{},
	)

	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully...")
	return nil
}

func ResetAndMigrate(db *gorm.DB) error {
	// Drop all tables
	tables := []interface{}{
		&models.User{},
		&models.Item{},
		&models.WishlistItem{},
		&models.Purchase{},
		&models.Message{},
		&models.OTP{},
	}

	if err := db.Migrator().DropTable(tables...); err != nil {
		log.Printf("Failed to drop tables: %v", err)
		return err
	}

	log.Println("All tables dropped successfully.")

	if err := db.AutoMigrate(tables...); err != nil {
		log.Printf("Failed to auto migrate: %v", err)
		return err
	}

	SeedUsers(db)
	SeedItems(db)

	log.Println("Database reset and migration completed successfully.")
	return nil
}
