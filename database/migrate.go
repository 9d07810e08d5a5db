package database

import (
	"gorm.io/gorm"

	"github.com/littleboyzz/Billiard-Plus-App/models"
	"github.com/littleboyzz/Billiard-Plus-App/utils"
)

// Migrate creates the ledger and catalog tables and seeds the catalog on
// first run.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Transaction{},
		&models.MenuItem{},
	); err != nil {
		return err
	}
	return seedMenu(db)
}

// seedMenu loads the venue's starting catalog. Idempotent: it only runs
// against an empty menu_items table.
func seedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.MenuItem{
		{Name: "Cơm rang dưa bò", Price: 35000, Kind: models.KindFood},
		{Name: "Coca Cola", Price: 45000, Kind: models.KindDrink},
		{Name: "Trà đá", Price: 0, Kind: models.KindDrink},
		{Name: "bida", Price: 40000, Kind: models.KindEntertainment, Unit: "/1 giờ"},
		{Name: "Giờ chơi thường", Price: 0, Kind: models.KindEntertainment, Unit: "/1 phút"},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded menu catalog with %d items", len(items))
	return nil
}
