package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/littleboyzz/Billiard-Plus-App/models"
	"github.com/littleboyzz/Billiard-Plus-App/utils"
)

func TestMigrateSeedsOnce(t *testing.T) {
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	assert.NoError(t, Migrate(db))

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(5), count)

	// A second run must not duplicate the catalog.
	assert.NoError(t, Migrate(db))
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(5), count)
}
