package utils

import (
	"testing"
	"time"

	"carbonaware/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCronCleanerSchedulesDailyJob(t *testing.T) {
	c, err := CronCleaner(nil, 30, zap.NewNop())
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}

func TestPurgeEmissionsData(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	// インメモリDBは接続ごとに別物になるので1接続に固定
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.EmissionsData{}))

	now := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.EmissionsData{
		{Location: "eastus", Time: now.AddDate(0, 0, -40), Rating: 100},
		{Location: "eastus", Time: now.AddDate(0, 0, -31), Rating: 100},
		{Location: "eastus", Time: now.AddDate(0, 0, -30), Rating: 100},
		{Location: "westus", Time: now.AddDate(0, 0, -1), Rating: 100},
	}
	require.NoError(t, db.Create(&rows).Error)

	deleted, err := PurgeEmissionsData(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining []models.EmissionsData
	require.NoError(t, db.Order("time asc").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.True(t, remaining[0].Time.Equal(now.AddDate(0, 0, -30)))
	assert.True(t, remaining[1].Time.Equal(now.AddDate(0, 0, -1)))
}
