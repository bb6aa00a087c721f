package migrations

import (
	"carbonaware/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate は emissions_data テーブルを作成・更新します。
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(&models.EmissionsData{}); err != nil {
		logger.Error("Error migrating tables", zap.Error(err))
		return err
	}
	logger.Info("emissions_data table migrated successfully")
	return nil
}
