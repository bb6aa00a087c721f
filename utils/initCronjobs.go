package utils

import (
	"time"

	"carbonaware/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CronCleaner は保存期間を過ぎた排出量データを毎日削除するジョブを開始します。
func CronCleaner(db *gorm.DB, retentionDays int, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		logger.Info("古い排出量データを削除する処理を開始")
		deleted, err := PurgeEmissionsData(db, time.Now().AddDate(0, 0, -retentionDays))
		if err != nil {
			logger.Error("排出量データの削除に失敗しました", zap.Error(err))
			return
		}
		logger.Info("排出量データの削除完了", zap.Int64("rows_deleted", deleted))
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

// PurgeEmissionsData deletes rows whose time is before cutoff.
func PurgeEmissionsData(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("time < ?", cutoff).Delete(&models.EmissionsData{})
	return result.RowsAffected, result.Error
}
