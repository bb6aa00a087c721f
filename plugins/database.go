package plugins

import (
	"context"
	"fmt"

	"carbonaware/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DatabasePlugin は PostgreSQL に保存された排出量データを検索します。
type DatabasePlugin struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDatabasePlugin は gorm の接続から DatabasePlugin を生成します。
func NewDatabasePlugin(db *gorm.DB, logger *zap.Logger) *DatabasePlugin {
	return &DatabasePlugin{db: db, logger: logger}
}

func (p *DatabasePlugin) GetEmissionsData(ctx context.Context, props models.Props) ([]models.EmissionsData, error) {
	locations, err := Locations(props)
	if err != nil {
		return nil, err
	}
	start, err := Start(props)
	if err != nil {
		return nil, err
	}
	end, hasEnd, err := End(props)
	if err != nil {
		return nil, err
	}
	duration, err := Duration(props)
	if err != nil {
		return nil, err
	}

	if len(locations) == 0 {
		return []models.EmissionsData{}, nil
	}

	query := p.db.WithContext(ctx).
		Model(&models.EmissionsData{}).
		Where("location IN ?", locations).
		Where("time >= ?", start)
	if hasEnd {
		query = query.Where("time < ?", end)
	}
	if duration > 0 {
		query = query.Where("duration = ?", duration)
	}

	var data []models.EmissionsData
	if err := query.Order("time asc, location asc").Find(&data).Error; err != nil {
		p.logger.Error("排出量データの取得に失敗しました", zap.Error(err))
		return nil, fmt.Errorf("query emissions data: %w", err)
	}

	if Lowest(props) {
		return LowestRatings(data), nil
	}
	return data, nil
}
