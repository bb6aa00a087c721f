package watttime

import (
	"context"
	"fmt"
	"time"

	"carbonaware/models"
	"carbonaware/plugins"

	"go.uber.org/zap"
)

// WattTime のデータは5分間隔
const defaultWindow = 5 * time.Minute

// Plugin adapts the WattTime API to plugins.CarbonAware.
// Each location is used as a balancing authority abbreviation.
type Plugin struct {
	client *Client
	logger *zap.Logger
}

// NewPlugin は WattTime クライアントからプラグインを生成します。
func NewPlugin(client *Client, logger *zap.Logger) *Plugin {
	return &Plugin{client: client, logger: logger}
}

func (p *Plugin) GetEmissionsData(ctx context.Context, props models.Props) ([]models.EmissionsData, error) {
	locations, err := plugins.Locations(props)
	if err != nil {
		return nil, err
	}
	start, err := plugins.Start(props)
	if err != nil {
		return nil, err
	}
	end, hasEnd, err := plugins.End(props)
	if err != nil {
		return nil, err
	}
	duration, err := plugins.Duration(props)
	if err != nil {
		return nil, err
	}
	if !hasEnd {
		end = start.Add(defaultWindow)
		if duration > 0 {
			end = start.Add(time.Duration(duration) * time.Minute)
		}
	}

	data := []models.EmissionsData{}
	for _, location := range locations {
		points, err := p.client.GetData(ctx, location, start, end)
		if err != nil {
			return nil, fmt.Errorf("get data for %s: %w", location, err)
		}
		p.logger.Debug("WattTime data received", zap.String("ba", location), zap.Int("points", len(points)))
		for _, point := range points {
			data = append(data, toEmissionsData(point))
		}
	}

	if plugins.Lowest(props) {
		return plugins.LowestRatings(data), nil
	}
	return data, nil
}

func toEmissionsData(point GridEmissionDataPoint) models.EmissionsData {
	duration := 0
	if point.Frequency != nil {
		duration = *point.Frequency / 60
	}
	return models.EmissionsData{
		Location: point.BalancingAuthorityAbbreviation,
		Time:     point.PointTime,
		Rating:   point.Value,
		Duration: duration,
	}
}
