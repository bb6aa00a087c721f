package plugins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carbonaware/models"
)

// CarbonAware は排出量データを取得するプラグインのインターフェースです。
type CarbonAware interface {
	GetEmissionsData(ctx context.Context, props models.Props) ([]models.EmissionsData, error)
}

var ErrInvalidProperty = errors.New("invalid property")

// Locations returns the locations list, or an empty list when the key is absent.
func Locations(props models.Props) ([]string, error) {
	v, ok := props[models.PropLocations]
	if !ok || v == nil {
		return []string{}, nil
	}
	locations, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T", ErrInvalidProperty, models.PropLocations, v)
	}
	return locations, nil
}

// Start returns the start of the time window. A missing start means now.
func Start(props models.Props) (time.Time, error) {
	v, ok := props[models.PropStart]
	if !ok || v == nil {
		return time.Now(), nil
	}
	start, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s is %T", ErrInvalidProperty, models.PropStart, v)
	}
	return start, nil
}

// End reports the end of the time window and whether one was given.
func End(props models.Props) (time.Time, bool, error) {
	v, ok := props[models.PropEnd]
	if !ok || v == nil {
		return time.Time{}, false, nil
	}
	end, ok := v.(time.Time)
	if !ok {
		return time.Time{}, false, fmt.Errorf("%w: %s is %T", ErrInvalidProperty, models.PropEnd, v)
	}
	return end, true, nil
}

// Duration returns the duration in minutes.
func Duration(props models.Props) (int, error) {
	v, ok := props[models.PropDuration]
	if !ok || v == nil {
		return 0, nil
	}
	d, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T", ErrInvalidProperty, models.PropDuration, v)
	}
	return d, nil
}

func Lowest(props models.Props) bool {
	lowest, _ := props[models.PropLowest].(bool)
	return lowest
}

// LowestRatings は最小の rating を持つレコードをすべて返します。
func LowestRatings(data []models.EmissionsData) []models.EmissionsData {
	if len(data) == 0 {
		return []models.EmissionsData{}
	}
	lowest := data[0].Rating
	for _, d := range data[1:] {
		if d.Rating < lowest {
			lowest = d.Rating
		}
	}
	result := []models.EmissionsData{}
	for _, d := range data {
		if d.Rating == lowest {
			result = append(result, d)
		}
	}
	return result
}
