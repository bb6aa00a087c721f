package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"carbonaware/models"
	"carbonaware/plugins"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmissionsController は /emissions 以下のリクエストをプラグインへ中継します。
type EmissionsController struct {
	logger *zap.Logger
	plugin plugins.CarbonAware
}

// NewEmissionsController はロガーとプラグインからコントローラを生成します。
func NewEmissionsController(logger *zap.Logger, plugin plugins.CarbonAware) (*EmissionsController, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if plugin == nil {
		return nil, errors.New("plugin is required")
	}
	return &EmissionsController{logger: logger, plugin: plugin}, nil
}

// time / toTime は文字列で受け取り parseQueryTime で解釈する
type locationsQuery struct {
	Locations       []string `form:"locations"`
	Time            string   `form:"time"`
	ToTime          string   `form:"toTime"`
	DurationMinutes int      `form:"durationMinutes"`
}

type locationQuery struct {
	Location        string `form:"location" binding:"required"`
	Time            string `form:"time"`
	ToTime          string `form:"toTime"`
	DurationMinutes int    `form:"durationMinutes"`
}

// オフセットの無い時刻は UTC として扱う
var queryTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// GetBestEmissionsDataForLocationsByTime は指定した地域・時間帯の中で最も排出量の少ないデータを返します。
func (ec *EmissionsController) GetBestEmissionsDataForLocationsByTime(c *gin.Context) {
	var q locationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	props, err := newProps(q.Locations, q.Time, q.ToTime, q.DurationMinutes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	props[models.PropLowest] = true
	ec.getEmissionsData(c, props)
}

// GetEmissionsDataForLocationsByTime は指定した地域・時間帯ごとの排出量データを返します。
func (ec *EmissionsController) GetEmissionsDataForLocationsByTime(c *gin.Context) {
	var q locationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	props, err := newProps(q.Locations, q.Time, q.ToTime, q.DurationMinutes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ec.getEmissionsData(c, props)
}

// GetEmissionsDataForLocationByTime は単一地域の排出量データを返します。
func (ec *EmissionsController) GetEmissionsDataForLocationByTime(c *gin.Context) {
	var q locationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	props, err := newProps([]string{q.Location}, q.Time, q.ToTime, q.DurationMinutes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ec.getEmissionsData(c, props)
}

func newProps(locations []string, start, end string, durationMinutes int) (models.Props, error) {
	if locations == nil {
		locations = []string{}
	}
	props := models.Props{
		models.PropLocations: locations,
		models.PropStart:     time.Now(),
		models.PropDuration:  durationMinutes,
	}
	// 空のクエリ値 (?time=) は未指定として扱う
	if start != "" {
		t, err := parseQueryTime("time", start)
		if err != nil {
			return nil, err
		}
		props[models.PropStart] = t
	}
	if end != "" {
		t, err := parseQueryTime("toTime", end)
		if err != nil {
			return nil, err
		}
		props[models.PropEnd] = t
	}
	return props, nil
}

func parseQueryTime(name, value string) (time.Time, error) {
	// エンコードされていない "+01:00" はデコードで空白になる
	value = strings.TrimSpace(value)
	if strings.Contains(value, "T") {
		value = strings.Replace(value, " ", "+", 1)
	}
	for _, layout := range queryTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s: %q", name, value)
}

func (ec *EmissionsController) getEmissionsData(c *gin.Context, props models.Props) {
	// NOTE: 認証情報をプロパティに含める場合はログ出力から除外すること
	ec.logger.Info("Calling plugin GetEmissionsData", zap.Any("props", props))

	data, err := ec.callPlugin(c.Request.Context(), props)
	if err != nil {
		ec.logger.Error("Error occurred during plugin execution", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"type":  fmt.Sprintf("%T", err),
		})
		return
	}

	if len(data) == 0 {
		ec.logger.Info("Plugin call returned empty result")
		c.Status(http.StatusNoContent)
		return
	}

	ec.logger.Info("Plugin call successful", zap.Int("count", len(data)))
	c.JSON(http.StatusOK, data)
}

// callPlugin はプラグイン内の panic もエラーとして返します。
func (ec *EmissionsController) callPlugin(ctx context.Context, props models.Props) (data []models.EmissionsData, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("plugin panic: %v", r)
		}
	}()
	return ec.plugin.GetEmissionsData(ctx, props)
}
