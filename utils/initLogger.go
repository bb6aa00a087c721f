package utils

import (
	"os"
	"time"

	"carbonaware/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const RequestIDHeader = "X-Request-ID"

// ロガーを初期化
// log_path が設定されていれば標準出力に加えてローテーションするファイルにも書き込む
func InitLogger(config models.Config) (*zap.Logger, error) {
	if config.LogPath == "" {
		return zap.NewProduction()
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	fileSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   config.LogPath,
		MaxSize:    10, // MB
		MaxBackups: 10,
		MaxAge:     7, // 日
		LocalTime:  true,
	})
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zapcore.InfoLevel),
		zapcore.NewCore(encoder, fileSyncer, zapcore.InfoLevel),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// Gin のミドルウェア用関数で、リクエストのログを取得します。
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
		)
	}
}
