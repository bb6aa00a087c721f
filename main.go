package main

import (
	"time"

	"go.uber.org/zap"

	"carbonaware/database"   //PostgreSQLとRedisの初期化、設定の読み込み
	"carbonaware/handlers"   //排出量APIのHTTPハンドラ
	"carbonaware/migrations" //テーブルのマイグレーション
	"carbonaware/models"     //モデル定義
	"carbonaware/plugins"    //プラグインインターフェースとDBプラグイン
	"carbonaware/utils"      //ロガーの初期化とCronジョブ(古いデータの定期削除)
	"carbonaware/watttime"   //WattTimeデータソース

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config, err := database.LoadConfig("config.json")
	if err != nil {
		panic(err) // ロガー初期化前なので panic
	}

	logger, err := utils.InitLogger(config) // ロガーの初期化
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // ロガーのクリーンアップ

	// 設定に応じてデータソースのプラグインを選択
	var plugin plugins.CarbonAware
	switch config.DataSource {
	case models.DataSourceWattTime:
		rdb, err := database.InitRedis(config, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		defer rdb.Close()

		tokens := watttime.NewRedisTokenStore(rdb, config.WattTimeUsername)
		client := watttime.NewClient(config.WattTimeBaseURL, config.WattTimeUsername, config.WattTimePassword, tokens, logger)
		plugin = watttime.NewPlugin(client, logger)
	case models.DataSourceDatabase:
		db, err := database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(err))
		}
		if err := migrations.Migrate(db, logger); err != nil {
			logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
		}

		// クーロンスケジューラのセットアップと呼び出し
		cleaner, err := utils.CronCleaner(db, config.RetentionDays, logger)
		if err != nil {
			logger.Fatal("Cronジョブの登録に失敗しました", zap.Error(err))
		}
		defer cleaner.Stop()

		plugin = plugins.NewDatabasePlugin(db, logger)
	default:
		logger.Fatal("Unknown data source", zap.String("data_source", config.DataSource))
	}

	controller, err := handlers.NewEmissionsController(logger, plugin)
	if err != nil {
		logger.Fatal("Failed to create controller", zap.Error(err))
	}

	gin.SetMode(config.GinMode)
	router := gin.New()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	corsConfig := cors.Config{
		AllowOrigins:  config.AllowOrigins,
		AllowMethods:  []string{"GET"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", utils.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", utils.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handlers.RegisterRoutes(router, controller)

	logger.Info("Starting server",
		zap.String("address", config.ServerAddress),
		zap.String("data_source", config.DataSource),
	)
	if err := router.Run(config.ServerAddress); err != nil {
		logger.Fatal("Failed to run server", zap.Error(err))
	}
}
