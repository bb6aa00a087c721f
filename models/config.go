package models

// Config 構造体はサーバー、データベース、データソースの設定情報を保持します。
type Config struct {
	ServerAddress string `mapstructure:"server_address"`
	GinMode       string `mapstructure:"gin_mode"`

	DBHost     string `mapstructure:"db_host"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_sslmode"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// "database" または "watttime"
	DataSource       string `mapstructure:"data_source"`
	WattTimeBaseURL  string `mapstructure:"watttime_base_url"`
	WattTimeUsername string `mapstructure:"watttime_username"`
	WattTimePassword string `mapstructure:"watttime_password"`

	LogPath       string   `mapstructure:"log_path"`
	AllowOrigins  []string `mapstructure:"allow_origins"`
	RetentionDays int      `mapstructure:"retention_days"`
}

const (
	DataSourceDatabase = "database"
	DataSourceWattTime = "watttime"
)
