package watttime

import "time"

// LoginResult は WattTime のログインレスポンスです。
// Token は以降のリクエストで使う Bearer トークン。
type LoginResult struct {
	Token string `json:"token"`
}

// GridEmissionDataPoint は /data エンドポイントが返す1件のデータです。
type GridEmissionDataPoint struct {
	BalancingAuthorityAbbreviation string    `json:"ba"`
	Datatype                       string    `json:"datatype"`
	Frequency                      *int      `json:"frequency,omitempty"` // 秒
	Market                         string    `json:"market"`
	PointTime                      time.Time `json:"point_time"`
	Value                          float64   `json:"value"`
	Version                        string    `json:"version"`
}
