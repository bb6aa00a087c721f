package models

// Props はリクエストごとに組み立ててプラグインへ渡すプロパティです。
type Props map[string]any

// Props のキー
const (
	PropLocations = "locations"
	PropStart     = "start"
	PropEnd       = "end"
	PropDuration  = "duration"
	PropLowest    = "lowest"
)
