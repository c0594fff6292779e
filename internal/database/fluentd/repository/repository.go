package repository

import (
	"github.com/google/wire"
)

// LogTimeLayout fluentd 紀錄統一時間格式
const LogTimeLayout = "2006-01-02 15:04:05.999999 UTC"

// Wire 依賴提供
var ProviderSet = wire.NewSet(NewLogRepository)
