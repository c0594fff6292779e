package database

import (
	client "voxrelay/internal/database/client"
	fileRepo "voxrelay/internal/database/file/repository"
	fluentdRepo "voxrelay/internal/database/fluentd/repository"
	mongoRepo "voxrelay/internal/database/mongodb/repository"
	redisRepo "voxrelay/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	fileRepo.ProviderSet,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
