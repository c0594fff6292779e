package core

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBVoxrelay MongoDatabaseName = "voxrelay"
)

const (
	MongoCollectionProviderSecrets MongoCollection = "provider_secrets"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName   RedisKey = "voxrelay"    // 伺服器名稱
	RedisKeySecretWriter RedisKey = "secret_lock" // 金鑰寫入鎖
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
	FluentUsage     FluentdSubTag = "voxrelay_usage_log"
	FluentSecret    FluentdSubTag = "voxrelay_secret_log"
)
