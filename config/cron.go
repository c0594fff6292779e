package config

type Cron struct {
	// 金鑰巡檢排程，空字串使用 @every 1m，"-" 停用
	SecretProbe string `mapstructure:"SECRET_PROBE" json:"secret_probe" yaml:"secret_probe"`
}
