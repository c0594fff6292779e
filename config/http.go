package config

type HTTP struct {
	// 呼叫上游的逾時秒數，0 表示不設逾時
	Timeout int `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
}
