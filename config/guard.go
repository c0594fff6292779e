package config

// Guard 各端點 proxy token 檢查模式：off / optional / required
type Guard struct {
	Chat       string `mapstructure:"CHAT" json:"chat" yaml:"chat"`
	Transcribe string `mapstructure:"TRANSCRIBE" json:"transcribe" yaml:"transcribe"`
	Settings   string `mapstructure:"SETTINGS" json:"settings" yaml:"settings"`
}
