package config

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	HTTP      HTTP            `mapstructure:"HTTP" json:"http" yaml:"http"`
	OpenAI    OpenAI          `mapstructure:"OPENAI" json:"openai" yaml:"openai"`
	Storage   Storage         `mapstructure:"STORAGE" json:"storage" yaml:"storage"`
	Cors      Cors            `mapstructure:"CORS" json:"cors" yaml:"cors"`
	Guard     Guard           `mapstructure:"GUARD" json:"guard" yaml:"guard"`
	Cron      Cron            `mapstructure:"CRON" json:"cron" yaml:"cron"`
	Redis     Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	MongoDB   MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
}
