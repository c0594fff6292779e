package core

// ProviderName
type ProviderName string

const (
	ProviderOpenAI ProviderName = "openai"
)

type OpenAIEndpoint string

const (
	OpenAIChatEndpoint          OpenAIEndpoint = "/chat/completions"
	OpenAITranscriptionEndpoint OpenAIEndpoint = "/audio/transcriptions"
)

// Endpoint 對外開放的 /api 端點
type Endpoint string

const (
	EndpointChat       Endpoint = "chat"
	EndpointTranscribe Endpoint = "transcribe"
	EndpointStatus     Endpoint = "status"
	EndpointSettings   Endpoint = "settings"
)

// SecretSource 金鑰來源
type SecretSource string

const (
	SecretSourceNone        SecretSource = ""
	SecretSourceEnvironment SecretSource = "environment"
	SecretSourceStorage     SecretSource = "storage"
)

const (
	// 未指定溫度時送往上游的預設值
	DefaultChatTemperature = 0.6
	// 轉錄結果為空時回傳的文字
	NoSpeechDetectedText = "No speech was detected in the clip."
	// 上游連線失敗時對外訊息
	UpstreamUnavailableMessage = "Upstream service unavailable"
)
