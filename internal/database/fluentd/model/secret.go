package model

// SecretAuditLog 金鑰異動紀錄，只保留遮罩後的預覽
type SecretAuditLog struct {
	RequestID   string `json:"request_id,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	// save / clear
	Action  string `json:"action"`
	Driver  string `json:"driver"`
	Preview string `json:"preview,omitempty"`
	// http / cli
	Actor    string `json:"actor"`
	Version  string `json:"version"`
	LoggedAt string `json:"logged_at"`
}
