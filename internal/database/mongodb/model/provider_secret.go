package model

import "time"

// ProviderSecret 每個 provider 一筆，_id 即 provider 名稱
type ProviderSecret struct {
	ID        string    `json:"id" bson:"_id"`              // provider 名稱，例如 openai
	APIKey    string    `json:"-" bson:"apiKey"`            // 金鑰原文
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"` // 最後更新時間
}
