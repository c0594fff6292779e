package service

import (
	"voxrelay/internal/core"
	"voxrelay/internal/service/audio"
	"voxrelay/internal/service/chat"
	"voxrelay/internal/service/upstream"

	"github.com/google/wire"
)

// 這裡只用一個 provider 實例化 Registry 並同時註冊
var ProviderSet = wire.NewSet(
	NewHealthService,
	NewSecretStore,
	NewLocker,
	NewSecretService,
	upstream.ProviderSet,
	chat.NewOpenAIService,
	audio.NewOpenAIService,
	ProvideRegistryWithServices,
)

// ProvideRegistryWithServices
func ProvideRegistryWithServices(
	openAIChat chat.Service,
	openAIAudio audio.Service,
) *Registry {
	reg := &Registry{
		ChatServices:  make(map[core.ProviderName]chat.Service),
		AudioServices: make(map[core.ProviderName]audio.Service),
	}
	reg.RegisterChat(core.ProviderOpenAI, openAIChat)
	reg.RegisterAudio(core.ProviderOpenAI, openAIAudio)
	return reg
}
