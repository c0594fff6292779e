package service

import (
	"voxrelay/internal/core"
	"voxrelay/internal/service/audio"
	"voxrelay/internal/service/chat"
)

type Registry struct {
	ChatServices  map[core.ProviderName]chat.Service
	AudioServices map[core.ProviderName]audio.Service
}

func (r *Registry) RegisterChat(provider core.ProviderName, service chat.Service) {
	r.ChatServices[provider] = service
}
func (r *Registry) GetChat(provider core.ProviderName) (chat.Service, bool) {
	svc, ok := r.ChatServices[provider]
	return svc, ok
}

func (r *Registry) RegisterAudio(provider core.ProviderName, service audio.Service) {
	r.AudioServices[provider] = service
}
func (r *Registry) GetAudio(provider core.ProviderName) (audio.Service, bool) {
	svc, ok := r.AudioServices[provider]
	return svc, ok
}
