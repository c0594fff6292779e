package service

import "sync/atomic"

type HealthService struct {
	live     atomic.Bool
	ready    atomic.Bool
	draining atomic.Bool
}

func NewHealthService() *HealthService {
	s := &HealthService{}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

// SetReady 進入 Drain 之後不再接受 true
func (s *HealthService) SetReady(v bool) {
	if v && s.draining.Load() {
		return
	}
	s.ready.Store(v)
}

// Drain 開始關機：readiness 固定為 false
func (s *HealthService) Drain() {
	s.draining.Store(true)
	s.ready.Store(false)
}

func (s *HealthService) Draining() bool {
	return s.draining.Load()
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}
