package service

import "testing"

func TestHealthService_DrainPinsNotReady(t *testing.T) {
	s := NewHealthService()
	if !s.IsLive() || s.IsReady() {
		t.Fatalf("initial live=%v ready=%v", s.IsLive(), s.IsReady())
	}

	s.SetReady(true)
	if !s.IsReady() {
		t.Fatal("SetReady(true) before shutdown should apply")
	}

	s.Drain()
	s.SetReady(true)
	if s.IsReady() || !s.Draining() {
		t.Errorf("after Drain ready=%v draining=%v", s.IsReady(), s.Draining())
	}
	if !s.IsLive() {
		t.Error("Drain should not affect liveness")
	}
}
