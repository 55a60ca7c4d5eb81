// Package service provides a reference consumer for bridge events. It logs
// every event, keeps a plain last-seen snapshot per device, and answers
// optional-codec preference queries from a prefs.Store. It deliberately
// holds no state machine; reacting to transitions is left to callers that
// read the snapshot.
package service

import (
	"context"
	"log/slog"
	"sync"

	"a2dp-bridge/internal/a2dp"
	"a2dp-bridge/internal/prefs"
)

// deviceState is the last-seen snapshot for one device.
type deviceState struct {
	connectionState int
	audioState      int
	codecStatus     *a2dp.CodecStatus
}

// Service implements a2dp.Service.
type Service struct {
	log   *slog.Logger
	store prefs.Store

	mu      sync.RWMutex
	devices map[a2dp.Address]*deviceState
}

// New creates a Service backed by the given preference store. A nil logger
// falls back to slog.Default().
func New(store prefs.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		log:     log,
		store:   store,
		devices: make(map[a2dp.Address]*deviceState),
	}
}

func (s *Service) state(addr a2dp.Address) *deviceState {
	if st, ok := s.devices[addr]; ok {
		return st
	}
	st := &deviceState{connectionState: a2dp.ConnectionStateDisconnected, audioState: a2dp.AudioStateStopped}
	s.devices[addr] = st
	return st
}

// HandleStackEvent implements a2dp.Service.
func (s *Service) HandleStackEvent(ev a2dp.StackEvent) {
	if ev.Device == nil {
		s.log.Warn("stack event without device", "event", ev.String())
		return
	}

	s.mu.Lock()
	st := s.state(ev.Device.Addr)
	switch ev.Type {
	case a2dp.EventTypeConnectionStateChanged:
		st.connectionState = ev.State
	case a2dp.EventTypeAudioStateChanged:
		st.audioState = ev.State
	case a2dp.EventTypeCodecConfigChanged:
		st.codecStatus = ev.CodecStatus
	}
	s.mu.Unlock()

	s.log.Info("stack event", "event", ev.String())
}

// OptionalCodecsEnabled implements a2dp.Service. Store failures and nil
// device handles both report the unknown preference.
func (s *Service) OptionalCodecsEnabled(dev *a2dp.Device) a2dp.OptionalCodecsPref {
	if dev == nil || s.store == nil {
		return a2dp.OptionalCodecsPrefUnknown
	}
	pref, err := s.store.Get(context.Background(), dev.Addr)
	if err != nil {
		s.log.Warn("optional codecs preference lookup failed", "device", dev.String(), "err", err)
		return a2dp.OptionalCodecsPrefUnknown
	}
	return pref
}

// SetOptionalCodecsEnabled stores the per-device preference.
func (s *Service) SetOptionalCodecsEnabled(ctx context.Context, dev *a2dp.Device, pref a2dp.OptionalCodecsPref) error {
	return s.store.Set(ctx, dev.Addr, pref)
}

// ConnectionState returns the last-seen connection state for the device,
// defaulting to disconnected.
func (s *Service) ConnectionState(addr a2dp.Address) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.devices[addr]; ok {
		return st.connectionState
	}
	return a2dp.ConnectionStateDisconnected
}

// AudioState returns the last-seen audio state for the device, defaulting to
// stopped.
func (s *Service) AudioState(addr a2dp.Address) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.devices[addr]; ok {
		return st.audioState
	}
	return a2dp.AudioStateStopped
}

// CodecStatus returns the last-seen codec status for the device, or nil.
func (s *Service) CodecStatus(addr a2dp.Address) *a2dp.CodecStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.devices[addr]; ok {
		return st.codecStatus
	}
	return nil
}
