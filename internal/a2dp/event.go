package a2dp

import "fmt"

// EventType tags a StackEvent with the callback it originated from.
type EventType int

const (
	EventTypeNone EventType = iota
	EventTypeConnectionStateChanged
	EventTypeAudioStateChanged
	EventTypeCodecConfigChanged
)

func (t EventType) String() string {
	switch t {
	case EventTypeNone:
		return "none"
	case EventTypeConnectionStateChanged:
		return "connection_state_changed"
	case EventTypeAudioStateChanged:
		return "audio_state_changed"
	case EventTypeCodecConfigChanged:
		return "codec_config_changed"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Connection states reported by the stack.
const (
	ConnectionStateDisconnected = iota
	ConnectionStateConnecting
	ConnectionStateConnected
	ConnectionStateDisconnecting
)

// Audio states reported by the stack.
const (
	AudioStateRemoteSuspend = iota
	AudioStateStopped
	AudioStateStarted
)

// StackEvent is the notification record produced from a stack callback and
// delivered to the registered service. Events are constructed fresh per
// callback invocation and never reused.
type StackEvent struct {
	Type   EventType
	Device *Device

	// State carries the integer state code for connection-state and
	// audio-state events.
	State int

	// CodecStatus is set only for codec-config events.
	CodecStatus *CodecStatus
}

func (e StackEvent) String() string {
	switch e.Type {
	case EventTypeCodecConfigChanged:
		return fmt.Sprintf("{%s device=%s status=%v}", e.Type, e.Device, e.CodecStatus)
	default:
		return fmt.Sprintf("{%s device=%s state=%d}", e.Type, e.Device, e.State)
	}
}
