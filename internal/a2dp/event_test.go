package a2dp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "none", EventTypeNone.String())
	assert.Equal(t, "connection_state_changed", EventTypeConnectionStateChanged.String())
	assert.Equal(t, "audio_state_changed", EventTypeAudioStateChanged.String())
	assert.Equal(t, "codec_config_changed", EventTypeCodecConfigChanged.String())
	assert.Equal(t, "EventType(42)", EventType(42).String())
}

func TestOptionalCodecsPrefString(t *testing.T) {
	assert.Equal(t, "unknown", OptionalCodecsPrefUnknown.String())
	assert.Equal(t, "disabled", OptionalCodecsPrefDisabled.String())
	assert.Equal(t, "enabled", OptionalCodecsPrefEnabled.String())
}

func TestStackEventString(t *testing.T) {
	dev := &Device{Addr: Address{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}}

	ev := StackEvent{Type: EventTypeConnectionStateChanged, Device: dev, State: ConnectionStateConnected}
	assert.Contains(t, ev.String(), "connection_state_changed")
	assert.Contains(t, ev.String(), "AA:BB:CC:DD:EE:FF")
	assert.Contains(t, ev.String(), "state=2")

	ev = StackEvent{
		Type:        EventTypeCodecConfigChanged,
		Device:      dev,
		CodecStatus: &CodecStatus{ActiveConfig: CodecConfig{CodecType: CodecTypeLDAC}},
	}
	assert.Contains(t, ev.String(), "codec_config_changed")
	assert.Contains(t, ev.String(), "ldac")
}

func TestCodecName(t *testing.T) {
	assert.Equal(t, "sbc", CodecName(CodecTypeSBC))
	assert.Equal(t, "aac", CodecName(CodecTypeAAC))
	assert.Equal(t, "aptx", CodecName(CodecTypeAptX))
	assert.Equal(t, "aptx-hd", CodecName(CodecTypeAptXHD))
	assert.Equal(t, "ldac", CodecName(CodecTypeLDAC))
	assert.Equal(t, "unknown(1000000)", CodecName(CodecTypeInvalid))
}
