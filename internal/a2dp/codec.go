package a2dp

import "fmt"

// Source codec type identifiers.
const (
	CodecTypeSBC = iota
	CodecTypeAAC
	CodecTypeAptX
	CodecTypeAptXHD
	CodecTypeLDAC
	CodecTypeMax

	CodecTypeInvalid = 1000 * 1000
)

// Codec selection priorities.
const (
	CodecPriorityDisabled = -1
	CodecPriorityDefault  = 0
	CodecPriorityHighest  = 1000 * 1000
)

// Sample rate capability bits.
const (
	SampleRateNone   = 0
	SampleRate44100  = 0x1
	SampleRate48000  = 0x2
	SampleRate88200  = 0x4
	SampleRate96000  = 0x8
	SampleRate176400 = 0x10
	SampleRate192000 = 0x20
)

// Bits-per-sample capability bits.
const (
	BitsPerSampleNone = 0
	BitsPerSample16   = 0x1
	BitsPerSample24   = 0x2
	BitsPerSample32   = 0x4
)

// Channel mode capability bits.
const (
	ChannelModeNone   = 0
	ChannelModeMono   = 0x1
	ChannelModeStereo = 0x2
)

// CodecName returns a short lowercase name for a codec type identifier.
func CodecName(codecType int) string {
	switch codecType {
	case CodecTypeSBC:
		return "sbc"
	case CodecTypeAAC:
		return "aac"
	case CodecTypeAptX:
		return "aptx"
	case CodecTypeAptXHD:
		return "aptx-hd"
	case CodecTypeLDAC:
		return "ldac"
	default:
		return fmt.Sprintf("unknown(%d)", codecType)
	}
}

// CodecConfig describes one codec configuration or capability.
type CodecConfig struct {
	CodecType     int
	Priority      int
	SampleRate    int
	BitsPerSample int
	ChannelMode   int

	// Codec-specific values, opaque to the bridge.
	Specific1 int64
	Specific2 int64
	Specific3 int64
	Specific4 int64
}

func (c CodecConfig) String() string {
	return fmt.Sprintf("{codec=%s priority=%d rate=0x%x bits=0x%x channels=0x%x}",
		CodecName(c.CodecType), c.Priority, c.SampleRate, c.BitsPerSample, c.ChannelMode)
}

// CodecStatus aggregates the active codec configuration with the locally
// supported and currently selectable capability sets.
type CodecStatus struct {
	ActiveConfig           CodecConfig
	LocalCapabilities      []CodecConfig
	SelectableCapabilities []CodecConfig
}

func (s CodecStatus) String() string {
	return fmt.Sprintf("{active=%v local=%d selectable=%d}",
		s.ActiveConfig, len(s.LocalCapabilities), len(s.SelectableCapabilities))
}

// OptionalCodecsPref is the per-device setting for whether non-mandatory
// codecs should be attempted.
type OptionalCodecsPref int

const (
	OptionalCodecsPrefUnknown  OptionalCodecsPref = -1
	OptionalCodecsPrefDisabled OptionalCodecsPref = 0
	OptionalCodecsPrefEnabled  OptionalCodecsPref = 1
)

func (p OptionalCodecsPref) String() string {
	switch p {
	case OptionalCodecsPrefUnknown:
		return "unknown"
	case OptionalCodecsPrefDisabled:
		return "disabled"
	case OptionalCodecsPrefEnabled:
		return "enabled"
	default:
		return fmt.Sprintf("OptionalCodecsPref(%d)", int(p))
	}
}
