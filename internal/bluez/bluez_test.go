package bluez

import (
	"testing"

	dbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a2dp-bridge/internal/a2dp"
)

func TestAddrFromPath(t *testing.T) {
	addr, ok := addrFromPath(dbus.ObjectPath("/org/bluez/hci0/dev_00_1B_44_11_3A_B7"))
	require.True(t, ok)
	assert.Equal(t, "00:1B:44:11:3A:B7", addr.String())

	// Transport paths extend past the device node.
	addr, ok = addrFromPath(dbus.ObjectPath("/org/bluez/hci0/dev_00_1B_44_11_3A_B7/sep1/fd0"))
	require.True(t, ok)
	assert.Equal(t, "00:1B:44:11:3A:B7", addr.String())

	_, ok = addrFromPath(dbus.ObjectPath("/org/bluez/hci0"))
	assert.False(t, ok)

	_, ok = addrFromPath(dbus.ObjectPath("/org/bluez/hci0/dev_garbage"))
	assert.False(t, ok)
}

func TestDevicePath(t *testing.T) {
	addr, err := a2dp.ParseAddress("00:1B:44:11:3A:B7")
	require.NoError(t, err)
	assert.Equal(t,
		dbus.ObjectPath("/org/bluez/hci0/dev_00_1B_44_11_3A_B7"),
		devicePath("hci0", addr))
}

func TestAddrFromPathRoundTrip(t *testing.T) {
	addr := a2dp.Address{0xA0, 0xB1, 0xC2, 0xD3, 0xE4, 0xF5}
	got, ok := addrFromPath(devicePath("hci1", addr))
	require.True(t, ok)
	assert.Equal(t, addr, got)
}

func TestAudioStateFromTransport(t *testing.T) {
	state, ok := audioStateFromTransport("idle")
	require.True(t, ok)
	assert.Equal(t, a2dp.AudioStateStopped, state)

	state, ok = audioStateFromTransport("pending")
	require.True(t, ok)
	assert.Equal(t, a2dp.AudioStateRemoteSuspend, state)

	state, ok = audioStateFromTransport("active")
	require.True(t, ok)
	assert.Equal(t, a2dp.AudioStateStarted, state)

	_, ok = audioStateFromTransport("bogus")
	assert.False(t, ok)
}

func TestCodecConfigFromTransportCodec(t *testing.T) {
	assert.Equal(t, a2dp.CodecTypeSBC, codecConfigFromTransportCodec(a2dpCodecSBC).CodecType)
	assert.Equal(t, a2dp.CodecTypeAAC, codecConfigFromTransportCodec(a2dpCodecMPEG24).CodecType)
	assert.Equal(t, a2dp.CodecTypeInvalid, codecConfigFromTransportCodec(a2dpCodecVendor).CodecType)
	assert.Equal(t, a2dp.CodecTypeInvalid, codecConfigFromTransportCodec(a2dpCodecMPEG12).CodecType)
}
