// Package bluez implements the a2dp.Stack backend on top of the BlueZ
// system D-Bus API.
package bluez

import (
	"strings"

	dbus "github.com/godbus/dbus/v5"

	"a2dp-bridge/internal/a2dp"
)

const (
	bluezService        = "org.bluez"
	adapterIface        = "org.bluez.Adapter1"
	deviceIface         = "org.bluez.Device1"
	mediaControlIface   = "org.bluez.MediaControl1"
	mediaTransportIface = "org.bluez.MediaTransport1"
	propsIface          = "org.freedesktop.DBus.Properties"

	// A2dpSinkUUID is the A2DP audio sink profile UUID.
	A2dpSinkUUID = "0000110b-0000-1000-8000-00805f9b34fb"
)

// vendorStatusUnsupported is the raw status reported for vendor extension
// operations, which have no BlueZ transport.
const vendorStatusUnsupported = -1

// A2DP codec IDs from the Bluetooth assigned numbers, as reported by
// MediaTransport1.Codec.
const (
	a2dpCodecSBC    = 0x00
	a2dpCodecMPEG12 = 0x01
	a2dpCodecMPEG24 = 0x02
	a2dpCodecVendor = 0xFF
)

// addrFromPath extracts the device address from a BlueZ object path such as
// /org/bluez/hci0/dev_XX_XX_XX_XX_XX_XX. Transport and endpoint paths
// extend past the device node and are handled too.
func addrFromPath(p dbus.ObjectPath) (a2dp.Address, bool) {
	s := string(p)
	idx := strings.LastIndex(s, "/dev_")
	if idx < 0 {
		return a2dp.Address{}, false
	}
	mac := s[idx+5:]
	if i := strings.IndexByte(mac, '/'); i >= 0 {
		mac = mac[:i]
	}
	mac = strings.ReplaceAll(mac, "_", ":")
	addr, err := a2dp.ParseAddress(mac)
	if err != nil {
		return a2dp.Address{}, false
	}
	return addr, true
}

// devicePath builds the BlueZ object path for a device on the given adapter.
func devicePath(adapter string, addr a2dp.Address) dbus.ObjectPath {
	return dbus.ObjectPath("/org/bluez/" + adapter + "/dev_" + strings.ReplaceAll(addr.String(), ":", "_"))
}

// audioStateFromTransport maps a MediaTransport1.State value to an audio
// state code.
func audioStateFromTransport(state string) (int, bool) {
	switch state {
	case "idle":
		return a2dp.AudioStateStopped, true
	case "pending":
		return a2dp.AudioStateRemoteSuspend, true
	case "active":
		return a2dp.AudioStateStarted, true
	default:
		return 0, false
	}
}

// codecConfigFromTransportCodec builds a codec configuration from a
// MediaTransport1.Codec byte.
func codecConfigFromTransportCodec(c byte) a2dp.CodecConfig {
	switch c {
	case a2dpCodecSBC:
		return a2dp.CodecConfig{CodecType: a2dp.CodecTypeSBC, Priority: a2dp.CodecPriorityDefault}
	case a2dpCodecMPEG24:
		return a2dp.CodecConfig{CodecType: a2dp.CodecTypeAAC, Priority: a2dp.CodecPriorityDefault}
	default:
		// MPEG-1,2 audio and vendor codecs are not distinguishable from the
		// transport codec byte alone.
		return a2dp.CodecConfig{CodecType: a2dp.CodecTypeInvalid}
	}
}
