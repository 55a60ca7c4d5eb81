package a2dp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("00:1B:44:11:3A:B7")
	require.NoError(t, err)
	assert.Equal(t, Address{0x00, 0x1B, 0x44, 0x11, 0x3A, 0xB7}, addr)
	assert.Equal(t, "00:1B:44:11:3A:B7", addr.String())
}

func TestParseAddressLowercase(t *testing.T) {
	addr, err := ParseAddress("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", addr.String())
}

func TestParseAddressMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"00:11:22:33:44",
		"00:11:22:33:44:55:66",
		"0011:22:33:44:55",
		"zz:11:22:33:44:55",
		"00-11-22-33-44-55",
	} {
		_, err := ParseAddress(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestZeroAddressSentinel(t *testing.T) {
	var a Address
	assert.True(t, a.IsZero())
	assert.Equal(t, zeroAddressText, a.String())

	parsed, err := ParseAddress(zeroAddressText)
	require.NoError(t, err)
	assert.True(t, parsed.IsZero())
}

func TestByteAddress(t *testing.T) {
	addr := Address{0x10, 0x20, 0x30, 0x40, 0x50, 0x60}
	dev := &Device{Addr: addr, Name: "headset"}
	assert.Equal(t, addr, byteAddress(dev))

	// The nil handle always derives the all-zero sentinel.
	assert.Equal(t, Address{}, byteAddress(nil))
}
