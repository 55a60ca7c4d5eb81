package a2dp

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// zeroAddressText is the sentinel textual form for "no device".
const zeroAddressText = "00:00:00:00:00:00"

// Address is a raw 6-byte Bluetooth device address. The zero value is the
// "no device" sentinel.
type Address [6]byte

// ParseAddress parses a colon-separated textual address such as
// "AA:BB:CC:DD:EE:FF". Hex case is not significant.
func ParseAddress(s string) (Address, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return Address{}, fmt.Errorf("a2dp: malformed address %q", s)
	}
	var a Address
	for i, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil || len(b) != 1 {
			return Address{}, fmt.Errorf("a2dp: malformed address %q", s)
		}
		a[i] = b[0]
	}
	return a, nil
}

// IsZero reports whether a is the "no device" sentinel.
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[0], a[1], a[2], a[3], a[4], a[5])
}

// byteAddress derives the raw address for a device handle. A nil handle maps
// to the zero sentinel by convention rather than failing.
func byteAddress(dev *Device) Address {
	if dev == nil {
		return Address{}
	}
	return dev.Addr
}
