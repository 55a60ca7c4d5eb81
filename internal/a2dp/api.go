// Package a2dp bridges profile-level requests to an A2DP stack backend and
// republishes stack callbacks as events to a registered service.
//
// The bridge holds no protocol state of its own. Outbound calls resolve the
// device handle to its 6-byte address, forward it to the stack, and return
// the stack's result unchanged. Inbound callbacks construct a fresh
// StackEvent and hand it to the currently registered Service; when no
// service is registered the event is dropped with a log line, never queued.
//
// Thread-safety: outbound calls run on the caller's goroutine and inbound
// callbacks on whatever goroutine the stack uses. The bridge does not
// serialize either direction; ordering, where it matters, belongs to the
// stack below or the service above. The only guarded regions are
// default-instance creation and service registration.
package a2dp

// Stack is the boundary to the A2DP stack backend. Implementations report
// failure through their raw boolean/int results; the bridge never translates
// or wraps them.
type Stack interface {
	// Init prepares the stack and registers the callback sink.
	// Must be called before any other operation.
	Init(maxConnectedDevices int, priorities, offload []CodecConfig, cb Callbacks) error

	// Cleanup releases stack resources. After Cleanup, behavior of other
	// operations is undefined until Init is called again.
	Cleanup()

	// Connect requests a profile connection to the device at addr.
	Connect(addr Address) bool

	// Disconnect requests a profile disconnection from the device at addr.
	Disconnect(addr Address) bool

	// SetSilence toggles silence mode for a connected device.
	SetSilence(addr Address, silence bool) bool

	// SetActive marks the device as the active audio route.
	SetActive(addr Address) bool

	// SetCodecConfigPreference pushes a codec preference ordering.
	SetCodecConfigPreference(addr Address, configs []CodecConfig) bool

	// Vendor codec extension surface. Buffers are filled or consumed in
	// place; the int result is a raw vendor status code.
	VendorExtendAPIVersion(addr Address, ver []byte) int
	GetVendorCodecConfig(addr Address, buf []byte) int
	SetVendorCodecConfig(addr Address, buf []byte) int
	SetVendorSensorData(addr Address, data []byte)
}

// Callbacks is the inbound surface the stack invokes. No return values are
// expected except for the MandatoryCodecPreferred query.
type Callbacks interface {
	OnConnectionStateChanged(addr Address, state int)
	OnAudioStateChanged(addr Address, state int)
	OnCodecConfigChanged(addr Address, config CodecConfig, local, selectable []CodecConfig)

	// MandatoryCodecPreferred reports whether the mandatory codec should be
	// preferred over optional codecs for the device at addr.
	MandatoryCodecPreferred(addr Address) bool
}

// Service consumes stack events and answers per-device codec preference
// queries. Register one with Bridge.RegisterService.
type Service interface {
	// HandleStackEvent receives a freshly constructed event. The event is
	// never reused after delivery.
	HandleStackEvent(ev StackEvent)

	// OptionalCodecsEnabled returns the per-device optional-codec
	// preference setting.
	OptionalCodecsEnabled(dev *Device) OptionalCodecsPref
}

// Adapter resolves raw addresses back to device handles.
type Adapter interface {
	RemoteDevice(addr Address) *Device
}

// Device is a handle to a remote A2DP device.
type Device struct {
	Addr Address
	Name string // optional display name
	Path string // optional backend object path
}

func (d *Device) String() string {
	if d == nil {
		return zeroAddressText
	}
	if d.Name != "" {
		return d.Addr.String() + " (" + d.Name + ")"
	}
	return d.Addr.String()
}
