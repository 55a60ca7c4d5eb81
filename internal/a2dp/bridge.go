package a2dp

import (
	"log/slog"
	"sync"

	"a2dp-bridge/internal/telemetry"
)

// Bridge forwards profile-level requests to a Stack and republishes stack
// callbacks as StackEvents to the registered Service.
type Bridge struct {
	stack   Stack
	adapter Adapter
	log     *slog.Logger
	metrics *telemetry.Metrics

	svcMu sync.RWMutex
	svc   Service
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(b *Bridge) { b.log = log }
}

// WithMetrics attaches metric recording to the bridge.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(b *Bridge) { b.metrics = m }
}

// New creates a Bridge over the given stack and adapter. A nil adapter is a
// documented risk, not a guarded precondition: construction still succeeds
// and callbacks fall back to bare address-only device handles.
func New(stack Stack, adapter Adapter, opts ...Option) *Bridge {
	b := &Bridge{
		stack:   stack,
		adapter: adapter,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	if adapter == nil {
		b.log.Error("no bluetooth adapter available")
	}
	return b
}

var (
	defaultMu     sync.Mutex
	defaultBridge *Bridge
)

// Default returns the process-wide bridge, creating it on first call. The
// arguments are consulted only by the creating call; later calls return the
// existing instance regardless.
func Default(stack Stack, adapter Adapter, opts ...Option) *Bridge {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBridge == nil {
		defaultBridge = New(stack, adapter, opts...)
	}
	return defaultBridge
}

// resetDefault clears the process-wide instance. Test hook.
func resetDefault() {
	defaultMu.Lock()
	defaultBridge = nil
	defaultMu.Unlock()
}

// RegisterService installs the event consumer. It replaces any previously
// registered service.
func (b *Bridge) RegisterService(svc Service) {
	b.svcMu.Lock()
	b.svc = svc
	b.svcMu.Unlock()
}

// UnregisterService removes the current event consumer. Subsequent events
// are dropped until a service is registered again.
func (b *Bridge) UnregisterService() {
	b.RegisterService(nil)
}

func (b *Bridge) service() Service {
	b.svcMu.RLock()
	defer b.svcMu.RUnlock()
	return b.svc
}

// Init prepares the stack. Must be called before any other operation.
func (b *Bridge) Init(maxConnectedDevices int, priorities, offload []CodecConfig) error {
	b.metrics.NativeCall("init")
	return b.stack.Init(maxConnectedDevices, priorities, offload, b)
}

// Cleanup releases stack-side resources. The bridge itself stays usable
// after a subsequent Init.
func (b *Bridge) Cleanup() {
	b.metrics.NativeCall("cleanup")
	b.stack.Cleanup()
}

// Connect requests a profile connection to the device.
func (b *Bridge) Connect(dev *Device) bool {
	b.metrics.NativeCall("connect")
	return b.stack.Connect(byteAddress(dev))
}

// Disconnect requests a profile disconnection from the device.
func (b *Bridge) Disconnect(dev *Device) bool {
	b.metrics.NativeCall("disconnect")
	return b.stack.Disconnect(byteAddress(dev))
}

// SetSilence toggles silence mode for a connected device.
func (b *Bridge) SetSilence(dev *Device, silence bool) bool {
	b.metrics.NativeCall("set_silence")
	return b.stack.SetSilence(byteAddress(dev), silence)
}

// SetActive marks the device as the active audio route.
func (b *Bridge) SetActive(dev *Device) bool {
	b.metrics.NativeCall("set_active")
	return b.stack.SetActive(byteAddress(dev))
}

// SetCodecConfigPreference pushes the codec preference ordering for the
// device.
func (b *Bridge) SetCodecConfigPreference(dev *Device, configs []CodecConfig) bool {
	b.metrics.NativeCall("set_codec_config_preference")
	return b.stack.SetCodecConfigPreference(byteAddress(dev), configs)
}

// Vendor codec extension accessors. The meta and A2DP-codec-specific reads
// go through the same stack getter as the AR read, and the meta write shares
// the AR setter; the vendor stack keeps a single representation underneath.

// VendorExtendAPIVersion reads the vendor extension API version into ver.
func (b *Bridge) VendorExtendAPIVersion(dev *Device, ver []byte) int {
	b.metrics.NativeCall("vendor_extend_api_version")
	return b.stack.VendorExtendAPIVersion(byteAddress(dev), ver)
}

// VendorCodecConfigAR reads the vendor AR codec configuration into buf.
func (b *Bridge) VendorCodecConfigAR(dev *Device, buf []byte) int {
	b.metrics.NativeCall("vendor_codec_config_ar")
	return b.stack.GetVendorCodecConfig(byteAddress(dev), buf)
}

// SetVendorCodecConfigAR writes the vendor AR codec configuration from buf.
func (b *Bridge) SetVendorCodecConfigAR(dev *Device, buf []byte) int {
	b.metrics.NativeCall("set_vendor_codec_config_ar")
	return b.stack.SetVendorCodecConfig(byteAddress(dev), buf)
}

// VendorCodecConfigMeta reads the vendor meta codec configuration into buf.
func (b *Bridge) VendorCodecConfigMeta(dev *Device, buf []byte) int {
	b.metrics.NativeCall("vendor_codec_config_meta")
	return b.stack.GetVendorCodecConfig(byteAddress(dev), buf)
}

// VendorCodecConfigA2dpSpecific reads the vendor A2DP-codec-specific
// configuration into buf.
func (b *Bridge) VendorCodecConfigA2dpSpecific(dev *Device, buf []byte) int {
	b.metrics.NativeCall("vendor_codec_config_a2dp_specific")
	return b.stack.GetVendorCodecConfig(byteAddress(dev), buf)
}

// SetVendorCodecConfigMeta writes the vendor meta codec configuration from
// buf.
func (b *Bridge) SetVendorCodecConfigMeta(dev *Device, buf []byte) int {
	b.metrics.NativeCall("set_vendor_codec_config_meta")
	return b.stack.SetVendorCodecConfig(byteAddress(dev), buf)
}

// SetVendorSensorData pushes vendor sensor data for the device.
func (b *Bridge) SetVendorSensorData(dev *Device, data []byte) {
	b.metrics.NativeCall("set_vendor_sensor_data")
	b.stack.SetVendorSensorData(byteAddress(dev), data)
}

// device resolves an address back to a handle. With no adapter available the
// handle carries only the address.
func (b *Bridge) device(addr Address) *Device {
	if b.adapter == nil {
		return &Device{Addr: addr}
	}
	return b.adapter.RemoteDevice(addr)
}

// deliver hands the event to the registered service, or drops it.
func (b *Bridge) deliver(ev StackEvent) {
	svc := b.service()
	if svc == nil {
		b.metrics.EventDropped(ev.Type.String())
		b.log.Warn("event dropped, no service registered", "event", ev.String())
		return
	}
	b.metrics.EventForwarded(ev.Type.String())
	svc.HandleStackEvent(ev)
}

// OnConnectionStateChanged implements Callbacks.
func (b *Bridge) OnConnectionStateChanged(addr Address, state int) {
	ev := StackEvent{
		Type:   EventTypeConnectionStateChanged,
		Device: b.device(addr),
		State:  state,
	}
	b.log.Debug("connection state changed", "event", ev.String())
	b.deliver(ev)
}

// OnAudioStateChanged implements Callbacks.
func (b *Bridge) OnAudioStateChanged(addr Address, state int) {
	ev := StackEvent{
		Type:   EventTypeAudioStateChanged,
		Device: b.device(addr),
		State:  state,
	}
	b.log.Debug("audio state changed", "event", ev.String())
	b.deliver(ev)
}

// OnCodecConfigChanged implements Callbacks.
func (b *Bridge) OnCodecConfigChanged(addr Address, config CodecConfig, local, selectable []CodecConfig) {
	ev := StackEvent{
		Type:   EventTypeCodecConfigChanged,
		Device: b.device(addr),
		CodecStatus: &CodecStatus{
			ActiveConfig:           config,
			LocalCapabilities:      local,
			SelectableCapabilities: selectable,
		},
	}
	b.log.Debug("codec config changed", "event", ev.String())
	b.deliver(ev)
}

// MandatoryCodecPreferred implements Callbacks. It is true only when the
// service explicitly disabled optional codecs for the device; with no
// service registered it stays false so optional codecs remain preferred.
func (b *Bridge) MandatoryCodecPreferred(addr Address) bool {
	svc := b.service()
	if svc == nil {
		b.log.Warn("mandatory codec query, no service registered", "addr", addr.String())
		return false
	}
	pref := svc.OptionalCodecsEnabled(b.device(addr))
	b.log.Debug("mandatory codec query", "addr", addr.String(), "pref", pref.String())
	return pref == OptionalCodecsPrefDisabled
}
