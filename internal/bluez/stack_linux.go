//go:build linux

package bluez

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	dbus "github.com/godbus/dbus/v5"

	"a2dp-bridge/internal/a2dp"
)

// Stack drives A2DP connections through BlueZ and translates BlueZ property
// signals into a2dp.Callbacks invocations. It also acts as the address
// resolver (a2dp.Adapter) for the bridge.
//
// Operations BlueZ cannot express (silence mode, vendor codec extensions)
// report failure through their raw result; interpreting that is left to the
// layers above.
type Stack struct {
	log         *slog.Logger
	adapterName string

	mu           sync.Mutex
	bus          *dbus.Conn
	adapterPath  dbus.ObjectPath
	cb           a2dp.Callbacks
	maxConnected int
	priorities   []a2dp.CodecConfig
	offload      []a2dp.CodecConfig
	active       a2dp.Address
	initialized  bool
	done         chan struct{}

	// cleanup functions to release resources, executed once in reverse
	// order during Cleanup.
	cleanup []func()
}

// New creates a Stack bound to the named local adapter (e.g. "hci0"). A nil
// logger falls back to slog.Default().
func New(adapterName string, log *slog.Logger) *Stack {
	if log == nil {
		log = slog.Default()
	}
	return &Stack{log: log, adapterName: adapterName}
}

// Init implements a2dp.Stack. It connects to the system bus, verifies the
// adapter object, and starts the signal pump feeding cb.
func (s *Stack) Init(maxConnectedDevices int, priorities, offload []a2dp.CodecConfig, cb a2dp.Callbacks) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return errors.New("bluez: already initialized")
	}

	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("bluez: connect system bus: %w", err)
	}
	s.bus = conn
	// Close the bus last during cleanup.
	s.cleanup = append(s.cleanup, func() { conn.Close() })

	s.adapterPath = dbus.ObjectPath("/org/bluez/" + s.adapterName)
	adapter := conn.Object(bluezService, s.adapterPath)
	if call := adapter.Call(propsIface+".Get", 0, adapterIface, "Powered"); call.Err != nil {
		s.teardownLocked()
		return fmt.Errorf("bluez: adapter %s: %w", s.adapterName, call.Err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(propsIface),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		s.teardownLocked()
		return fmt.Errorf("bluez: AddMatchSignal: %w", err)
	}
	s.cleanup = append(s.cleanup, func() {
		_ = conn.RemoveMatchSignal(
			dbus.WithMatchInterface(propsIface),
			dbus.WithMatchMember("PropertiesChanged"),
		)
	})

	sigCh := make(chan *dbus.Signal, 32)
	conn.Signal(sigCh)
	s.cleanup = append(s.cleanup, func() { conn.RemoveSignal(sigCh) })

	s.done = make(chan struct{})
	done := s.done
	s.cleanup = append(s.cleanup, func() { close(done) })

	s.cb = cb
	s.maxConnected = maxConnectedDevices
	s.priorities = priorities
	s.offload = offload
	s.initialized = true

	go s.pump(sigCh, done)
	s.log.Info("bluez stack initialized",
		"adapter", s.adapterName,
		"max_connected_devices", maxConnectedDevices,
		"codec_priorities", len(priorities))
	return nil
}

// Cleanup implements a2dp.Stack. Redundant calls are allowed.
func (s *Stack) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
}

func (s *Stack) teardownLocked() {
	cleanup := s.cleanup
	s.cleanup = nil
	for i := len(cleanup) - 1; i >= 0; i-- {
		if cleanup[i] != nil {
			cleanup[i]()
		}
	}
	s.bus = nil
	s.cb = nil
	s.done = nil
	s.active = a2dp.Address{}
	s.initialized = false
}

// pump translates PropertiesChanged signals into callbacks until done is
// closed.
func (s *Stack) pump(sigCh <-chan *dbus.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case sig := <-sigCh:
			if sig == nil {
				return
			}
			s.handleSignal(sig)
		}
	}
}

func (s *Stack) handleSignal(sig *dbus.Signal) {
	if sig.Name != propsIface+".PropertiesChanged" || len(sig.Body) < 2 {
		return
	}
	iface, _ := sig.Body[0].(string)
	changed, _ := sig.Body[1].(map[string]dbus.Variant)
	if changed == nil {
		return
	}
	addr, ok := addrFromPath(sig.Path)
	if !ok {
		return
	}

	s.mu.Lock()
	cb := s.cb
	local := append([]a2dp.CodecConfig(nil), s.priorities...)
	s.mu.Unlock()
	if cb == nil {
		return
	}

	switch iface {
	case mediaControlIface:
		if v, ok := changed["Connected"]; ok {
			if connected, ok := v.Value().(bool); ok {
				state := a2dp.ConnectionStateDisconnected
				if connected {
					state = a2dp.ConnectionStateConnected
				}
				cb.OnConnectionStateChanged(addr, state)
			}
		}
	case mediaTransportIface:
		if v, ok := changed["State"]; ok {
			if str, ok := v.Value().(string); ok {
				if state, ok := audioStateFromTransport(str); ok {
					cb.OnAudioStateChanged(addr, state)
				}
			}
		}
		if v, ok := changed["Codec"]; ok {
			if c, ok := v.Value().(byte); ok {
				cb.OnCodecConfigChanged(addr, codecConfigFromTransportCodec(c), local, nil)
			}
		}
	}
}

// deviceObject returns the BlueZ object for the device, or false when the
// stack is not initialized.
func (s *Stack) deviceObject(addr a2dp.Address) (dbus.BusObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, false
	}
	return s.bus.Object(bluezService, devicePath(s.adapterName, addr)), true
}

// Connect implements a2dp.Stack.
func (s *Stack) Connect(addr a2dp.Address) bool {
	obj, ok := s.deviceObject(addr)
	if !ok {
		return false
	}
	if call := obj.Call(deviceIface+".ConnectProfile", 0, A2dpSinkUUID); call.Err != nil {
		s.log.Warn("connect profile failed", "addr", addr.String(), "err", call.Err)
		return false
	}
	return true
}

// Disconnect implements a2dp.Stack.
func (s *Stack) Disconnect(addr a2dp.Address) bool {
	obj, ok := s.deviceObject(addr)
	if !ok {
		return false
	}
	if call := obj.Call(deviceIface+".DisconnectProfile", 0, A2dpSinkUUID); call.Err != nil {
		s.log.Warn("disconnect profile failed", "addr", addr.String(), "err", call.Err)
		return false
	}
	return true
}

// SetSilence implements a2dp.Stack. BlueZ exposes no silence-mode control.
func (s *Stack) SetSilence(addr a2dp.Address, silence bool) bool {
	s.log.Debug("silence mode not supported by bluez", "addr", addr.String(), "silence", silence)
	return false
}

// SetActive implements a2dp.Stack. The device must be connected to become
// the active route.
func (s *Stack) SetActive(addr a2dp.Address) bool {
	obj, ok := s.deviceObject(addr)
	if !ok {
		return false
	}
	var connected dbus.Variant
	call := obj.Call(propsIface+".Get", 0, deviceIface, "Connected")
	if call.Err != nil || call.Store(&connected) != nil {
		return false
	}
	if b, ok := connected.Value().(bool); !ok || !b {
		return false
	}
	s.mu.Lock()
	s.active = addr
	s.mu.Unlock()
	return true
}

// SetCodecConfigPreference implements a2dp.Stack. The ordering replaces the
// table reported as local capabilities on codec change callbacks; BlueZ
// negotiates the endpoint configuration itself.
func (s *Stack) SetCodecConfigPreference(addr a2dp.Address, configs []a2dp.CodecConfig) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return false
	}
	s.priorities = append([]a2dp.CodecConfig(nil), configs...)
	s.log.Debug("codec preference updated", "addr", addr.String(), "configs", len(configs))
	return true
}

// ActiveDevice returns the currently active audio route, zero when none.
func (s *Stack) ActiveDevice() a2dp.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Vendor codec extension operations have no BlueZ transport and report the
// unsupported status unchanged to the caller.

func (s *Stack) VendorExtendAPIVersion(addr a2dp.Address, ver []byte) int {
	return vendorStatusUnsupported
}

func (s *Stack) GetVendorCodecConfig(addr a2dp.Address, buf []byte) int {
	return vendorStatusUnsupported
}

func (s *Stack) SetVendorCodecConfig(addr a2dp.Address, buf []byte) int {
	return vendorStatusUnsupported
}

func (s *Stack) SetVendorSensorData(addr a2dp.Address, data []byte) {
	s.log.Debug("vendor sensor data dropped, no bluez transport", "addr", addr.String(), "bytes", len(data))
}

// RemoteDevice implements a2dp.Adapter. The name is resolved best-effort
// from the BlueZ device object.
func (s *Stack) RemoteDevice(addr a2dp.Address) *a2dp.Device {
	dev := &a2dp.Device{
		Addr: addr,
		Path: string(devicePath(s.adapterName, addr)),
	}
	obj, ok := s.deviceObject(addr)
	if !ok {
		return dev
	}
	var name dbus.Variant
	if call := obj.Call(propsIface+".Get", 0, deviceIface, "Name"); call.Err == nil {
		if err := call.Store(&name); err == nil {
			dev.Name, _ = name.Value().(string)
		}
	}
	return dev
}
