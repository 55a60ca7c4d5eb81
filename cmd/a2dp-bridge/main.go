//go:build linux
//
// Demo CLI for the A2DP bridge (Linux only)
//
// Prerequisites
// - Linux with BlueZ (bluetoothd) running and system D-Bus access.
// - Adapter powered on: `bluetoothctl power on`.
//
// Modes for step-by-step verification
// 1) Monitor stack events (default):
//     go run ./cmd/a2dp-bridge -mode=monitor -timeout=60s
//   Connect or disconnect an A2DP device from another terminal
//   (`bluetoothctl connect AA:BB:CC:DD:EE:FF`) and watch the event log.
//
// 2) Connect to a sink and keep monitoring:
//     go run ./cmd/a2dp-bridge -mode=connect -device AA:BB:CC:DD:EE:FF -timeout=120s
//
// 3) Disconnect / mark the active audio route:
//     go run ./cmd/a2dp-bridge -mode=disconnect -device AA:BB:CC:DD:EE:FF
//     go run ./cmd/a2dp-bridge -mode=active -device AA:BB:CC:DD:EE:FF
//
// 4) Store the per-device optional codecs preference:
//     go run ./cmd/a2dp-bridge -mode=prefs -device AA:BB:CC:DD:EE:FF -optional-codecs=disabled
//
// Configuration comes from the environment (A2DP_BRIDGE_ADAPTER,
// A2DP_BRIDGE_MAX_CONNECTED_DEVICES, A2DP_BRIDGE_PREFS_DB,
// A2DP_BRIDGE_CODEC_PRIORITIES); see internal/config.
//
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"a2dp-bridge/internal/a2dp"
	"a2dp-bridge/internal/bluez"
	"a2dp-bridge/internal/config"
	"a2dp-bridge/internal/prefs"
	"a2dp-bridge/internal/service"
	"a2dp-bridge/internal/telemetry"
)

func main() {
	mode := flag.String("mode", "monitor", "mode: monitor|connect|disconnect|active|prefs")
	device := flag.String("device", "", "remote device address (AA:BB:CC:DD:EE:FF)")
	optional := flag.String("optional-codecs", "", "optional codecs preference to store: enabled|disabled (prefs mode)")
	timeout := flag.Duration("timeout", 30*time.Second, "operation timeout")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Context with timeout + Ctrl-C cancellation
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	cfg, err := config.FromEnv()
	if err != nil {
		fatal(logger, "load config", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		fatal(logger, "open preference store", err)
	}
	defer store.Close()

	var priorities, offload []a2dp.CodecConfig
	if cfg.CodecPriorityPath != "" {
		priorities, offload, err = config.LoadCodecPriorities(cfg.CodecPriorityPath)
		if err != nil {
			fatal(logger, "load codec priorities", err)
		}
	}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		logger.Warn("metrics disabled", "err", err)
		metrics = nil
	}

	stack := bluez.New(cfg.Adapter, logger)
	bridge := a2dp.Default(stack, stack, a2dp.WithLogger(logger), a2dp.WithMetrics(metrics))
	svc := service.New(store, logger)
	bridge.RegisterService(svc)

	if err := bridge.Init(cfg.MaxConnectedDevices, priorities, offload); err != nil {
		fatal(logger, "init stack", err)
	}
	defer bridge.Cleanup()

	switch strings.ToLower(*mode) {
	case "monitor":
		logger.Info("monitoring stack events", "adapter", cfg.Adapter, "timeout", deadlineStr(ctx))
		<-ctx.Done()
	case "connect":
		dev := resolveDevice(logger, stack, *device)
		fmt.Printf("connect %s: ok=%v\n", dev, bridge.Connect(dev))
		logger.Info("monitoring until timeout", "timeout", deadlineStr(ctx))
		<-ctx.Done()
	case "disconnect":
		dev := resolveDevice(logger, stack, *device)
		fmt.Printf("disconnect %s: ok=%v\n", dev, bridge.Disconnect(dev))
	case "active":
		dev := resolveDevice(logger, stack, *device)
		fmt.Printf("set active %s: ok=%v\n", dev, bridge.SetActive(dev))
	case "prefs":
		dev := resolveDevice(logger, stack, *device)
		pref, err := parsePref(*optional)
		if err != nil {
			fatal(logger, "parse -optional-codecs", err)
		}
		if err := svc.SetOptionalCodecsEnabled(ctx, dev, pref); err != nil {
			fatal(logger, "store preference", err)
		}
		fmt.Printf("stored optional codecs preference %s for %s\n", pref, dev)
	default:
		fatal(logger, "unknown mode", fmt.Errorf("%q", *mode))
	}
}

func openStore(cfg config.Config) (prefs.Store, error) {
	if cfg.PrefsPath == "" {
		return prefs.NewMemoryStore(), nil
	}
	return prefs.NewSQLiteStore(cfg.PrefsPath)
}

func resolveDevice(logger *slog.Logger, stack *bluez.Stack, s string) *a2dp.Device {
	if s == "" {
		fatal(logger, "missing flag", fmt.Errorf("-device is required in this mode"))
	}
	addr, err := a2dp.ParseAddress(s)
	if err != nil {
		fatal(logger, "parse device address", err)
	}
	return stack.RemoteDevice(addr)
}

func parsePref(s string) (a2dp.OptionalCodecsPref, error) {
	switch strings.ToLower(s) {
	case "enabled":
		return a2dp.OptionalCodecsPrefEnabled, nil
	case "disabled":
		return a2dp.OptionalCodecsPrefDisabled, nil
	default:
		return a2dp.OptionalCodecsPrefUnknown, fmt.Errorf("expected enabled or disabled, got %q", s)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}

func deadlineStr(ctx context.Context) string {
	if d, ok := ctx.Deadline(); ok {
		return time.Until(d).Truncate(time.Second).String()
	}
	return "none"
}
