package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Ketansuhaas/brain-connect/ble"
	"github.com/Ketansuhaas/brain-connect/device"
	"github.com/Ketansuhaas/brain-connect/device/brainlink"
	"github.com/Ketansuhaas/brain-connect/metrics"
	"github.com/Ketansuhaas/brain-connect/session"
	"github.com/Ketansuhaas/brain-connect/utils"
)

func main() {
  zerolog.DurationFieldUnit = time.Second
  zerolog.TimeFieldFormat = time.RFC3339Nano

  log.Logger = log.Output(zerolog.ConsoleWriter{
    Out: os.Stderr,
    TimeFormat: "15:04:05.000",
  })

  cfg := ParseArgs()

  if cfg.Trace || os.Getenv("TRACE") != "" {
      zerolog.SetGlobalLevel(zerolog.TraceLevel)
  } else if cfg.Debug || os.Getenv("DEBUG") != "" {
      zerolog.SetGlobalLevel(zerolog.DebugLevel)
  } else {
      zerolog.SetGlobalLevel(zerolog.InfoLevel)
  }

  if cfg.DiscoverDevices {
    doDeviceDiscovery(cfg)
    return
  }

  log.Info().
    Str("BindAddr", cfg.BindAddress).
    Str("Profile", string(cfg.Profile)).
    Strs("Keywords", cfg.Keywords).
    Array("ServiceCandidates", utils.ToZeroLogArray(cfg.ServiceCandidates)).
    Array("CharacteristicCandidates", utils.ToZeroLogArray(cfg.CharacteristicCandidates)).
    Int("BluetoothDeviceID", cfg.BluetoothDeviceId).
    Msg("Starting with the specified configuration")

  bleHandle := initBle(cfg)

  ctrl := session.New(
    session.NewBleTransport(bleHandle, cfg.ScanWindow),
    session.Config{
      Matcher: brainlink.Matcher{
        Keywords: cfg.Keywords,
        Address: cfg.Address,
      },
      Decoder: brainlink.Decoder{Profile: cfg.Profile},
      ServiceCandidates: cfg.ServiceCandidates,
      CharacteristicCandidates: cfg.CharacteristicCandidates,
      TickInterval: cfg.TickInterval,
    },
  )

  registry := prometheus.NewRegistry()

  ble.RegisterMetrics(registry)
  session.RegisterMetrics(registry)

  metrics.RegisterCollector(
    func() (string, device.Reading, time.Time, bool) {
      dev, _ := ctrl.Device()

      name := dev.Name
      if name == "" {
        name = dev.Addr
      }

      reading, ts, ok := ctrl.Latest()
      return name, reading, ts, ok
    },
    registry,
  )

  mux := http.NewServeMux()
  mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

  srv := &http.Server{
    Addr: cfg.BindAddress,
    Handler: mux,
  }

  log.Info().
      Str("ListenAddress", cfg.BindAddress).
      Msg("Starting Prometheus server")

  ctx := ble.WrapContextWithSigHandler(context.WithCancel(context.Background()))

  eg, ctx := errgroup.WithContext(ctx)

  eg.Go(func() error {
    if err := srv.ListenAndServe(); err != http.ErrServerClosed {
      return err
    }

    return nil
  })

  eg.Go(func() error {
    defer srv.Shutdown(context.Background())
    defer bleHandle.Stop()

    return ctrl.Run(ctx)
  })

  if err := eg.Wait(); err != nil {
    switch {
    case errors.Is(err, session.ErrDeviceNotFound):
      log.Fatal().Err(err).Msg("No headset found - is it powered on and in range?")
    case utils.ErrorIsAnyOf(err, session.ErrServiceNotFound, session.ErrCharacteristicNotFound):
      log.Fatal().Err(err).
        Msg("Headset exposes no known endpoint - try the -services/-characteristics overrides")
    default:
      log.Fatal().Err(err).Msg("Session ended with an error")
    }
  }

  log.Info().Msg("Session ended cleanly")
}

func initBle(cfg config) *ble.Handle {
  var bleFlags ble.Flags = ble.FlagScanTypeActive

  if cfg.Address != "" {
    bleFlags |= ble.FlagEnableDeviceAllowList
  }

  bleHandle, err := ble.InitWithConnParams(
    cfg.BluetoothDeviceId,
    cfg.BluetoothConnParams,
    bleFlags,
  )

  if err != nil {
    log.Fatal().Err(err).Msg("Failed to initialize Bluetooth device")
  }

  if cfg.Address != "" {
    // ParseArgs already validated the address.
    hwAddr, _ := net.ParseMAC(cfg.Address)

    if err := bleHandle.SetAllowListedAddresses([]net.HardwareAddr{hwAddr}); err != nil {
      log.Error().Err(err).Msg("Failed to set device allow list")
    }
  }

  return bleHandle
}
