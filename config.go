package main

import (
  "flag"
  "fmt"
  "net"
  "os"
  "strings"
  "time"

  "github.com/Ketansuhaas/brain-connect/ble"
  "github.com/Ketansuhaas/brain-connect/device"
  "github.com/Ketansuhaas/brain-connect/device/brainlink"
  "github.com/Ketansuhaas/brain-connect/session"
)

type config struct {
  Debug, Trace bool
  BindAddress string
  DiscoverDevices bool
  BluetoothDeviceId int
  BluetoothConnParams ble.ConnParams
  ScanWindow time.Duration
  TickInterval time.Duration
  Profile device.DecodeProfile
  Keywords []string
  Address string
  ServiceCandidates []ble.UUID
  CharacteristicCandidates []ble.UUID
}

// comma-separated UUID list bound to a flag; overrides the built-in
// candidates wholesale, preserving the order given on the command line.
type boundUuidList struct {
  list *[]ble.UUID
}

func (u *boundUuidList) String() string {
  return ""
}

func (u *boundUuidList) Set(v string) error {
  var out []ble.UUID

  for _, s := range strings.Split(v, ",") {
    uuid, err := ble.Parse(strings.TrimSpace(s))

    if err != nil {
      return fmt.Errorf("invalid UUID %q: %w", s, err)
    }

    out = append(out, uuid)
  }

  *u.list = out

  return nil
}

func ParseArgs() config {
  var cfg config
  var keywords string

  cfg.BluetoothConnParams = ble.ConnParamsDefault
  cfg.Profile = device.ProfileRich
  cfg.ServiceCandidates = brainlink.ServiceCandidates
  cfg.CharacteristicCandidates = brainlink.CharacteristicCandidates

  flag.StringVar(&cfg.BindAddress, "bind", "localhost:9103", "Where the metrics endpoint will bind to")
  flag.IntVar(&cfg.BluetoothDeviceId, "bluetooth-device", 0, "Bluetooth (HCI) device ID")
  flag.Var(&cfg.BluetoothConnParams, "bluetooth-connection-params", "Bluetooth connection parameters (one of 'default' or 'power-saving')")
  flag.BoolVar(&cfg.DiscoverDevices, "discover", false, "Discover available BLE devices and quit")
  flag.DurationVar(&cfg.ScanWindow, "scan-window", session.DefaultScanWindow,
    "How long a scan cycle collects advertisements before matching")
  flag.DurationVar(&cfg.TickInterval, "tick", session.DefaultTickInterval,
    "Liveness tick interval while streaming")
  flag.Var(&cfg.Profile, "profile", "Packet decode `profile` (one of 'rich' or 'minimal'); never auto-detected")
  flag.StringVar(&keywords, "keywords", strings.Join(brainlink.DefaultKeywords, ","),
    "Comma-separated name keywords that identify a headset (matched case-insensitively)")
  flag.StringVar(&cfg.Address, "addr", "",
    "Connect to this MAC address instead of matching by name")
  flag.Var(&boundUuidList{&cfg.ServiceCandidates}, "services",
    "Comma-separated service UUID candidates, in priority order")
  flag.Var(&boundUuidList{&cfg.CharacteristicCandidates}, "characteristics",
    "Comma-separated characteristic UUID candidates, in priority order")
  flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logs")
  flag.BoolVar(&cfg.Trace, "trace", false, "Enable trace logs")

  flag.Parse()

  for _, keyword := range strings.Split(keywords, ",") {
    if keyword = strings.TrimSpace(keyword); keyword != "" {
      cfg.Keywords = append(cfg.Keywords, keyword)
    }
  }

  if cfg.Address != "" {
    if _, err := net.ParseMAC(cfg.Address); err != nil {
      fmt.Fprintf(os.Stderr, "Error: invalid device address %q\n", cfg.Address)
      flag.Usage()
      os.Exit(1)
    }
  } else if len(cfg.Keywords) == 0 {
    fmt.Fprintln(os.Stderr, "Error: at least one keyword (or -addr) is required!")
    flag.Usage()
    os.Exit(1)
  }

  return cfg
}
