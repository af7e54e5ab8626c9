package session

import (
  "context"
  "fmt"
  "net"
  "time"

  "github.com/rs/zerolog/log"

  "github.com/Ketansuhaas/brain-connect/ble"
  "github.com/Ketansuhaas/brain-connect/device"
  "github.com/Ketansuhaas/brain-connect/utils"
)

// Transport is the external BLE capability the controller drives. The real
// implementation wraps a ble.Handle; tests supply fakes.
type Transport interface {
  // Discover runs one scan cycle and returns every peripheral seen, in
  // first-seen order.
  Discover(ctx context.Context) ([]device.ScanResult, error)
  Connect(ctx context.Context, addr string) (Peripheral, error)
}

// Peripheral is one connected device with its discovered GATT profile.
type Peripheral interface {
  Services() []ble.UUID
  Characteristics(service ble.UUID) []ble.UUID
  Subscribe(characteristic ble.UUID, onData func([]byte)) error
  Unsubscribe(characteristic ble.UUID) error
  Disconnect() error
  Disconnected() <-chan struct{}
}

type bleTransport struct {
  handle *ble.Handle
  scanWindow time.Duration
}

const DefaultScanWindow = 5 * time.Second

func NewBleTransport(handle *ble.Handle, scanWindow time.Duration) Transport {
  if scanWindow <= 0 {
    scanWindow = DefaultScanWindow
  }

  return &bleTransport{
    handle: handle,
    scanWindow: scanWindow,
  }
}

func (t *bleTransport) Discover(ctx context.Context) ([]device.ScanResult, error) {
  scanCtx, cancel := context.WithTimeout(ctx, t.scanWindow)
  defer cancel()

  // advertisements repeat; keep the first sighting per address but backfill
  // the name if a later scan response carries it.
  seen := make(map[string]int)
  var results []device.ScanResult

  err := t.handle.ScanAll(scanCtx, func(a ble.Advertisement) {
    addr := a.Addr().String()

    if i, ok := seen[addr]; ok {
      if results[i].Name == "" {
        results[i].Name = a.LocalName()
      }

      return
    }

    seen[addr] = len(results)
    results = append(results, device.ScanResult{
      Name: a.LocalName(),
      Addr: addr,
    })

    log.Debug().
      Str("Addr", addr).
      Str("Name", a.LocalName()).
      Msg("Received device advertisement")
  })

  // the scan window elapsing is how a scan normally ends.
  if err != nil && !utils.ErrorIsAnyOf(err, context.Canceled, context.DeadlineExceeded) {
    return nil, err
  }

  if err := ctx.Err(); err != nil {
    return nil, err
  }

  log.Debug().Int("Found", len(results)).Msg("Scan cycle finished")

  return results, nil
}

func (t *bleTransport) Connect(ctx context.Context, addr string) (Peripheral, error) {
  hwAddr, err := net.ParseMAC(addr)

  if err != nil {
    return nil, fmt.Errorf("invalid device address %q: %w", addr, err)
  }

  client, err := t.handle.Connect(ctx, hwAddr)

  if err != nil {
    return nil, err
  }

  profile, err := client.DiscoverProfile(true)

  if err != nil {
    client.CancelConnection()
    return nil, fmt.Errorf("failed to discover GATT profile: %w", err)
  }

  return &blePeripheral{
    client: client,
    profile: profile,
  }, nil
}

type blePeripheral struct {
  client ble.Client
  profile *ble.Profile
}

func (p *blePeripheral) Services() []ble.UUID {
  out := make([]ble.UUID, 0, len(p.profile.Services))

  for _, svc := range p.profile.Services {
    out = append(out, svc.UUID)
  }

  return out
}

func (p *blePeripheral) Characteristics(service ble.UUID) []ble.UUID {
  svc := p.findService(service)

  if svc == nil {
    return nil
  }

  out := make([]ble.UUID, 0, len(svc.Characteristics))

  for _, char := range svc.Characteristics {
    out = append(out, char.UUID)
  }

  return out
}

func (p *blePeripheral) Subscribe(characteristic ble.UUID, onData func([]byte)) error {
  char := p.findCharacteristic(characteristic)

  if char == nil {
    return fmt.Errorf("characteristic %v not present on peripheral", characteristic)
  }

  return p.client.Subscribe(char, false, func(data []byte) {
    onData(data)
  })
}

func (p *blePeripheral) Unsubscribe(characteristic ble.UUID) error {
  char := p.findCharacteristic(characteristic)

  if char == nil {
    return fmt.Errorf("characteristic %v not present on peripheral", characteristic)
  }

  return p.client.Unsubscribe(char, false)
}

func (p *blePeripheral) Disconnect() error {
  return p.client.CancelConnection()
}

func (p *blePeripheral) Disconnected() <-chan struct{} {
  return p.client.Disconnected()
}

func (p *blePeripheral) findService(service ble.UUID) *ble.Service {
  for _, svc := range p.profile.Services {
    if uuidEqual(svc.UUID, service) {
      return svc
    }
  }

  return nil
}

func (p *blePeripheral) findCharacteristic(characteristic ble.UUID) *ble.Characteristic {
  for _, svc := range p.profile.Services {
    for _, char := range svc.Characteristics {
      if uuidEqual(char.UUID, characteristic) {
        return char
      }
    }
  }

  return nil
}
