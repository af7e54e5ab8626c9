package session

import (
  "context"
  "sync"
  "sync/atomic"
  "time"

  "github.com/pkg/errors"
  "github.com/prometheus/client_golang/prometheus"
  "github.com/rs/zerolog/log"

  "github.com/Ketansuhaas/brain-connect/ble"
  "github.com/Ketansuhaas/brain-connect/device"
)

var (
  decodedPacketsCounter = prometheus.NewCounter(prometheus.CounterOpts{
    Name: "brainconnect_session_decoded_packets_total",
  })
  decodeErrorsCounter = prometheus.NewCounter(prometheus.CounterOpts{
    Name: "brainconnect_session_decode_errors_total",
  })
)

func RegisterMetrics(reg prometheus.Registerer) {
  reg.MustRegister(
    decodedPacketsCounter,
    decodeErrorsCounter,
  )
}

const DefaultTickInterval = 5 * time.Second

// Matcher filters a scan result set down to the single acceptable peripheral.
type Matcher interface {
  Match(results []device.ScanResult) (device.ScanResult, bool)
}

// Decoder turns one raw notification payload into a reading.
type Decoder interface {
  Decode(data []byte) (device.Reading, error)
}

// Sink receives every successfully decoded reading. It is called from the
// notification path and must not block for long.
type Sink func(device.Reading)

type Config struct {
  Matcher Matcher
  Decoder Decoder
  Sink Sink

  // Candidate endpoints, consulted in order; first match wins.
  ServiceCandidates []ble.UUID
  CharacteristicCandidates []ble.UUID

  // How often the streaming loop wakes up to log liveness. Data itself
  // arrives via the notification callback, never by polling.
  TickInterval time.Duration
}

// Controller owns the single active session and drives it through
// scan -> match -> connect -> resolve -> subscribe -> stream -> teardown.
type Controller struct {
  transport Transport
  cfg Config

  active atomic.Bool

  mu sync.Mutex
  state State
  matched device.ScanResult
  hasMatched bool
  latest device.Reading
  latestAt time.Time
  hasLatest bool
}

func New(transport Transport, cfg Config) *Controller {
  if cfg.TickInterval <= 0 {
    cfg.TickInterval = DefaultTickInterval
  }

  return &Controller{
    transport: transport,
    cfg: cfg,
    state: StateIdle,
  }
}

// Run drives a full session until the context is canceled or a fatal error
// occurs. Only one session may run at a time: a second call while one is
// active fails fast with ErrSessionActive instead of replacing it.
//
// Session-setup failures (scan, match, connect, resolve, subscribe) abort and
// are returned with a distinguishable sentinel; per-packet decode failures
// never terminate an active stream.
func (c *Controller) Run(ctx context.Context) error {
  if !c.active.CompareAndSwap(false, true) {
    return ErrSessionActive
  }

  defer c.active.Store(false)
  defer c.setState(StateIdle)

  c.setState(StateScanning)

  results, err := c.transport.Discover(ctx)

  if err != nil {
    return errors.Wrapf(ErrScanFailed, "%v", err)
  }

  matched, ok := c.cfg.Matcher.Match(results)

  if !ok {
    return errors.Wrapf(ErrDeviceNotFound, "saw %d advertising devices", len(results))
  }

  c.mu.Lock()
  c.matched = matched
  c.hasMatched = true
  c.mu.Unlock()

  c.setState(StateMatched)

  log.Info().
    Stringer("Device", matched).
    Msg("Found headset")

  c.setState(StateConnecting)

  peripheral, err := c.transport.Connect(ctx, matched.Addr)

  if err != nil {
    return errors.Wrapf(ErrConnectFailed, "%v: %v", matched.Addr, err)
  }

  c.setState(StateResolving)

  endpoint, err := c.resolve(peripheral)

  if err != nil {
    c.disconnect(peripheral)
    return err
  }

  c.setState(StateSubscribed)

  if err := peripheral.Subscribe(endpoint.Characteristic, c.handlePacket); err != nil {
    c.disconnect(peripheral)
    return errors.Wrapf(ErrSubscribeFailed, "%v", err)
  }

  log.Info().Msg("Subscribed - streaming readings until stopped")

  c.setState(StateStreaming)

  err = c.stream(ctx, peripheral)

  c.setState(StateDisconnecting)

  if uerr := peripheral.Unsubscribe(endpoint.Characteristic); uerr != nil {
    log.Warn().Err(uerr).Msg("Failed to stop notifications, disconnecting anyway")
  }

  c.disconnect(peripheral)

  return err
}

// State returns the current lifecycle state. Safe for concurrent use.
func (c *Controller) State() State {
  c.mu.Lock()
  defer c.mu.Unlock()

  return c.state
}

// Device returns the peripheral matched by the current (or last) session.
func (c *Controller) Device() (device.ScanResult, bool) {
  c.mu.Lock()
  defer c.mu.Unlock()

  return c.matched, c.hasMatched
}

// Latest returns the most recently decoded reading and when it was decoded.
func (c *Controller) Latest() (device.Reading, time.Time, bool) {
  c.mu.Lock()
  defer c.mu.Unlock()

  return c.latest, c.latestAt, c.hasLatest
}

func (c *Controller) resolve(p Peripheral) (ResolvedEndpoint, error) {
  services := p.Services()

  svc, ok := ResolveService(services, c.cfg.ServiceCandidates)

  if !ok {
    return ResolvedEndpoint{}, errors.Wrapf(ErrServiceNotFound,
      "peripheral advertises %d services", len(services))
  }

  chars := p.Characteristics(svc)

  char, ok := ResolveCharacteristic(chars, c.cfg.CharacteristicCandidates)

  if !ok {
    return ResolvedEndpoint{}, errors.Wrapf(ErrCharacteristicNotFound,
      "service %v has %d characteristics", svc, len(chars))
  }

  log.Info().
    Stringer("Service", svc).
    Stringer("Characteristic", char).
    Msg("Resolved notification endpoint")

  return ResolvedEndpoint{
    Service: svc,
    Characteristic: char,
  }, nil
}

// stream idles until a stop request or until the peripheral drops. Readings
// arrive asynchronously through handlePacket during this time.
func (c *Controller) stream(ctx context.Context, p Peripheral) error {
  ticker := time.NewTicker(c.cfg.TickInterval)
  defer ticker.Stop()

  for {
    select {
    case <-ctx.Done():
      log.Debug().Msg("Stop requested, leaving streaming state")
      return nil
    case <-p.Disconnected():
      return ErrConnectionLost
    case <-ticker.C:
      log.Trace().Msg("Streaming: waiting for notifications")
    }
  }
}

// handlePacket runs inside the transport's notification callback. It stays
// synchronous so back-to-back notifications keep their delivery order.
func (c *Controller) handlePacket(data []byte) {
  reading, err := c.cfg.Decoder.Decode(data)

  if err != nil {
    decodeErrorsCounter.Inc()

    log.Warn().
      Err(err).
      Hex("Payload", data).
      Msg("Dropping packet that failed to decode")

    return
  }

  decodedPacketsCounter.Inc()

  c.mu.Lock()
  c.latest = reading
  c.latestAt = reading.Timestamp
  c.hasLatest = true
  c.mu.Unlock()

  log.Debug().Stringer("Reading", reading).Msg("Decoded reading")

  if c.cfg.Sink != nil {
    c.cfg.Sink(reading)
  }
}

// Disconnects are best-effort: a failure here never fails the shutdown path.
func (c *Controller) disconnect(p Peripheral) {
  if err := p.Disconnect(); err != nil {
    log.Warn().Err(err).Msg("Failed to disconnect from device")
  }
}

func (c *Controller) setState(next State) {
  c.mu.Lock()
  prev := c.state
  c.state = next
  c.mu.Unlock()

  if prev != next {
    log.Debug().
      Stringer("From", prev).
      Stringer("To", next).
      Msg("Session state changed")
  }
}
