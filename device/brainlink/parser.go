package brainlink

import (
  "time"

  "github.com/pkg/errors"

  "github.com/Ketansuhaas/brain-connect/device"
)

const (
  // First byte of a well-formed rich packet.
  syncByte = 0xAA

  richPacketMinLength = 10
  minimalPacketMinLength = 3
)

// Signal quality scores. These thresholds are heuristic and uncalibrated:
// treat them as approximate signal confidence, not a physical measurement.
const (
  QualityExcellent uint8 = 95
  QualityGood uint8 = 80
  QualityMedium uint8 = 60
  QualityPoor uint8 = 40
  QualityBad uint8 = 20
  QualityUnknown uint8 = 30
)

// Decoder turns a single notification payload into a device.Reading using the
// configured profile. It is stateless and safe to call from any goroutine.
type Decoder struct {
  Profile device.DecodeProfile
}

func (d Decoder) Decode(data []byte) (device.Reading, error) {
  if d.Profile == device.ProfileMinimal {
    return parseMinimalPacket(data)
  }

  return parseRichPacket(data)
}

// Rich packet layout (byte offsets fixed by protocol position):
// [0] sync (0xAA), [8] attention, [9] meditation, [10..14] delta/theta/alpha/
// beta/gamma. Some firmware builds truncate trailing band bytes; missing band
// bytes read as zero.
func parseRichPacket(data []byte) (reading device.Reading, err error) {
  if len(data) < richPacketMinLength {
    return reading, errors.Wrapf(device.ErrIncompleteData,
      "rich packet has %d bytes, want >= %d", len(data), richPacketMinLength)
  }

  reading.Attention = clampLevel(data[8])
  reading.Meditation = clampLevel(data[9])

  reading.Delta = bandLevel(byteAt(data, 10))
  reading.Theta = bandLevel(byteAt(data, 11))
  reading.Alpha = bandLevel(byteAt(data, 12))
  reading.Beta = bandLevel(byteAt(data, 13))
  reading.Gamma = bandLevel(byteAt(data, 14))
  reading.HasBands = true

  reading.SignalQuality = SignalQuality(data)
  reading.HasSignalQuality = true

  reading.Timestamp = time.Now()

  return reading, nil
}

// Minimal packet layout: [0] header, [1] attention, [2] meditation. Used by
// firmware variants that strip the band data entirely.
func parseMinimalPacket(data []byte) (reading device.Reading, err error) {
  if len(data) < minimalPacketMinLength {
    return reading, errors.Wrapf(device.ErrIncompleteData,
      "minimal packet has %d bytes, want >= %d", len(data), minimalPacketMinLength)
  }

  reading.Attention = clampLevel(data[1])
  reading.Meditation = clampLevel(data[2])
  reading.Timestamp = time.Now()

  return reading, nil
}

// SignalQuality estimates how trustworthy a raw payload is. Scoring rows are
// checked in order and the first match wins:
// sync+signal+variation -> 95, sync+signal -> 80, sync -> 60, signal -> 40,
// nothing -> 20. Payloads too short to judge score 30.
func SignalQuality(data []byte) uint8 {
  if len(data) < 2 {
    return QualityUnknown
  }

  validSync := data[0] == syncByte

  var hasSignal bool
  distinct := make(map[byte]struct{})

  for _, b := range data[2:] {
    if b > 0 {
      hasSignal = true
    }

    distinct[b] = struct{}{}
  }

  hasVariation := len(distinct) > 2

  switch {
  case validSync && hasSignal && hasVariation:
    return QualityExcellent
  case validSync && hasSignal:
    return QualityGood
  case validSync:
    return QualityMedium
  case hasSignal:
    return QualityPoor
  default:
    return QualityBad
  }
}

// Clamp a raw attention/meditation byte into [0, 100]. Values above 100 are
// truncated, not rescaled.
func clampLevel(b byte) uint8 {
  if b > 100 {
    return 100
  }

  return b
}

func bandLevel(b byte) float32 {
  v := float32(b) / 255 * 100

  if v > 100 {
    v = 100
  }

  return v
}

func byteAt(data []byte, i int) byte {
  if i < len(data) {
    return data[i]
  }

  return 0
}
