package session

import (
  "github.com/Ketansuhaas/brain-connect/ble"
)

// ResolvedEndpoint is the service/characteristic pair chosen for one
// connection. Both UUIDs are guaranteed to be present on the peripheral the
// endpoint was resolved against; it is meaningless once that connection drops.
type ResolvedEndpoint struct {
  Service ble.UUID
  Characteristic ble.UUID
}

// Bluetooth base UUID (0000xxxx-0000-1000-8000-00805f9b34fb), stored reversed
// per go-ble convention. 16-bit UUIDs are shorthand slots in this base.
var baseUUID = ble.MustParse("00000000-0000-1000-8000-00805f9b34fb")

func canonicalUUID(u ble.UUID) ble.UUID {
  if len(u) != 2 {
    return u
  }

  out := make(ble.UUID, len(baseUUID))
  copy(out, baseUUID)
  out[12] = u[0]
  out[13] = u[1]

  return out
}

func uuidEqual(a, b ble.UUID) bool {
  return canonicalUUID(a).Equal(canonicalUUID(b))
}

// ResolveService picks the first candidate service advertised by the
// peripheral. Candidate order fixes priority between functionally-equivalent
// standard and vendor services. An empty available set simply resolves to
// nothing.
func ResolveService(available []ble.UUID, candidates []ble.UUID) (ble.UUID, bool) {
  return resolveFirst(available, candidates)
}

// ResolveCharacteristic picks the first candidate characteristic present on
// the resolved service, with the same priority rule as ResolveService.
func ResolveCharacteristic(available []ble.UUID, candidates []ble.UUID) (ble.UUID, bool) {
  return resolveFirst(available, candidates)
}

func resolveFirst(available []ble.UUID, candidates []ble.UUID) (ble.UUID, bool) {
  for _, candidate := range candidates {
    for _, avail := range available {
      if uuidEqual(candidate, avail) {
        return candidate, true
      }
    }
  }

  return nil, false
}
