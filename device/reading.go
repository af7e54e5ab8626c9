package device

import (
  "fmt"
  "strings"
  "time"
)

type Reading struct {
  Attention uint8
  Meditation uint8
  Delta, Theta, Alpha, Beta, Gamma float32
  SignalQuality uint8
  Timestamp time.Time

  HasBands bool
  HasSignalQuality bool
}

func (r Reading) String() string {
  fields := []string{
    fmt.Sprintf("Attention=%d", r.Attention),
    fmt.Sprintf("Meditation=%d", r.Meditation),
  }

  if r.HasBands {
    fields = append(fields, fmt.Sprintf("Bands=[%.1f %.1f %.1f %.1f %.1f]",
      r.Delta, r.Theta, r.Alpha, r.Beta, r.Gamma))
  }

  if r.HasSignalQuality {
    fields = append(fields, fmt.Sprintf("SignalQuality=%d", r.SignalQuality))
  }

  return fmt.Sprintf("Reading[%v]", strings.Join(fields, ","))
}
