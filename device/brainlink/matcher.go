package brainlink

import (
  "strings"

  "github.com/Ketansuhaas/brain-connect/device"
)

// Keywords that mark an advertised name as a BrainLink-class headset. Matching
// is case-insensitive, so "EEG-Headset" and "BrainLink_Pro" both qualify.
var DefaultKeywords = []string{"brainlink", "brain", "eeg", "neuro"}

// Matcher selects the single acceptable peripheral out of a scan result set.
// When Address is set it takes precedence over the name heuristic and only an
// exact (case-insensitive) address match is accepted.
type Matcher struct {
  Keywords []string
  Address string
}

// Match returns the first result in scan order that looks like a headset.
// Two matching devices is resolved by scan order alone.
func (m Matcher) Match(results []device.ScanResult) (device.ScanResult, bool) {
  for _, res := range results {
    if m.Matches(res) {
      return res, true
    }
  }

  return device.ScanResult{}, false
}

func (m Matcher) Matches(res device.ScanResult) bool {
  if m.Address != "" {
    return strings.EqualFold(res.Addr, m.Address)
  }

  if res.Name == "" {
    return false
  }

  name := strings.ToLower(res.Name)

  for _, keyword := range m.Keywords {
    if strings.Contains(name, strings.ToLower(keyword)) {
      return true
    }
  }

  return false
}
