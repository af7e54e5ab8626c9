package device

import (
	"errors"
	"fmt"
	"slices"
)

var (
  ErrIncompleteData = errors.New("incomplete data")
  ErrInvalidData = errors.New("invalid data")
)

// ScanResult is a single advertising peripheral as seen during one scan cycle.
type ScanResult struct {
  Name string
  Addr string
}

func (s ScanResult) String() string {
  return fmt.Sprintf("device[name=%q, addr=%v]", s.Name, s.Addr)
}

// DecodeProfile selects the byte layout applied to incoming packets. The two
// firmware variants cannot be told apart from packet contents alone, so the
// profile is always chosen explicitly.
type DecodeProfile string

const (
  // 15-byte layout with EEG bands and a signal quality estimate.
  ProfileRich DecodeProfile = "rich"
  // 3-byte layout carrying only attention and meditation.
  ProfileMinimal DecodeProfile = "minimal"
)

// *flag.Value
func (p *DecodeProfile) String() string {
  return string(*p)
}

func (p *DecodeProfile) Set(v string) error {
  if v == "" {
    *p = ProfileRich
    return nil
  }

  allProfiles := []DecodeProfile{ProfileRich, ProfileMinimal}
  d := DecodeProfile(v)

  if !slices.Contains(allProfiles, d) {
    return fmt.Errorf("unknown decode profile %v (must be one of %v)", d, allProfiles)
  }

  *p = d
  return nil
}
