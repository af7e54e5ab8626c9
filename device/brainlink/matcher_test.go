package brainlink_test

import (
  "testing"

  "github.com/Ketansuhaas/brain-connect/device"
  "github.com/Ketansuhaas/brain-connect/device/brainlink"
)

func TestMatcher_EmptyScan(t *testing.T) {
  m := brainlink.Matcher{Keywords: brainlink.DefaultKeywords}

  if _, ok := m.Match(nil); ok {
    t.Fatal("Match(nil): got a device, wanted not found")
  }
}

func TestMatcher_FindsHeadsetByKeyword(t *testing.T) {
  m := brainlink.Matcher{Keywords: brainlink.DefaultKeywords}

  results := []device.ScanResult{
    {Name: "RandomBT", Addr: "11:22:33:44:55:66"},
    {Name: "BrainLink Pro", Addr: "AA:BB:CC:DD:EE:FF"},
  }

  got, ok := m.Match(results)

  if !ok || got.Addr != "AA:BB:CC:DD:EE:FF" {
    t.Fatalf("Match(%v): got (%v, %v), wanted the BrainLink device", results, got, ok)
  }
}

func TestMatcher_CaseInsensitive(t *testing.T) {
  m := brainlink.Matcher{Keywords: brainlink.DefaultKeywords}

  results := []device.ScanResult{
    {Name: "EEG-Headset", Addr: "AA:BB:CC:DD:EE:FF"},
  }

  if _, ok := m.Match(results); !ok {
    t.Fatalf("Match(%v): got not found, wanted a match on keyword 'eeg'", results)
  }
}

func TestMatcher_FirstSeenWins(t *testing.T) {
  m := brainlink.Matcher{Keywords: brainlink.DefaultKeywords}

  results := []device.ScanResult{
    {Name: "Speaker", Addr: "00:00:00:00:00:01"},
    {Name: "BrainLink_Pro", Addr: "00:00:00:00:00:02"},
    {Name: "NeuroSky Band", Addr: "00:00:00:00:00:03"},
  }

  got, ok := m.Match(results)

  if !ok || got.Addr != "00:00:00:00:00:02" {
    t.Fatalf("Match(%v): got (%v, %v), wanted the first matching device", results, got, ok)
  }
}

func TestMatcher_SkipsUnnamedDevices(t *testing.T) {
  m := brainlink.Matcher{Keywords: brainlink.DefaultKeywords}

  results := []device.ScanResult{
    {Addr: "11:22:33:44:55:66"},
  }

  if _, ok := m.Match(results); ok {
    t.Fatalf("Match(%v): matched a device with no name", results)
  }
}

func TestMatcher_AddressOverride(t *testing.T) {
  m := brainlink.Matcher{
    Keywords: brainlink.DefaultKeywords,
    Address: "aa:bb:cc:dd:ee:ff",
  }

  results := []device.ScanResult{
    {Name: "BrainLink Pro", Addr: "11:22:33:44:55:66"},
    {Name: "Mystery Device", Addr: "AA:BB:CC:DD:EE:FF"},
  }

  got, ok := m.Match(results)

  if !ok || got.Addr != "AA:BB:CC:DD:EE:FF" {
    t.Fatalf("Match(%v): got (%v, %v), wanted the address-pinned device despite its name", results, got, ok)
  }
}
