package session_test

import (
  "testing"

  "github.com/Ketansuhaas/brain-connect/ble"
  "github.com/Ketansuhaas/brain-connect/device/brainlink"
  "github.com/Ketansuhaas/brain-connect/session"
)

func TestResolveService_CandidateOrderWins(t *testing.T) {
  available := []ble.UUID{
    ble.MustParse("0000fee9-0000-1000-8000-00805f9b34fb"),
    ble.MustParse("0000ffe0-0000-1000-8000-00805f9b34fb"),
  }

  got, ok := session.ResolveService(available, brainlink.ServiceCandidates)

  if !ok {
    t.Fatal("ResolveService: got not found, wanted the vendor data service")
  }

  if want := ble.MustParse("0000fee9-0000-1000-8000-00805f9b34fb"); !got.Equal(want) {
    t.Fatalf("ResolveService: got %v, wanted %v (earlier in candidate order)", got, want)
  }
}

func TestResolveService_SkipsAbsentCandidates(t *testing.T) {
  // 0000180f (battery) sits between fee9 and 180a in the candidate list but
  // is absent here, so 180a must win over ffe0.
  available := []ble.UUID{
    ble.MustParse("0000ffe0-0000-1000-8000-00805f9b34fb"),
    ble.MustParse("0000180a-0000-1000-8000-00805f9b34fb"),
  }

  got, ok := session.ResolveService(available, brainlink.ServiceCandidates)

  if !ok {
    t.Fatal("ResolveService: got not found, wanted a match")
  }

  if want := ble.MustParse("0000180a-0000-1000-8000-00805f9b34fb"); !got.Equal(want) {
    t.Fatalf("ResolveService: got %v, wanted %v", got, want)
  }
}

func TestResolveService_EmptyAvailableSet(t *testing.T) {
  if got, ok := session.ResolveService(nil, brainlink.ServiceCandidates); ok {
    t.Fatalf("ResolveService(nil): got %v, wanted not found", got)
  }
}

func TestResolveService_NoCandidatePresent(t *testing.T) {
  available := []ble.UUID{
    ble.MustParse("12345678-0000-1000-8000-00805f9b34fb"),
  }

  if got, ok := session.ResolveService(available, brainlink.ServiceCandidates); ok {
    t.Fatalf("ResolveService: got %v, wanted not found", got)
  }
}

func TestResolveService_Shortened16BitFormMatches(t *testing.T) {
  // peripherals report standard services in 16-bit shorthand; those must
  // compare equal to the full base-UUID form in the candidate list.
  available := []ble.UUID{
    ble.UUID16(0xfee9),
  }

  got, ok := session.ResolveService(available, brainlink.ServiceCandidates)

  if !ok {
    t.Fatal("ResolveService: 16-bit 0xfee9 did not match its 128-bit candidate form")
  }

  if want := ble.MustParse("0000fee9-0000-1000-8000-00805f9b34fb"); !got.Equal(want) {
    t.Fatalf("ResolveService: got %v, wanted %v", got, want)
  }
}

func TestResolveCharacteristic_CandidateOrderWins(t *testing.T) {
  available := []ble.UUID{
    ble.MustParse("00002a19-0000-1000-8000-00805f9b34fb"),
    ble.MustParse("0000fee1-0000-1000-8000-00805f9b34fb"),
  }

  got, ok := session.ResolveCharacteristic(available, brainlink.CharacteristicCandidates)

  if !ok {
    t.Fatal("ResolveCharacteristic: got not found, wanted the vendor stream")
  }

  if want := ble.MustParse("0000fee1-0000-1000-8000-00805f9b34fb"); !got.Equal(want) {
    t.Fatalf("ResolveCharacteristic: got %v, wanted %v", got, want)
  }
}
