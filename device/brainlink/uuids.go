package brainlink

import (
  "github.com/Ketansuhaas/brain-connect/ble"
)

// BrainLink firmware revisions expose the EEG stream behind different
// service/characteristic pairs. The lists below are scanned in order and the
// first UUID actually present on the peripheral wins, so the vendor data
// channel takes priority over the standard services some revisions hide
// behind.
var ServiceCandidates = []ble.UUID{
  ble.MustParse("0000fee9-0000-1000-8000-00805f9b34fb"), // vendor data service
  ble.MustParse("0000180f-0000-1000-8000-00805f9b34fb"), // battery
  ble.MustParse("0000180a-0000-1000-8000-00805f9b34fb"), // device information
  ble.MustParse("0000ffe0-0000-1000-8000-00805f9b34fb"), // HM-10 style UART
  ble.MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e"), // Nordic UART
  ble.MustParse("00001800-0000-1000-8000-00805f9b34fb"), // generic access
  ble.MustParse("00001801-0000-1000-8000-00805f9b34fb"), // generic attribute
}

var CharacteristicCandidates = []ble.UUID{
  ble.MustParse("0000fee1-0000-1000-8000-00805f9b34fb"), // vendor stream
  ble.MustParse("0000ffe1-0000-1000-8000-00805f9b34fb"), // HM-10 style stream
  ble.MustParse("00002a19-0000-1000-8000-00805f9b34fb"), // battery level
  ble.MustParse("00002a29-0000-1000-8000-00805f9b34fb"), // manufacturer name
  ble.MustParse("6e400003-b5a3-f393-e0a9-e50e24dcca9e"), // Nordic UART TX
  ble.MustParse("00002a00-0000-1000-8000-00805f9b34fb"), // device name
  ble.MustParse("00002a01-0000-1000-8000-00805f9b34fb"), // appearance
}
