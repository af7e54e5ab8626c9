package session

import "errors"

// Every failure mode gets its own sentinel so callers can tell whether to
// retry the scan, retry the connection or give up. None of them are retried
// automatically.
var (
  ErrSessionActive = errors.New("a session is already active")
  ErrScanFailed = errors.New("scan failed")
  ErrDeviceNotFound = errors.New("no matching device found")
  ErrConnectFailed = errors.New("failed to connect to device")
  ErrServiceNotFound = errors.New("no known service found on peripheral")
  ErrCharacteristicNotFound = errors.New("no known characteristic found on peripheral")
  ErrSubscribeFailed = errors.New("failed to subscribe to notifications")
  ErrConnectionLost = errors.New("connection to device lost")
)
