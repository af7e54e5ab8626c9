package session

import "strconv"

// State tracks where the single active session is in its lifecycle. Any state
// may fall back to StateIdle on fatal error or an explicit stop.
type State uint8

const (
  StateIdle State = iota
  StateScanning
  StateMatched
  StateConnecting
  StateResolving
  StateSubscribed
  StateStreaming
  StateDisconnecting
)

func (s State) String() string {
  switch s {
  case StateIdle:
    return "Idle"
  case StateScanning:
    return "Scanning"
  case StateMatched:
    return "Matched"
  case StateConnecting:
    return "Connecting"
  case StateResolving:
    return "Resolving"
  case StateSubscribed:
    return "Subscribed"
  case StateStreaming:
    return "Streaming"
  case StateDisconnecting:
    return "Disconnecting"
  default:
    panic("unknown State value: " + strconv.Itoa(int(s)))
  }
}
