package bridge

import "github.com/oasislabs/oracle-bridge/log"

// InitializedKey is the reserved key holding the initialization flag.
// It cannot collide with a packet key since those are always 64
// lowercase hex characters
const InitializedKey = "__bridge_initialized__"

// initializedFlag is the value stored under InitializedKey
var initializedFlag = []byte{1}

// StoreState is the persisted state of the bridge as seen by the Gate
type StoreState struct {
	// Initialized is set once the first invocation has completed and
	// never reset afterwards
	Initialized bool `json:"initialized"`
}

// Log implementation of log.Loggable
func (s StoreState) Log(fields log.Fields) {
	fields.Add("initialized", s.Initialized)
}
