package types

// ---- Trigger descriptor ----

// TriggerType is the kind of event delivered to a trigger handler.
type TriggerType uint8

const (
	TrigDataReady TriggerType = iota
)

func (t TriggerType) String() string {
	switch t {
	case TrigDataReady:
		return "data_ready"
	default:
		return "unknown"
	}
}

// Channel is the logical measurement a trigger is attached to.
type Channel uint8

const (
	ChanMagnXYZ Channel = iota
	ChanMagnX
	ChanMagnY
	ChanMagnZ
	ChanDieTemp
)

func (c Channel) String() string {
	switch c {
	case ChanMagnXYZ:
		return "magn_xyz"
	case ChanMagnX:
		return "magn_x"
	case ChanMagnY:
		return "magn_y"
	case ChanMagnZ:
		return "magn_z"
	case ChanDieTemp:
		return "die_temp"
	default:
		return "unknown"
	}
}

// Trigger identifies one subscription (on SetTrigger) or one delivered event
// (on handler invocation).
type Trigger struct {
	Type TriggerType
	Chan Channel
}

// DataReady is the descriptor passed to magnetometer data-ready handlers.
var DataReady = Trigger{Type: TrigDataReady, Chan: ChanMagnXYZ}

// ---- Diagnostics ----

// TriggerStats is a snapshot of trigger counters for one sensor.
type TriggerStats struct {
	Edges         uint32 `json:"edges"`          // edges seen in interrupt context
	DisarmFaults  uint32 `json:"disarm_faults"`  // ISR could not disarm the pin
	Dispatches    uint32 `json:"dispatches"`     // deferred handler runs
	Invocations   uint32 `json:"invocations"`    // application callback calls
	HandlerPanics uint32 `json:"handler_panics"` // recovered callback panics
	Rearms        uint32 `json:"rearms"`         // successful re-arms after dispatch
	RearmFaults   uint32 `json:"rearm_faults"`   // re-arm failures (pin left disarmed)
	Collapsed     uint32 `json:"collapsed"`      // submissions dropped as duplicates
}
