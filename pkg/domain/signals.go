package domain

// Signals is a per-cycle snapshot of the engine's boundary, in the order of
// the signal-level contract: clock inputs on one side, registered outputs on
// the other. Trace sinks receive one snapshot per clock cycle.
type Signals struct {
	Reset       bool   `json:"rst"`
	Start       bool   `json:"start"`
	Input       uint8  `json:"input_value"`
	LoadEnable  bool   `json:"load_enable"`
	LoadAddr    uint8  `json:"load_addr"`
	Action      Action `json:"action"`
	ActionValid bool   `json:"action_valid"`
}
