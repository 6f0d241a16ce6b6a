// Package script loads the JSON step files that drive scripted input
// playback. A script is an array of objects, each describing one key action
// scheduled for a future video frame.
package script

// Action tags what a step does when it fires.
type Action uint

const (
	ActionPressKey   Action = 1
	ActionReleaseKey Action = 2
)

const (
	// MaxSteps is the schedule capacity. Steps past this limit are dropped
	// at load time and counted in Script.Dropped.
	MaxSteps = 200

	// MaxParamStr is the byte capacity of a step's string parameter.
	// Longer values are truncated, not rejected.
	MaxParamStr = 254

	// DefaultFrameGap is added to the previous step's trigger frame when a
	// step omits its own "frame" member.
	DefaultFrameGap = 60
)

// Step is one scheduled input action. Only Handled changes after load.
type Step struct {
	// Frame is the trigger frame. The action fires on the first poll whose
	// frame counter is strictly greater than this value.
	Frame uint64

	// Action selects the key operation. Unrecognized tags are kept so
	// playback can report them.
	Action Action

	// ParamNum is the key symbol for press and release actions.
	ParamNum uint

	// ParamStr is reserved for action kinds that carry text. Current
	// actions ignore it.
	ParamStr string

	// Handled marks a step that has fired or been rejected and will not be
	// considered again.
	Handled bool
}

// Script is the loaded step schedule, in file order.
type Script struct {
	Steps []Step

	// Dropped counts steps discarded because the file held more than
	// MaxSteps objects.
	Dropped int
}

// Len returns the number of retained steps.
func (s *Script) Len() int {
	return len(s.Steps)
}
