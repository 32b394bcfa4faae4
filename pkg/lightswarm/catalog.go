package lightswarm

import (
	"fmt"
	"sort"

	"github.com/swarmlight/swarmctl/pkg/protocol"
)

// ParamSpec describes one action parameter: the command field that supplies
// it, the inclusive validation bracket, and how it is emitted.
type ParamSpec struct {
	Field   string // command field supplying the value
	Bracket []int  // inclusive [min, max]; nil disables the range check
	Split16 bool   // emit as a high/low byte pair instead of a single byte
}

// Action is one catalog entry of the binary protocol.
type Action struct {
	Opcode byte
	Params []ParamSpec
}

// actions maps action names to opcodes and parameter specs. The encoder is
// driven entirely by this table: supporting a new action is a catalog edit,
// not a code edit. Non-split parameters always carry a bracket within
// [0,255], so the encoder's byte conversion cannot truncate.
var actions = map[string]Action{
	"nothing":       {Opcode: OpNothing},
	"reset":         {Opcode: OpReset},
	"ping_request":  {Opcode: OpPingRequest},
	"ping_response": {Opcode: OpPingResponse},
	"on":            {Opcode: OpOn},
	"off":           {Opcode: OpOff},
	"level": {Opcode: OpLevel, Params: []ParamSpec{
		{Field: "level", Bracket: []int{0, 255}},
	}},
	"fade": {Opcode: OpFade, Params: []ParamSpec{
		{Field: "level", Bracket: []int{0, 255}},
		{Field: "interval", Bracket: []int{1, 255}},
		{Field: "step", Bracket: []int{0, 255}},
	}},
	"set_pseudo": {Opcode: OpSetPseudo, Params: []ParamSpec{
		{Field: "pseudo_address", Bracket: []int{0, 0xFFFF}, Split16: true},
	}},
	"toggle": {Opcode: OpToggle},
}

// LookupAction maps an action name to its catalog entry.
func LookupAction(name string) (Action, error) {
	action, ok := actions[name]
	if !ok {
		return Action{}, protocol.NewUnknownActionError(fmt.Sprintf("unknown action: %s", name))
	}
	return action, nil
}

// ActionNames returns every catalog action name in sorted order.
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
