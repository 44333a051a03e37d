package snmp

// Phase is a state of the operation state machine. Transitions are
// driven by the agent runtime replaying the request across modes; each
// transition is a pure function of (binding, request context) that
// annotates the request and returns a status.
//
// The runtime's phase-ordering contract, which handlers rely on as a
// precondition and do not enforce:
//
//	read:    Read
//	set ok:  ReserveType -> ReserveResource -> Action -> Commit -> Free
//	set err: any reserve/action failure     -> Undo   -> Free
//
// Staged edits live only in the candidate datastore session until
// Commit, so Undo is a whole-candidate discard.
type Phase int

const (
	PhaseRead Phase = iota
	PhaseReserveType
	PhaseReserveResource
	PhaseAction
	PhaseCommit
	PhaseUndo
	PhaseFree
)

func (p Phase) String() string {
	switch p {
	case PhaseRead:
		return "Read"
	case PhaseReserveType:
		return "ReserveType"
	case PhaseReserveResource:
		return "ReserveResource"
	case PhaseAction:
		return "Action"
	case PhaseCommit:
		return "Commit"
	case PhaseUndo:
		return "Undo"
	case PhaseFree:
		return "Free"
	}
	return "Unknown"
}

// PhaseForMode maps a runtime mode onto the state machine. GetNext is
// not a phase: it is the table walk operation, handled separately.
func PhaseForMode(m Mode) (Phase, bool) {
	switch m {
	case ModeGet:
		return PhaseRead, true
	case ModeSetReserve1:
		return PhaseReserveType, true
	case ModeSetReserve2:
		return PhaseReserveResource, true
	case ModeSetAction:
		return PhaseAction, true
	case ModeSetCommit:
		return PhaseCommit, true
	case ModeSetUndo:
		return PhaseUndo, true
	case ModeSetFree:
		return PhaseFree, true
	}
	return 0, false
}
