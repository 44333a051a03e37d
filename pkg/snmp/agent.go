package snmp

// Agent runtime contract. The transport, PDU codec and handler
// registration bookkeeping live in the agent runtime; handlers in this
// package only consume the types below. Numeric values follow the
// net-snmp agent API so that traces line up with agent-side debugging.

// Mode identifies the operation (or set-transaction phase) the runtime
// is replaying the request for.
type Mode int

const (
	ModeSetReserve1 Mode = 0 // validate type/tag
	ModeSetReserve2 Mode = 1 // validate resources
	ModeSetAction   Mode = 2 // stage the edit
	ModeSetCommit   Mode = 3 // apply to running
	ModeSetFree     Mode = 4 // release handler-local state
	ModeSetUndo     Mode = 5 // roll back staged edits

	ModeGet     Mode = 160
	ModeGetNext Mode = 161
)

func (m Mode) String() string {
	switch m {
	case ModeGet:
		return "GET"
	case ModeGetNext:
		return "GETNEXT"
	case ModeSetReserve1:
		return "SET_RESERVE1"
	case ModeSetReserve2:
		return "SET_RESERVE2"
	case ModeSetAction:
		return "SET_ACTION"
	case ModeSetCommit:
		return "SET_COMMIT"
	case ModeSetUndo:
		return "SET_UNDO"
	case ModeSetFree:
		return "SET_FREE"
	}
	return "UNKNOWN"
}

// ErrStatus is the per-PDU status vocabulary of the protocol (RFC 3416).
type ErrStatus int

const (
	ErrNoError    ErrStatus = 0
	ErrTooBig     ErrStatus = 1
	ErrNoSuchName ErrStatus = 2
	ErrGenErr     ErrStatus = 5
	ErrWrongType  ErrStatus = 7
	ErrWrongValue ErrStatus = 10
)

func (e ErrStatus) String() string {
	switch e {
	case ErrNoError:
		return "noError"
	case ErrTooBig:
		return "tooBig"
	case ErrNoSuchName:
		return "noSuchName"
	case ErrGenErr:
		return "genErr"
	case ErrWrongType:
		return "wrongType"
	case ErrWrongValue:
		return "wrongValue"
	}
	return "unknownError"
}

// VarBind is one variable binding of a PDU: the object identifier and
// its typed value slot. On reads the handler fills Value, on writes the
// runtime delivers it populated.
type VarBind struct {
	Oid   Oid
	Value Value
}

// RequestInfo carries per-PDU state shared across all requests of the
// PDU, most importantly the current mode/phase.
type RequestInfo struct {
	Mode Mode
}

// Request is the per-object request context. The handler annotates
// Error for per-object protocol errors (wrong type, wrong value) and
// Exception for the SNMPv2 value exceptions (noSuchInstance,
// endOfMibView); both leave the handler return status at noError so
// the remaining objects of the PDU proceed.
type Request struct {
	VarBind   *VarBind
	Error     ErrStatus
	Exception Tag
}

// SetError records a per-object protocol error, keeping the first one.
func (r *Request) SetError(e ErrStatus) {
	if r.Error == ErrNoError {
		r.Error = e
	}
}
