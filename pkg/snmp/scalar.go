package snmp

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/iptecharch/snmp-server/pkg/datastore"
	"github.com/iptecharch/snmp-server/pkg/schema"
	"github.com/iptecharch/snmp-server/pkg/snmp/translate"
)

// ScalarHandler implements the operation state machine for scalar
// managed objects against the datastore client.
type ScalarHandler struct {
	ds  datastore.Client
	log *logrus.Entry
}

func NewScalarHandler(ds datastore.Client, log *logrus.Entry) *ScalarHandler {
	return &ScalarHandler{ds: ds, log: log}
}

// scalarTransitions is the state machine: one pure transition function
// per phase.
var scalarTransitions = map[Phase]func(*ScalarHandler, context.Context, *ScalarBinding, *Request) ErrStatus{
	PhaseRead:            (*ScalarHandler).read,
	PhaseReserveType:     (*ScalarHandler).reserveType,
	PhaseReserveResource: (*ScalarHandler).noop,
	PhaseAction:          (*ScalarHandler).action,
	PhaseCommit:          (*ScalarHandler).commit,
	PhaseUndo:            (*ScalarHandler).undo,
	PhaseFree:            (*ScalarHandler).noop,
}

// Handle dispatches one runtime invocation to its phase transition.
func (h *ScalarHandler) Handle(ctx context.Context, b *ScalarBinding, ri *RequestInfo, req *Request) ErrStatus {
	h.log.Debugf("scalar %s %s", b.Name, ri.Mode)
	phase, ok := PhaseForMode(ri.Mode)
	if !ok {
		h.log.Errorf("scalar %s: unexpected mode %d", b.Name, ri.Mode)
		return ErrGenErr
	}
	return scalarTransitions[phase](h, ctx, b, req)
}

// read fetches the leaf's value from the datastore, falling back to
// the schema default; with neither, the request is annotated with
// noSuchInstance, which is a valid empty-read result.
func (h *ScalarHandler) read(ctx context.Context, b *ScalarBinding, req *Request) ErrStatus {
	filter, err := schema.SubtreeFilter(b.Entry)
	if err != nil {
		h.log.Errorf("scalar %s: %v", b.Name, err)
		return ErrGenErr
	}
	resp, err := h.ds.Get(ctx, filter)
	if err != nil {
		h.log.Errorf("scalar %s: get: %v", b.Name, err)
		return ErrGenErr
	}
	if err := resp.RPCError(); err != nil {
		h.log.Errorf("scalar %s: get: %v", b.Name, err)
		return ErrGenErr
	}

	var valstr string
	switch x := resp.Find(schema.ConfigPath(b.Entry)); {
	case x != nil:
		valstr = x.Text()
	case b.HasDefault:
		valstr = b.Default
	default:
		req.Exception = TagNoSuchInstance
		return ErrNoError
	}

	v, err := translate.YangToSnmp(valstr, b.Type)
	if err != nil {
		h.log.Errorf("scalar %s: translate %q: %v", b.Name, valstr, err)
		return ErrGenErr
	}
	req.VarBind.Value = v
	return ErrNoError
}

// reserveType verifies the incoming tag against the schema type. A
// mismatch is a per-object error; the rest of the PDU proceeds.
func (h *ScalarHandler) reserveType(_ context.Context, b *ScalarBinding, req *Request) ErrStatus {
	want, err := translate.TagFor(b.Type)
	if err != nil {
		h.log.Errorf("scalar %s: %v", b.Name, err)
		return ErrGenErr
	}
	if req.VarBind.Value.Tag != want {
		req.SetError(ErrWrongType)
	}
	return ErrNoError
}

// action translates the incoming value and stages it as a merge edit
// against the candidate datastore.
func (h *ScalarHandler) action(ctx context.Context, b *ScalarBinding, req *Request) ErrStatus {
	valstr, err := translate.SnmpToYang(req.VarBind.Value, b.Type)
	if err != nil {
		if errors.Is(err, translate.ErrWrongType) {
			req.SetError(ErrWrongType)
			return ErrNoError
		}
		req.SetError(ErrWrongValue)
		return ErrNoError
	}
	frag, err := schema.EditFragment(b.Entry, valstr)
	if err != nil {
		h.log.Errorf("scalar %s: %v", b.Name, err)
		return ErrGenErr
	}
	resp, err := h.ds.EditConfig(ctx, frag)
	if err != nil {
		h.log.Errorf("scalar %s: edit-config: %v", b.Name, err)
		return ErrGenErr
	}
	if err := resp.RPCError(); err != nil {
		h.log.Errorf("scalar %s: edit-config: %v", b.Name, err)
		return ErrGenErr
	}
	return ErrNoError
}

func (h *ScalarHandler) commit(ctx context.Context, b *ScalarBinding, _ *Request) ErrStatus {
	if err := h.ds.Commit(ctx); err != nil {
		h.log.Errorf("scalar %s: commit: %v", b.Name, err)
		return ErrGenErr
	}
	return ErrNoError
}

// undo discards the whole candidate session. This is coarser than
// per-object undo: every staged edit of the transaction is rolled back.
func (h *ScalarHandler) undo(ctx context.Context, b *ScalarBinding, _ *Request) ErrStatus {
	if err := h.ds.Discard(ctx); err != nil {
		h.log.Errorf("scalar %s: discard: %v", b.Name, err)
		return ErrGenErr
	}
	return ErrNoError
}

func (h *ScalarHandler) noop(_ context.Context, _ *ScalarBinding, _ *Request) ErrStatus {
	return ErrNoError
}
