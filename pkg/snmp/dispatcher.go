package snmp

import (
	"context"
	"fmt"
	"sort"

	"github.com/openconfig/goyang/pkg/yang"
	"github.com/sirupsen/logrus"

	"github.com/iptecharch/snmp-server/pkg/datastore"
)

// Registration is one managed-object registration record: an OID
// prefix routed to exactly one typed binding, resolved once at
// registration time.
type Registration struct {
	Name string
	Oid  Oid

	// exactly one of the two is set
	Scalar *ScalarBinding
	Table  *TableBinding
}

// Dispatcher routes incoming varbinds to their registrations and
// replays the set-transaction phases across all objects of a PDU in
// the documented order. It is the thin stand-in for the agent
// runtime's request loop; PDU decoding and transport stay outside.
//
// Calls are serialized per session by the runtime, so no locking is
// needed here.
type Dispatcher struct {
	regs    []*Registration // sorted by Oid
	scalar  *ScalarHandler
	table   *TableHandler
	metrics *Metrics
	log     *logrus.Entry
}

func NewDispatcher(ds datastore.Client, log *logrus.Entry, metrics *Metrics) *Dispatcher {
	return &Dispatcher{
		regs:    make([]*Registration, 0, 16),
		scalar:  NewScalarHandler(ds, log),
		table:   NewTableHandler(ds, log),
		metrics: metrics,
		log:     log,
	}
}

// RegisterScalar binds an OID prefix to a schema leaf.
func (d *Dispatcher) RegisterScalar(name string, oid Oid, e *yang.Entry) error {
	b, err := NewScalarBinding(name, oid, e)
	if err != nil {
		return err
	}
	return d.register(&Registration{Name: name, Oid: b.Oid, Scalar: b})
}

// RegisterTable binds an OID prefix to a schema container with a list
// child.
func (d *Dispatcher) RegisterTable(name string, oid Oid, e *yang.Entry) error {
	b, err := NewTableBinding(name, oid, e)
	if err != nil {
		return err
	}
	return d.register(&Registration{Name: name, Oid: b.Oid, Table: b})
}

func (d *Dispatcher) register(r *Registration) error {
	for _, existing := range d.regs {
		if existing.Oid.HasPrefix(r.Oid) || r.Oid.HasPrefix(existing.Oid) {
			return fmt.Errorf("registration %q overlaps %q", r.Name, existing.Name)
		}
	}
	d.regs = append(d.regs, r)
	sort.Slice(d.regs, func(i, j int) bool {
		return d.regs[i].Oid.Compare(d.regs[j].Oid) < 0
	})
	d.log.Infof("registered %q at %s", r.Name, r.Oid)
	return nil
}

func (d *Dispatcher) lookup(oid Oid) *Registration {
	for _, r := range d.regs {
		if oid.HasPrefix(r.Oid) {
			return r
		}
	}
	return nil
}

func (d *Dispatcher) handle(ctx context.Context, r *Registration, ri *RequestInfo, req *Request) ErrStatus {
	var st ErrStatus
	switch {
	case r.Scalar != nil:
		st = d.scalar.Handle(ctx, r.Scalar, ri, req)
	case r.Table != nil:
		st = d.table.Handle(ctx, r.Table, ri, req)
	default:
		st = ErrGenErr
	}
	d.metrics.observe(ri.Mode, st)
	return st
}

// Get reads one object. Unknown OIDs yield a noSuchObject exception,
// not an error.
func (d *Dispatcher) Get(ctx context.Context, oid Oid) (*VarBind, ErrStatus) {
	vb := &VarBind{Oid: oid.Clone()}
	req := &Request{VarBind: vb}
	r := d.lookup(oid)
	if r == nil {
		vb.Value = Value{Tag: TagNoSuchObject}
		return vb, ErrNoError
	}
	st := d.handle(ctx, r, &RequestInfo{Mode: ModeGet}, req)
	finishVarBind(req)
	return vb, st
}

// GetNext returns the lexicographically next object after oid, walking
// across registrations. Running past the last registration yields an
// endOfMibView varbind.
func (d *Dispatcher) GetNext(ctx context.Context, oid Oid) (*VarBind, ErrStatus) {
	for _, r := range d.regs {
		var next *VarBind
		var st ErrStatus
		switch {
		case r.Scalar != nil:
			inst := r.Scalar.InstanceOid()
			if inst.Compare(oid) <= 0 {
				continue
			}
			vb := &VarBind{Oid: inst}
			req := &Request{VarBind: vb}
			st = d.handle(ctx, r, &RequestInfo{Mode: ModeGet}, req)
			finishVarBind(req)
			next = vb
		case r.Table != nil:
			vb := &VarBind{Oid: oid.Clone()}
			req := &Request{VarBind: vb}
			st = d.handle(ctx, r, &RequestInfo{Mode: ModeGetNext}, req)
			if req.Exception == TagEndOfMibView {
				continue
			}
			finishVarBind(req)
			next = vb
		}
		if next == nil {
			continue
		}
		if st != ErrNoError {
			return next, st
		}
		// a noSuchInstance result is skipped, the walk moves on
		if next.Value.Tag == TagNoSuchInstance {
			oid = next.Oid
			continue
		}
		return next, ErrNoError
	}
	vb := &VarBind{Oid: oid.Clone(), Value: Value{Tag: TagEndOfMibView}}
	return vb, ErrNoError
}

// Set runs the multi-object set transaction in the documented phase
// order: ReserveType and ReserveResource across all objects, then
// Action, then Commit; any per-object error or handler failure aborts
// into Undo (whole-candidate discard) followed by Free. Per-object
// errors are isolated: an object failing reserve does not keep the
// others from being validated in the same phase.
func (d *Dispatcher) Set(ctx context.Context, vbs []*VarBind) ErrStatus {
	regs := make([]*Registration, len(vbs))
	reqs := make([]*Request, len(vbs))
	for i, vb := range vbs {
		reqs[i] = &Request{VarBind: vb}
		regs[i] = d.lookup(vb.Oid)
		if regs[i] == nil {
			reqs[i].SetError(ErrNoSuchName)
		}
	}

	status := d.firstError(reqs)
	phases := []Mode{ModeSetReserve1, ModeSetReserve2, ModeSetAction, ModeSetCommit}
	for _, mode := range phases {
		if status != ErrNoError {
			break
		}
		for i, req := range reqs {
			if regs[i] == nil {
				continue
			}
			if st := d.handle(ctx, regs[i], &RequestInfo{Mode: mode}, req); st != ErrNoError {
				status = st
			}
		}
		if status == ErrNoError {
			status = d.firstError(reqs)
		}
	}

	if status != ErrNoError {
		d.runPhase(ctx, regs, reqs, ModeSetUndo)
	}
	d.runPhase(ctx, regs, reqs, ModeSetFree)
	return status
}

func (d *Dispatcher) runPhase(ctx context.Context, regs []*Registration, reqs []*Request, mode Mode) {
	for i, req := range reqs {
		if regs[i] == nil {
			continue
		}
		d.handle(ctx, regs[i], &RequestInfo{Mode: mode}, req)
	}
}

func (d *Dispatcher) firstError(reqs []*Request) ErrStatus {
	for _, req := range reqs {
		if req.Error != ErrNoError {
			return req.Error
		}
	}
	return ErrNoError
}

// finishVarBind folds a value exception into the varbind's value slot.
func finishVarBind(req *Request) {
	if req.Exception != 0 {
		req.VarBind.Value = Value{Tag: req.Exception}
	}
}
