package snmp

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/sirupsen/logrus"

	"github.com/iptecharch/snmp-server/pkg/datastore"
	"github.com/iptecharch/snmp-server/pkg/schema"
	"github.com/iptecharch/snmp-server/pkg/snmp/translate"
)

// tableState holds the materialized table contents: all cells in
// composite-identifier order. It is rebuilt at every walk start, so a
// row added or removed in the datastore shows up on the next walk, not
// mid-walk.
type tableState struct {
	cells []*tableCell
}

type tableCell struct {
	oid   Oid
	value string
	typ   *yang.YangType
}

// TableHandler implements the walk and operation state machine for
// tabular managed objects. Tables are served read-only: the set phases
// are accepted without staging any datastore mutation.
type TableHandler struct {
	ds  datastore.Client
	log *logrus.Entry
}

func NewTableHandler(ds datastore.Client, log *logrus.Entry) *TableHandler {
	return &TableHandler{ds: ds, log: log}
}

// Handle dispatches one runtime invocation. A binding without a list
// child is a no-op success: there is nothing to enumerate.
func (h *TableHandler) Handle(ctx context.Context, b *TableBinding, ri *RequestInfo, req *Request) ErrStatus {
	h.log.Debugf("table %s %s", b.Name, ri.Mode)
	if b.List == nil {
		switch ri.Mode {
		case ModeGetNext:
			req.Exception = TagEndOfMibView
		case ModeGet:
			req.Exception = TagNoSuchInstance
		}
		return ErrNoError
	}
	switch ri.Mode {
	case ModeGetNext:
		return h.getNext(ctx, b, req)
	case ModeGet:
		return h.get(ctx, b, req)
	case ModeSetReserve1, ModeSetReserve2, ModeSetAction,
		ModeSetCommit, ModeSetUndo, ModeSetFree:
		return ErrNoError
	}
	h.log.Errorf("table %s: unexpected mode %d", b.Name, ri.Mode)
	return ErrGenErr
}

// getNext serves the protocol-driven walk: the first cell whose
// composite identifier is strictly greater than the requested one.
// Exhaustion is signalled as endOfMibView, not an error.
func (h *TableHandler) getNext(ctx context.Context, b *TableBinding, req *Request) ErrStatus {
	// a request at or before the table's first cell space starts a
	// fresh walk and triggers a rebuild
	if b.state == nil || req.VarBind.Oid.Compare(b.Oid.Append(tableEntrySub)) < 0 {
		if err := h.materialize(ctx, b); err != nil {
			h.log.Errorf("table %s: materialize: %v", b.Name, err)
			return ErrGenErr
		}
	}
	for _, c := range b.state.cells {
		if c.oid.Compare(req.VarBind.Oid) > 0 {
			return h.fill(b, req, c, true)
		}
	}
	req.Exception = TagEndOfMibView
	return ErrNoError
}

// get addresses one cell by its exact composite identifier.
func (h *TableHandler) get(ctx context.Context, b *TableBinding, req *Request) ErrStatus {
	if b.state == nil {
		if err := h.materialize(ctx, b); err != nil {
			h.log.Errorf("table %s: materialize: %v", b.Name, err)
			return ErrGenErr
		}
	}
	for _, c := range b.state.cells {
		if c.oid.Compare(req.VarBind.Oid) == 0 {
			return h.fill(b, req, c, false)
		}
	}
	req.Exception = TagNoSuchInstance
	return ErrNoError
}

func (h *TableHandler) fill(b *TableBinding, req *Request, c *tableCell, rewriteOid bool) ErrStatus {
	v, err := translate.YangToSnmp(c.value, c.typ)
	if err != nil {
		h.log.Errorf("table %s: translate %q: %v", b.Name, c.value, err)
		return ErrGenErr
	}
	if rewriteOid {
		req.VarBind.Oid = c.oid.Clone()
	}
	req.VarBind.Value = v
	return ErrNoError
}

// tableEntrySub is the conceptual-row sub-identifier below the table
// root, per SMI table layout (table.1.column.index).
const tableEntrySub uint32 = 1

// materialize rebuilds the table contents from the datastore: one row
// per list instance keyed by the declared key leaves, one cell per
// column leaf present (or defaulted).
func (h *TableHandler) materialize(ctx context.Context, b *TableBinding) error {
	filter, err := schema.SubtreeFilter(b.Entry)
	if err != nil {
		return err
	}
	resp, err := h.ds.Get(ctx, filter)
	if err != nil {
		return err
	}
	if err := resp.RPCError(); err != nil {
		return err
	}

	st := &tableState{cells: make([]*tableCell, 0, 16)}
	container := resp.Find(schema.ConfigPath(b.Entry))
	if container == nil {
		// empty datastore subtree, empty table
		b.state = st
		return nil
	}
	for _, rowEl := range container.SelectElements(b.List.Name) {
		index, err := rowIndex(rowEl, b.KeyLeaves())
		if err != nil {
			h.log.Warnf("table %s: skipping row: %v", b.Name, err)
			continue
		}
		for _, col := range b.columns {
			value, ok := cellValue(rowEl, col.leaf)
			if !ok {
				continue
			}
			st.cells = append(st.cells, &tableCell{
				oid:   b.Oid.Append(tableEntrySub, col.sub).Append(index...),
				value: value,
				typ:   col.leaf.Type,
			})
		}
	}
	sort.Slice(st.cells, func(i, j int) bool {
		return st.cells[i].oid.Compare(st.cells[j].oid) < 0
	})
	b.state = st
	return nil
}

func cellValue(rowEl *etree.Element, leaf *yang.Entry) (string, bool) {
	if el := rowEl.SelectElement(leaf.Name); el != nil {
		return el.Text(), true
	}
	if dv, ok := leaf.SingleDefaultValue(); ok {
		return dv, true
	}
	return "", false
}

// rowIndex encodes the row's key leaf values as index sub-identifiers:
// integer keys become one sub-identifier each, string keys are encoded
// length-prefixed, one sub-identifier per byte (SMI INDEX rules).
func rowIndex(rowEl *etree.Element, keyLeaves []*yang.Entry) ([]uint32, error) {
	if len(keyLeaves) == 0 {
		return nil, fmt.Errorf("list has no key leaves")
	}
	index := make([]uint32, 0, 4)
	for _, leaf := range keyLeaves {
		el := rowEl.SelectElement(leaf.Name)
		if el == nil {
			return nil, fmt.Errorf("row misses key leaf %q", leaf.Name)
		}
		subids, err := indexSubids(el.Text(), leaf.Type)
		if err != nil {
			return nil, fmt.Errorf("key leaf %q: %v", leaf.Name, err)
		}
		index = append(index, subids...)
	}
	return index, nil
}

func indexSubids(value string, yt *yang.YangType) ([]uint32, error) {
	switch yt.Kind {
	case yang.Yint8, yang.Yint16, yang.Yint32,
		yang.Yuint8, yang.Yuint16, yang.Yuint32:
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("illegal index value %q: %v", value, err)
		}
		return []uint32{uint32(v)}, nil
	default:
		subids := make([]uint32, 0, len(value)+1)
		subids = append(subids, uint32(len(value)))
		for _, c := range []byte(value) {
			subids = append(subids, uint32(c))
		}
		return subids, nil
	}
}
