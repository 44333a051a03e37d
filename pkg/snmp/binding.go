package snmp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"
)

// ScalarBinding associates one OID prefix with one schema leaf. Created
// once at registration, immutable afterwards.
type ScalarBinding struct {
	Name  string
	Oid   Oid
	Entry *yang.Entry
	Type  *yang.YangType

	// schema-declared default, used as the read-path fallback
	Default    string
	HasDefault bool
}

func NewScalarBinding(name string, oid Oid, e *yang.Entry) (*ScalarBinding, error) {
	if !e.IsLeaf() {
		return nil, fmt.Errorf("scalar %q: schema node %q is not a leaf", name, e.Name)
	}
	if e.Type == nil {
		return nil, fmt.Errorf("scalar %q: leaf %q has no type", name, e.Name)
	}
	b := &ScalarBinding{
		Name:  name,
		Oid:   oid.Clone(),
		Entry: e,
		Type:  e.Type,
	}
	b.Default, b.HasDefault = e.SingleDefaultValue()
	return b, nil
}

// InstanceOid is the OID addressing the scalar's single instance
// (the registered prefix plus the .0 instance sub-identifier).
func (b *ScalarBinding) InstanceOid() Oid {
	return b.Oid.Append(0)
}

// TableBinding associates one OID prefix with a schema container
// holding a keyed list. The binding itself is immutable; the
// materialized table contents hanging off it are rebuilt at every walk
// start.
type TableBinding struct {
	Name  string
	Oid   Oid
	Entry *yang.Entry
	// List is the list child of Entry, nil when the container has
	// none; a binding without a list serves no cells.
	List *yang.Entry

	columns []*tableColumn
	state   *tableState
}

// tableColumn maps one list leaf to its column sub-identifier.
type tableColumn struct {
	sub  uint32
	leaf *yang.Entry
}

func NewTableBinding(name string, oid Oid, e *yang.Entry) (*TableBinding, error) {
	if e.Dir == nil {
		return nil, fmt.Errorf("table %q: schema node %q has no children", name, e.Name)
	}
	b := &TableBinding{
		Name:  name,
		Oid:   oid.Clone(),
		Entry: e,
	}
	b.List = findListChild(e)
	if b.List != nil {
		b.columns = tableColumns(b.List)
	}
	return b, nil
}

func findListChild(e *yang.Entry) *yang.Entry {
	names := make([]string, 0, len(e.Dir))
	for n := range e.Dir {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if e.Dir[n].IsList() {
			return e.Dir[n]
		}
	}
	return nil
}

// tableColumns assigns column sub-identifiers to the list's leaves:
// key leaves first in their declared order, remaining leaves sorted by
// name, numbered from 1.
func tableColumns(list *yang.Entry) []*tableColumn {
	keyNames := strings.Fields(list.Key)
	isKey := make(map[string]bool, len(keyNames))
	cols := make([]*tableColumn, 0, len(list.Dir))
	for _, k := range keyNames {
		if leaf, ok := list.Dir[k]; ok && leaf.IsLeaf() {
			isKey[k] = true
			cols = append(cols, &tableColumn{leaf: leaf})
		}
	}
	rest := make([]string, 0, len(list.Dir))
	for n, c := range list.Dir {
		if c.IsLeaf() && !isKey[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	for _, n := range rest {
		cols = append(cols, &tableColumn{leaf: list.Dir[n]})
	}
	for i, c := range cols {
		c.sub = uint32(i + 1)
	}
	return cols
}

// KeyLeaves returns the list's key leaves in declared key order.
func (b *TableBinding) KeyLeaves() []*yang.Entry {
	if b.List == nil {
		return nil
	}
	keyNames := strings.Fields(b.List.Key)
	leaves := make([]*yang.Entry, 0, len(keyNames))
	for _, k := range keyNames {
		if leaf, ok := b.List.Dir[k]; ok {
			leaves = append(leaves, leaf)
		}
	}
	return leaves
}
