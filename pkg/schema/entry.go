package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"
)

// ParsePath splits a slash separated schema path into its elements.
func ParsePath(p string) []string {
	pe := make([]string, 0, 4)
	for _, e := range strings.Split(p, "/") {
		if e != "" {
			pe = append(pe, e)
		}
	}
	return pe
}

// GetEntry resolves a path, element by element, to an entry in the
// schema tree. The first element may carry a "module:" prefix; without
// one all top level modules are searched.
func (sc *Schema) GetEntry(pe []string) (*yang.Entry, error) {
	if len(pe) == 0 {
		return sc.root, nil
	}
	first := pe[0]
	offset := 1
	if index := strings.Index(pe[0], ":"); index > 0 {
		first = pe[0][:index]
		pe[0] = pe[0][index+1:]
		offset = 0
	}
	if e, ok := sc.root.Dir[first]; ok && e != nil {
		return getEntry(e, pe[offset:])
	}
	// skip first level modules and try their children
	for _, child := range sc.root.Dir {
		if cc, ok := child.Dir[first]; ok {
			return getEntry(cc, pe[1:])
		}
	}
	return nil, fmt.Errorf("%q not found", pe[0])
}

func getEntry(e *yang.Entry, pe []string) (*yang.Entry, error) {
	if len(pe) == 0 {
		return e, nil
	}
	if e.Dir == nil {
		return nil, errors.New("not found")
	}
	if ee, ok := e.Dir[pe[0]]; ok {
		return getEntry(ee, pe[1:])
	}
	// descend through choice/case layers
	for _, ee := range e.Dir {
		if !ee.IsChoice() && !ee.IsCase() {
			continue
		}
		if r, err := getEntry(ee, pe); err == nil {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%q not found", pe[0])
}
