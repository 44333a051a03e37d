package schema

import (
	"github.com/openconfig/goyang/pkg/yang"
)

// Submodule identifies one included submodule of a module.
type Submodule struct {
	Name     string
	Revision string
}

// ModuleInfo is the introspection view of one loaded module, as needed
// by the yang-library state report.
type ModuleInfo struct {
	Name       string
	Revision   string // empty if the module declares none
	Namespace  string // empty if the module declares none
	Features   []string
	Submodules []Submodule
}

// Modules returns all loaded modules in the schema's stored order.
// Imported and included modules are reported like directly loaded ones.
func (sc *Schema) Modules() []*ModuleInfo {
	infos := make([]*ModuleInfo, 0, len(sc.moduleNames))
	for _, name := range sc.moduleNames {
		mod := sc.findModule(name)
		if mod == nil {
			continue
		}
		infos = append(infos, sc.moduleInfo(mod))
	}
	return infos
}

// Module returns introspection data for one module, nil if unknown.
func (sc *Schema) Module(name string) *ModuleInfo {
	mod := sc.findModule(name)
	if mod == nil {
		return nil
	}
	return sc.moduleInfo(mod)
}

func (sc *Schema) findModule(name string) *yang.Module {
	if m, ok := sc.modules.Modules[name]; ok {
		return m
	}
	return nil
}

func (sc *Schema) moduleInfo(m *yang.Module) *ModuleInfo {
	info := &ModuleInfo{
		Name:     m.Name,
		Revision: latestRevision(m.Revision),
	}
	if m.Namespace != nil {
		info.Namespace = m.Namespace.Name
	}
	for _, f := range m.Feature {
		info.Features = append(info.Features, f.Name)
	}
	for _, inc := range m.Include {
		sub := Submodule{Name: inc.Name}
		if sm, ok := sc.modules.SubModules[inc.Name]; ok {
			sub.Revision = latestRevision(sm.Revision)
		}
		info.Submodules = append(info.Submodules, sub)
	}
	return info
}

// latestRevision picks the most recent revision date. Revision
// statements carry ISO dates, so the lexicographic maximum is the
// newest one.
func latestRevision(revs []*yang.Revision) string {
	latest := ""
	for _, r := range revs {
		if r.Name > latest {
			latest = r.Name
		}
	}
	return latest
}
