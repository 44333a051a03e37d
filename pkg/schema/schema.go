package schema

import (
	"fmt"
	"sort"
	"time"

	"github.com/openconfig/goyang/pkg/yang"
	"github.com/sirupsen/logrus"

	"github.com/iptecharch/snmp-server/pkg/config"
)

// Schema wraps a parsed YANG module set. The entry tree and the module
// statements are read-only after New returns; request handlers only
// query it.
type Schema struct {
	config *config.SchemaConfig

	root    *yang.Entry
	modules *yang.Modules
	// module names in stored order, drives modules-state emission
	moduleNames []string
	// enabled features, module name -> feature name
	features map[string]map[string]bool
}

func New(sCfg *config.SchemaConfig, log *logrus.Entry) (*Schema, error) {
	sc := &Schema{
		config:  sCfg,
		root:    &yang.Entry{},
		modules: yang.NewModules(),
	}
	now := time.Now()
	var err error
	sCfg.Files, err = findYangFiles(sCfg.Files)
	if err != nil {
		return nil, err
	}
	if err = sc.readYANGFiles(); err != nil {
		return nil, err
	}
	sc.build(sCfg.Features)
	if log != nil {
		log.Infof("schema %s parsed in %s", sCfg.Name, time.Since(now))
	}
	return sc, nil
}

// NewFromSources parses YANG modules from in-memory sources, keyed by
// module name. Used by tests and embedders.
func NewFromSources(sources map[string]string, features map[string][]string) (*Schema, error) {
	sc := &Schema{
		config:  &config.SchemaConfig{},
		root:    &yang.Entry{},
		modules: yang.NewModules(),
	}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := sc.modules.Parse(sources[name], name+".yang"); err != nil {
			return nil, err
		}
	}
	if errs := sc.modules.Process(); len(errs) > 0 {
		return nil, fmt.Errorf("yang processing failed: %v", errs[0])
	}
	sc.build(features)
	return sc, nil
}

func (sc *Schema) build(features map[string][]string) {
	mods := uniqueModules(sc.modules)
	sc.root = &yang.Entry{
		Name: "root",
		Kind: yang.DirectoryEntry,
		Dir:  make(map[string]*yang.Entry, len(mods)),
	}
	sc.moduleNames = make([]string, 0, len(mods))
	for _, m := range mods {
		e := yang.ToEntry(m)
		sc.root.Dir[e.Name] = e
		sc.moduleNames = append(sc.moduleNames, m.Name)
	}
	sc.features = make(map[string]map[string]bool, len(features))
	for mod, fs := range features {
		set := make(map[string]bool, len(fs))
		for _, f := range fs {
			set[f] = true
		}
		sc.features[mod] = set
	}
}

// uniqueModules resolves the name and name@revision aliases the parser
// keeps for the same module statement, in stable name order.
func uniqueModules(ms *yang.Modules) []*yang.Module {
	seen := make(map[*yang.Module]struct{})
	byName := make(map[string]*yang.Module)
	for _, m := range ms.Modules {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		byName[m.Name] = m
	}
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	mods := make([]*yang.Module, 0, len(names))
	for _, n := range names {
		mods = append(mods, byName[n])
	}
	return mods
}

func (sc *Schema) Name() string {
	if sc == nil {
		return ""
	}
	return sc.config.Name
}

func (sc *Schema) Files() []string {
	return sc.config.Files
}

// FeatureEnabled reports whether the given feature of the given module
// is enabled in this deployment.
func (sc *Schema) FeatureEnabled(module, feature string) bool {
	return sc.features[module][feature]
}
