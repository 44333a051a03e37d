// Package yanglib produces the module inventory state mandated by
// RFC 7895 (yang-library) from a loaded schema tree.
package yanglib

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/iptecharch/snmp-server/pkg/datastore"
	"github.com/iptecharch/snmp-server/pkg/schema"
)

// ModuleName is the well-known inventory module that must be part of
// the loaded schema.
const ModuleName = "ietf-yang-library"

// Init verifies the preconditions for serving modules-state. Failures
// here are configuration errors, reported at startup and never at
// request time.
func Init(sc *schema.Schema, moduleSetID string) error {
	if moduleSetID == "" {
		return fmt.Errorf("module-set-id must be defined when %s is served", ModuleName)
	}
	mod := sc.Module(ModuleName)
	if mod == nil {
		return fmt.Errorf("%s not found in schema", ModuleName)
	}
	if mod.Namespace == "" {
		return fmt.Errorf("%s yang namespace not found", ModuleName)
	}
	if mod.Revision == "" {
		return fmt.Errorf("%s has no revision", ModuleName)
	}
	return nil
}

// ModulesRevision returns the revision of the loaded inventory module,
// or the empty string if it is not loaded.
func ModulesRevision(sc *schema.Schema) string {
	mod := sc.Module(ModuleName)
	if mod == nil {
		return ""
	}
	return mod.Revision
}

// ModulesState builds the modules-state document: every loaded module
// in the schema's stored order, with name, revision and namespace
// (empty elements when undeclared, never omitted), its enabled
// features, and its submodules.
func ModulesState(sc *schema.Schema, moduleSetID string) (*etree.Document, error) {
	ylib := sc.Module(ModuleName)
	if ylib == nil {
		return nil, fmt.Errorf("%s not found in schema", ModuleName)
	}
	if ylib.Namespace == "" {
		return nil, fmt.Errorf("%s yang namespace not found", ModuleName)
	}

	doc := etree.NewDocument()
	root := doc.CreateElement("modules-state")
	root.CreateAttr("xmlns", ylib.Namespace)
	root.CreateElement("module-set-id").CreateText(moduleSetID)

	for _, m := range sc.Modules() {
		me := root.CreateElement("module")
		me.CreateElement("name").CreateText(m.Name)
		me.CreateElement("revision").CreateText(m.Revision)
		me.CreateElement("namespace").CreateText(m.Namespace)
		for _, f := range m.Features {
			if sc.FeatureEnabled(m.Name, f) {
				me.CreateElement("feature").CreateText(f)
			}
		}
		for _, sub := range m.Submodules {
			se := me.CreateElement("submodule")
			se.CreateElement("name").CreateText(sub.Name)
			se.CreateElement("revision").CreateText(sub.Revision)
		}
	}
	return doc, nil
}

// MergeState builds the report, round-trips it through the parser as a
// well-formedness check, and merges it into result. A parse failure
// after serialization is recoverable: an operation-failed document is
// merged in its place and no error is returned.
func MergeState(sc *schema.Schema, moduleSetID string, result *etree.Element) error {
	doc, err := ModulesState(sc, moduleSetID)
	if err != nil {
		return err
	}
	s, err := doc.WriteToString()
	if err != nil {
		return err
	}
	parsed := etree.NewDocument()
	if err := parsed.ReadFromString(s); err != nil {
		failed := datastore.OperationFailed("protocol", err.Error())
		datastore.Merge(result, &failed.Element)
		return nil
	}
	datastore.Merge(result, &parsed.Element)
	return nil
}
