package snmp

import (
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/sirupsen/logrus"

	"github.com/iptecharch/snmp-server/pkg/datastore"
	"github.com/iptecharch/snmp-server/pkg/schema"
)

const testMod = `
module test-mod {
  yang-version 1.1;
  namespace "urn:test:mod";
  prefix tm;

  container system {
    leaf hostname { type string; }
    leaf mtu { type uint16; default "1500"; }
    leaf enabled { type boolean; default "true"; }
    leaf location { type string; }
  }
  container interfaces {
    list interface {
      key "name";
      leaf name { type string; }
      leaf mtu { type uint16; }
      leaf enabled { type boolean; default "true"; }
    }
  }
}
`

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sc, err := schema.NewFromSources(map[string]string{"test-mod": testMod}, nil)
	if err != nil {
		t.Fatalf("parsing test schema: %v", err)
	}
	return sc
}

func testEntry(t *testing.T, sc *schema.Schema, path ...string) *yang.Entry {
	t.Helper()
	e, err := sc.GetEntry(path)
	if err != nil {
		t.Fatalf("entry %v: %v", path, err)
	}
	return e
}

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func mustOid(t *testing.T, s string) Oid {
	t.Helper()
	o, err := ParseOid(s)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

// fakeClient is an in-memory datastore.Client: Get serves a canned
// document, edits and transaction calls are recorded.
type fakeClient struct {
	data     string
	getErr   error
	editErr  error
	edits    []string
	commits  int
	discards int
}

func (f *fakeClient) Get(_ context.Context, _ string) (*datastore.Response, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(f.data); err != nil {
		return nil, err
	}
	return datastore.NewResponse(doc), nil
}

func (f *fakeClient) EditConfig(_ context.Context, config string) (*datastore.Response, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.edits = append(f.edits, config)
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<ok/>"); err != nil {
		return nil, err
	}
	return datastore.NewResponse(doc), nil
}

func (f *fakeClient) Commit(_ context.Context) error {
	f.commits++
	return nil
}

func (f *fakeClient) Discard(_ context.Context) error {
	f.discards++
	return nil
}

func (f *fakeClient) Close() error {
	return nil
}
