package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testModA = `
module test-a {
  yang-version 1.1;
  namespace "urn:test:a";
  prefix ta;

  revision 2020-01-01;
  revision 2019-06-30;

  feature f1;
  feature f2;

  container system {
    leaf hostname { type string; }
    choice transport {
      case tcp { leaf tcp-port { type uint16; } }
      case tls { leaf tls-port { type uint16; } }
    }
  }
}
`

const testModB = `
module test-b {
  yang-version 1.1;
  namespace "urn:test:b";
  prefix tb;

  leaf serial { type string; }
}
`

func testSchema(t *testing.T, features map[string][]string) *Schema {
	t.Helper()
	sc, err := NewFromSources(map[string]string{
		"test-a": testModA,
		"test-b": testModB,
	}, features)
	if err != nil {
		t.Fatalf("parsing test schema: %v", err)
	}
	return sc
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"/system/hostname", []string{"system", "hostname"}},
		{"system/hostname", []string{"system", "hostname"}},
		{"/system//hostname/", []string{"system", "hostname"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := ParsePath(tt.in); !cmp.Equal(got, tt.want) {
			t.Errorf("ParsePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGetEntry(t *testing.T) {
	sc := testSchema(t, nil)
	tests := []struct {
		name string
		path []string
	}{
		{"plain", []string{"system", "hostname"}},
		{"module prefixed", []string{"test-a:system", "hostname"}},
		{"through choice and case", []string{"system", "tcp-port"}},
		{"other module", []string{"serial"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := sc.GetEntry(tt.path)
			if err != nil {
				t.Fatalf("GetEntry(%v): %v", tt.path, err)
			}
			if !e.IsLeaf() {
				t.Errorf("GetEntry(%v) resolved to non-leaf %q", tt.path, e.Name)
			}
		})
	}
}

func TestGetEntryNotFound(t *testing.T) {
	sc := testSchema(t, nil)
	if _, err := sc.GetEntry([]string{"system", "no-such-leaf"}); err == nil {
		t.Error("expected error for unknown leaf")
	}
	if _, err := sc.GetEntry([]string{"no-such-module:system"}); err == nil {
		t.Error("expected error for unknown module")
	}
}

func TestConfigPath(t *testing.T) {
	sc := testSchema(t, nil)
	tests := []struct {
		path []string
		want string
	}{
		{[]string{"system", "hostname"}, "/system/hostname"},
		// choice and case layers do not appear in data paths
		{[]string{"system", "tcp-port"}, "/system/tcp-port"},
		{[]string{"serial"}, "/serial"},
	}
	for _, tt := range tests {
		e, err := sc.GetEntry(tt.path)
		if err != nil {
			t.Fatal(err)
		}
		if got := ConfigPath(e); got != tt.want {
			t.Errorf("ConfigPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNamespace(t *testing.T) {
	sc := testSchema(t, nil)
	e, err := sc.GetEntry([]string{"system", "hostname"})
	if err != nil {
		t.Fatal(err)
	}
	if got := Namespace(e); got != "urn:test:a" {
		t.Errorf("Namespace = %q, want %q", got, "urn:test:a")
	}
}

func TestSubtreeFilter(t *testing.T) {
	sc := testSchema(t, nil)
	e, err := sc.GetEntry([]string{"system", "hostname"})
	if err != nil {
		t.Fatal(err)
	}
	filter, err := SubtreeFilter(e)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`xmlns="urn:test:a"`, "<system", "<hostname"} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter %q misses %q", filter, want)
		}
	}
}

func TestEditFragment(t *testing.T) {
	sc := testSchema(t, nil)
	e, err := sc.GetEntry([]string{"system", "hostname"})
	if err != nil {
		t.Fatal(err)
	}
	frag, err := EditFragment(e, "rtr1")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`xmlns="urn:test:a"`, "<hostname>rtr1</hostname>"} {
		if !strings.Contains(frag, want) {
			t.Errorf("fragment %q misses %q", frag, want)
		}
	}
}

func TestModules(t *testing.T) {
	sc := testSchema(t, nil)
	mods := sc.Modules()
	if len(mods) != 2 {
		t.Fatalf("%d modules, want 2", len(mods))
	}
	if mods[0].Name != "test-a" || mods[1].Name != "test-b" {
		t.Fatalf("module order %q, %q", mods[0].Name, mods[1].Name)
	}
	a := mods[0]
	if a.Revision != "2020-01-01" {
		t.Errorf("revision %q, want newest declared", a.Revision)
	}
	if a.Namespace != "urn:test:a" {
		t.Errorf("namespace %q", a.Namespace)
	}
	if !cmp.Equal(a.Features, []string{"f1", "f2"}) {
		t.Errorf("features %v", a.Features)
	}
	if mods[1].Revision != "" {
		t.Errorf("revisionless module reports %q", mods[1].Revision)
	}
}

func TestModuleUnknown(t *testing.T) {
	sc := testSchema(t, nil)
	if sc.Module("no-such-module") != nil {
		t.Error("unknown module must yield nil")
	}
}

func TestFeatureEnabled(t *testing.T) {
	sc := testSchema(t, map[string][]string{"test-a": {"f1"}})
	if !sc.FeatureEnabled("test-a", "f1") {
		t.Error("f1 is configured enabled")
	}
	if sc.FeatureEnabled("test-a", "f2") {
		t.Error("f2 is not configured")
	}
	if sc.FeatureEnabled("test-b", "f1") {
		t.Error("feature sets are per module")
	}
}
