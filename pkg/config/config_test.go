package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validConfig = `
snmp:
  module-set-id: "42"
  mappings:
    - name: sysName
      oid: 1.3.6.1.2.1.1.5
      path: /system/hostname
    - name: ifTable
      oid: 1.3.6.1.2.1.2.2
      path: /interfaces
schema:
  name: test
  files:
    - testdata/yang
datastore:
  address: 172.20.20.2
  credentials:
    username: admin
    password: admin
prometheus:
  address: :9090
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestNew(t *testing.T) {
	c, err := New(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.SNMP.ModuleSetID != "42" {
		t.Errorf("module-set-id %q", c.SNMP.ModuleSetID)
	}
	if len(c.SNMP.Mappings) != 2 {
		t.Fatalf("%d mappings, want 2", len(c.SNMP.Mappings))
	}
	if m := c.SNMP.Mappings[0]; m.Name != "sysName" || m.Oid != "1.3.6.1.2.1.1.5" || m.Path != "/system/hostname" {
		t.Errorf("mapping %+v", m)
	}
	if c.Datastore.Port != 830 {
		t.Errorf("default netconf port %d, want 830", c.Datastore.Port)
	}
	if c.Prometheus == nil || c.Prometheus.Address != ":9090" {
		t.Error("prometheus section not read")
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing module-set-id",
			content: `
snmp:
  mappings:
    - name: sysName
      oid: 1.3.6.1.2.1.1.5
      path: /system/hostname
schema:
  files: [testdata/yang]
datastore:
  address: 172.20.20.2
`,
		},
		{
			name: "duplicate mapping name",
			content: `
snmp:
  module-set-id: "42"
  mappings:
    - name: sysName
      oid: 1.3.6.1.2.1.1.5
      path: /system/hostname
    - name: sysName
      oid: 1.3.6.1.2.1.1.6
      path: /system/location
schema:
  files: [testdata/yang]
datastore:
  address: 172.20.20.2
`,
		},
		{
			name: "mapping without path",
			content: `
snmp:
  module-set-id: "42"
  mappings:
    - name: sysName
      oid: 1.3.6.1.2.1.1.5
schema:
  files: [testdata/yang]
datastore:
  address: 172.20.20.2
`,
		},
		{
			name: "missing schema section",
			content: `
snmp:
  module-set-id: "42"
datastore:
  address: 172.20.20.2
`,
		},
		{
			name: "datastore without address",
			content: `
snmp:
  module-set-id: "42"
schema:
  files: [testdata/yang]
datastore:
  port: 830
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewMissingFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
