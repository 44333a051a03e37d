package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	SNMP       *SNMPConfig      `yaml:"snmp,omitempty" json:"snmp,omitempty"`
	Schema     *SchemaConfig    `yaml:"schema,omitempty" json:"schema,omitempty"`
	Datastore  *DatastoreConfig `yaml:"datastore,omitempty" json:"datastore,omitempty"`
	Prometheus *PromConfig      `yaml:"prometheus,omitempty" json:"prometheus,omitempty"`
}

func New(file string) (*Config, error) {
	c := new(Config)
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(b, c)
		if err != nil {
			return nil, err
		}
	}
	err := c.validateSetDefaults()
	return c, err
}

func (c *Config) validateSetDefaults() error {
	if c.SNMP == nil {
		return errors.New("missing snmp config section")
	}
	if err := c.SNMP.validateSetDefaults(); err != nil {
		return err
	}
	if c.Schema == nil {
		return errors.New("missing schema config section")
	}
	if err := c.Schema.validateSetDefaults(); err != nil {
		return err
	}
	if c.Datastore == nil {
		return errors.New("missing datastore config section")
	}
	if err := c.Datastore.validateSetDefaults(); err != nil {
		return err
	}
	return nil
}

// SNMPConfig configures the agent-facing side: the module-set
// identifier reported through the yang-library subtree and the managed
// object mappings registered at startup.
type SNMPConfig struct {
	// ModuleSetID is the yang-library module-set-id string. Required.
	ModuleSetID string `yaml:"module-set-id,omitempty" json:"module-set-id,omitempty"`
	// Mappings bind OID prefixes to schema paths.
	Mappings []*Mapping `yaml:"mappings,omitempty" json:"mappings,omitempty"`
}

func (c *SNMPConfig) validateSetDefaults() error {
	if c.ModuleSetID == "" {
		return errors.New("snmp.module-set-id must be defined")
	}
	names := make(map[string]struct{}, len(c.Mappings))
	for _, m := range c.Mappings {
		if err := m.validate(); err != nil {
			return err
		}
		if _, ok := names[m.Name]; ok {
			return fmt.Errorf("duplicate mapping name %q", m.Name)
		}
		names[m.Name] = struct{}{}
	}
	return nil
}

// Mapping associates one OID prefix with one schema node. A path
// pointing at a container with a list child becomes a table binding,
// a path pointing at a leaf a scalar binding.
type Mapping struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Oid  string `yaml:"oid,omitempty" json:"oid,omitempty"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

func (m *Mapping) validate() error {
	if m.Name == "" {
		return errors.New("mapping name must be defined")
	}
	if m.Oid == "" {
		return fmt.Errorf("mapping %q: oid must be defined", m.Name)
	}
	if m.Path == "" {
		return fmt.Errorf("mapping %q: path must be defined", m.Name)
	}
	return nil
}

type SchemaConfig struct {
	Name        string   `yaml:"name,omitempty" json:"name,omitempty"`
	Files       []string `yaml:"files,omitempty" json:"files,omitempty"`
	Directories []string `yaml:"directories,omitempty" json:"directories,omitempty"`
	Excludes    []string `yaml:"excludes,omitempty" json:"excludes,omitempty"`
	// Features lists the enabled features per module name.
	Features map[string][]string `yaml:"features,omitempty" json:"features,omitempty"`
}

func (c *SchemaConfig) validateSetDefaults() error {
	if len(c.Files) == 0 && len(c.Directories) == 0 {
		return errors.New("schema.files or schema.directories must be defined")
	}
	return nil
}

// DatastoreConfig describes the NETCONF endpoint holding the
// configuration the managed objects are backed by.
type DatastoreConfig struct {
	Address     string       `yaml:"address,omitempty" json:"address,omitempty"`
	Port        int          `yaml:"port,omitempty" json:"port,omitempty"`
	Credentials *Credentials `yaml:"credentials,omitempty" json:"credentials,omitempty"`
}

func (c *DatastoreConfig) validateSetDefaults() error {
	if c.Address == "" {
		return errors.New("datastore.address must be defined")
	}
	if c.Port <= 0 {
		c.Port = defaultNETCONFPort
	}
	return nil
}

type Credentials struct {
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
}

type PromConfig struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
}
