package config

import (
	"os"

	"sigs.k8s.io/yaml"
)

// LoadOptionsFile overrides the migration settings with the ones found in a
// YAML file. Keys missing from the file keep their current value.
//
//	rowAsRoom: true
//	pduMount: right
func (c *Config) LoadOptionsFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if c.Migration == nil {
		c.Migration = &migrationConfig{}
	}
	return yaml.UnmarshalStrict(content, c.Migration)
}
