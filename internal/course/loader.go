package course

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a course from YAML.
func Load(r io.Reader) (Course, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Course{}, fmt.Errorf("read course: %w", err)
	}
	var c Course
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Course{}, fmt.Errorf("parse course yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Course{}, err
	}
	return c, nil
}

// LoadFile reads and validates a course from a YAML file on disk.
func LoadFile(path string) (Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return Course{}, fmt.Errorf("open course file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
