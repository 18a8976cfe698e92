// Package services maps human service names ("Telegram") to vendor service codes ("tg").
package services

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed services.yaml
var bundled []byte

// Entry is one row of the reference table.
type Entry struct {
	Name string `yaml:"name" json:"name"`
	Code string `yaml:"code" json:"code"`
}

// Map is an immutable name → code lookup. It is safe for concurrent reads.
type Map struct {
	codes map[string]string
}

// Bundled parses the table compiled into the binary.
func Bundled() (*Map, error) {
	return Parse(bundled)
}

// LoadFile parses a table from disk. YAML and JSON are both accepted.
func LoadFile(path string) (*Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service table %s: %w", path, err)
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("service table %s: %w", path, err)
	}
	return m, nil
}

// Load reads path when set, otherwise the bundled table.
func Load(path string) (*Map, error) {
	if strings.TrimSpace(path) == "" {
		return Bundled()
	}
	return LoadFile(path)
}

// Parse builds a Map from a list of {name, code} entries.
func Parse(raw []byte) (*Map, error) {
	var entries []Entry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse service table: %w", err)
	}
	return New(entries)
}

// New builds a Map from entries. Entries must have both fields; a name may only
// appear twice if it maps to the same code.
func New(entries []Entry) (*Map, error) {
	if len(entries) == 0 {
		return nil, errors.New("service table is empty")
	}
	codes := make(map[string]string, len(entries))
	for i, e := range entries {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		code := strings.TrimSpace(e.Code)
		if name == "" || code == "" {
			return nil, fmt.Errorf("service table entry %d: name and code are required", i)
		}
		if prev, ok := codes[name]; ok && prev != code {
			return nil, fmt.Errorf("service table entry %d: %q maps to both %q and %q", i, e.Name, prev, code)
		}
		codes[name] = code
	}
	return &Map{codes: codes}, nil
}

// Lookup returns the code for a service name, ignoring case.
func (m *Map) Lookup(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	code, ok := m.codes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// Resolve returns the vendor code for service, or service unchanged when the table
// has no such name. Codes therefore pass through as they are.
func (m *Map) Resolve(service string) string {
	if code, ok := m.Lookup(service); ok {
		return code
	}
	return service
}

// Len reports the number of distinct names.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.codes)
}
