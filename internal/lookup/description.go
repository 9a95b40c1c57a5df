package lookup

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

type Format int

const (
	YAML Format = iota
	JSON
)

func (f Format) String() string {
	if f == JSON {
		return "json"
	}
	return "yaml"
}

// FormatFromPath returns the format of a whitelist file based on its extension, YAML is the default.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return JSON
	}
	return YAML
}

// A Description is the declarative whitelist: the classes a script can reference and their reachable members.
type Description struct {
	Version  string             `yaml:"version" json:"version"`
	Requires string             `yaml:"requires,omitempty" json:"requires,omitempty"` //constraint on the language version
	Classes  []ClassDescription `yaml:"classes" json:"classes"`
}

type ClassDescription struct {
	Name          string                   `yaml:"name" json:"name"`
	Extends       string                   `yaml:"extends,omitempty" json:"extends,omitempty"`
	Constructors  []ConstructorDescription `yaml:"constructors,omitempty" json:"constructors,omitempty"`
	Methods       []MethodDescription      `yaml:"methods,omitempty" json:"methods,omitempty"`
	StaticMethods []MethodDescription      `yaml:"static_methods,omitempty" json:"static_methods,omitempty"`
}

type ConstructorDescription struct {
	Params []string `yaml:"params" json:"params"`
}

type MethodDescription struct {
	Name    string   `yaml:"name" json:"name"`
	Params  []string `yaml:"params" json:"params"`
	Returns string   `yaml:"returns" json:"returns"`
}

func ParseDescription(data []byte, format Format) (*Description, error) {
	if err := ValidateDescription(data, format); err != nil {
		return nil, err
	}

	desc := &Description{}

	var err error
	switch format {
	case JSON:
		err = json.Unmarshal(data, desc)
	default:
		err = yaml.Unmarshal(data, desc)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse whitelist description (%s): %w", format, err)
	}
	return desc, nil
}
