package shader

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// registryFile is the TOML layout of node type definitions:
//
//	[[node]]
//	id = "ShaderNodeClamp"
//	label = "Clamp"
//
//	  [[node.input]]
//	  name = "Value"
//	  kind = "float"
//	  default = 1.0
//
//	  [[node.output]]
//	  name = "Result"
//	  kind = "float"
type registryFile struct {
	Node []struct {
		ID     string      `toml:"id"`
		Label  string      `toml:"label"`
		Input  []socketDef `toml:"input"`
		Output []socketDef `toml:"output"`
	} `toml:"node"`
}

type socketDef struct {
	Name    string `toml:"name"`
	Kind    string `toml:"kind"`
	Default any    `toml:"default"`
	Multi   bool   `toml:"multi"`
}

// LoadRegistryTOML reads node type definitions from a TOML file.
func LoadRegistryTOML(path string) (*Registry, error) {
	var f registryFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return f.registry()
}

// ReadRegistryTOML decodes node type definitions from r.
func ReadRegistryTOML(r io.Reader) (*Registry, error) {
	var f registryFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return f.registry()
}

func (f registryFile) registry() (*Registry, error) {
	reg := NewRegistry()
	for _, n := range f.Node {
		if n.ID == "" {
			return nil, fmt.Errorf("node type without id")
		}
		t := NodeType{ID: n.ID, Label: n.Label, Inputs: []SocketDef{}, Outputs: []SocketDef{}}
		for _, d := range n.Input {
			sd, err := d.def()
			if err != nil {
				return nil, fmt.Errorf("node type %s: input %q: %w", n.ID, d.Name, err)
			}
			t.Inputs = append(t.Inputs, sd)
		}
		for _, d := range n.Output {
			sd, err := d.def()
			if err != nil {
				return nil, fmt.Errorf("node type %s: output %q: %w", n.ID, d.Name, err)
			}
			t.Outputs = append(t.Outputs, sd)
		}
		reg.Register(t)
	}
	return reg, nil
}

func (d socketDef) def() (SocketDef, error) {
	if d.Name == "" {
		return SocketDef{}, fmt.Errorf("socket without name")
	}
	kind := SocketKind(d.Kind)
	switch kind {
	case KindFloat, KindInt, KindBool, KindVector, KindColor, KindShader:
	case "":
		kind = KindFloat
	default:
		return SocketDef{}, fmt.Errorf("unknown socket kind %q", d.Kind)
	}
	v, err := tomlValue(d.Default)
	if err != nil {
		return SocketDef{}, err
	}
	return SocketDef{Name: d.Name, Kind: kind, Default: v, Multi: d.Multi}, nil
}

func tomlValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int64:
		return Scalar(float64(v)), nil
	case float64:
		return Scalar(v), nil
	case bool:
		if v {
			return Scalar(1), nil
		}
		return Scalar(0), nil
	case []any:
		out := make(Value, len(v))
		for i, c := range v {
			switch f := c.(type) {
			case int64:
				out[i] = float64(f)
			case float64:
				out[i] = f
			default:
				return nil, fmt.Errorf("default component %d is %T, want number", i, c)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("default is %T, want number or array", raw)
	}
}
