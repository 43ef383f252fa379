package container

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/shaderxfer/pkg/errors"
	"github.com/matzehuels/shaderxfer/pkg/shader"
)

// FormatVersion is the container format version written by Save.
const FormatVersion = 1

type file struct {
	Version   int               `json:"version"`
	Materials []json.RawMessage `json:"materials"`
}

type entry struct {
	name  string
	raw   json.RawMessage
	graph *shader.Graph // nil until decoded
}

// Container is an opened material archive.
//
// A Container is not safe for concurrent use.
type Container struct {
	path     string
	registry *shader.Registry
	original []byte
	entries  []*entry
}

// Open reads the container at path. Node types of decoded materials are
// resolved against reg.
func Open(path string, reg *shader.Registry) (*Container, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "container %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContainer, err, "read %s", path)
	}
	c, err := Parse(data, reg)
	if err != nil {
		return nil, err
	}
	c.path = path
	return c, nil
}

// Parse decodes container bytes. The result has no path; use SaveAs to
// write it.
func Parse(data []byte, reg *shader.Registry) (*Container, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContainer, err, "decode container")
	}
	if f.Version > FormatVersion {
		return nil, errors.New(errors.ErrCodeInvalidContainer,
			"container version %d is newer than supported version %d", f.Version, FormatVersion)
	}

	c := &Container{registry: reg, original: data}
	seen := make(map[string]bool, len(f.Materials))
	for i, raw := range f.Materials {
		var head struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidContainer, err, "material #%d", i)
		}
		if head.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidContainer, "material #%d has no name", i)
		}
		if seen[head.Name] {
			return nil, errors.New(errors.ErrCodeInvalidContainer, "duplicate material %q", head.Name)
		}
		seen[head.Name] = true
		c.entries = append(c.entries, &entry{name: head.Name, raw: raw})
	}
	return c, nil
}

// New returns an empty container that Save will write to path.
func New(path string, reg *shader.Registry) *Container {
	return &Container{path: path, registry: reg}
}

// Path returns the file the container was opened from.
func (c *Container) Path() string { return c.path }

// Bytes returns the container contents as they were read from disk.
func (c *Container) Bytes() []byte { return c.original }

// Materials returns the material names in file order.
func (c *Container) Materials() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.name
	}
	return names
}

// Has reports whether the container holds a material called name.
func (c *Container) Has(name string) bool { return c.find(name) != nil }

func (c *Container) find(name string) *entry {
	for _, e := range c.entries {
		if e.name == name {
			return e
		}
	}
	return nil
}

// Material returns the node graph of the named material, decoding it on
// first access. Later calls return the same graph, including any edits.
func (c *Container) Material(name string) (*shader.Graph, error) {
	e := c.find(name)
	if e == nil {
		return nil, errors.New(errors.ErrCodeMaterialNotFound, "material %q not found in %s", name, c.displayPath())
	}
	if e.graph == nil {
		g, err := decodeMaterial(e.raw, c.registry)
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInvalidContainer), err,
				"material %q", name)
		}
		e.graph = g
	}
	return e.graph, nil
}

// Create adds an empty material and returns its graph.
func (c *Container) Create(name string) (*shader.Graph, error) {
	if err := errors.ValidateMaterialName(name); err != nil {
		return nil, err
	}
	if c.Has(name) {
		return nil, errors.New(errors.ErrCodeNameCollision, "material %q already exists", name)
	}
	g := shader.NewGraph(c.registry)
	c.entries = append(c.entries, &entry{name: name, graph: g})
	return g, nil
}

// Encode serializes the container. Decoded materials are re-encoded from
// their graphs; the rest are written as read.
func (c *Container) Encode() ([]byte, error) {
	f := file{Version: FormatVersion, Materials: make([]json.RawMessage, 0, len(c.entries))}
	for _, e := range c.entries {
		if e.graph == nil {
			f.Materials = append(f.Materials, e.raw)
			continue
		}
		raw, err := json.Marshal(encodeMaterial(e.name, e.graph))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode material %q", e.name)
		}
		f.Materials = append(f.Materials, raw)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode container")
	}
	return buf.Bytes(), nil
}

// Save writes the container back to the file it was opened from.
func (c *Container) Save() error {
	if c.path == "" {
		return errors.New(errors.ErrCodePersist, "container has no path")
	}
	return c.SaveAs(c.path)
}

// SaveAs writes the container to path atomically.
func (c *Container) SaveAs(path string) error {
	data, err := c.Encode()
	if err != nil {
		return errors.Wrap(errors.ErrCodePersist, err, "encode %s", path)
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return errors.Wrap(errors.ErrCodePersist, err, "write %s", path)
	}
	c.path = path
	c.original = data
	return nil
}

func (c *Container) displayPath() string {
	if c.path == "" {
		return "container"
	}
	return c.path
}

// WriteFileAtomic replaces path with data through a temporary file in the
// same directory, keeping the previous file mode when one exists.
func WriteFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
