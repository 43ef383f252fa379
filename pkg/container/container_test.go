package container

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/shaderxfer/pkg/errors"
	"github.com/matzehuels/shaderxfer/pkg/shader"
)

const library = `{
  "version": 1,
  "materials": [
    {
      "name": "Wire",
      "nodes": [
        {"name": "Wireframe", "type": "ShaderNodeWireframe", "location": [-400, 0], "inputs": {"Size": 0.02}},
        {"name": "Emission", "type": "ShaderNodeEmission", "location": [-200, 0], "inputs": {"Color": [0, 1, 0.4, 1]}},
        {"name": "Material Output", "type": "ShaderNodeOutputMaterial", "location": [0, 0]}
      ],
      "links": [
        {"from_node": "Wireframe", "from_socket": "Fac", "to_node": "Emission", "to_socket": "Strength"},
        {"from_node": "Emission", "from_socket": "Emission", "to_node": "Material Output", "to_socket": "Surface"}
      ]
    },
    {
      "name": "Exotic",
      "nodes": [{"name": "X", "type": "ShaderNodeFromTheFuture", "location": [0, 0]}],
      "links": []
    }
  ]
}
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenAndMaterial(t *testing.T) {
	path := writeFile(t, "lib.json", library)
	c, err := Open(path, shader.Builtin())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := c.Materials(); len(got) != 2 || got[0] != "Wire" || got[1] != "Exotic" {
		t.Fatalf("Materials = %v", got)
	}

	g, err := c.Material("Wire")
	if err != nil {
		t.Fatalf("Material: %v", err)
	}
	if g.NodeCount() != 3 || g.LinkCount() != 2 {
		t.Fatalf("counts = %d nodes %d links", g.NodeCount(), g.LinkCount())
	}
	wire, _ := g.Node("Wireframe")
	size, _ := wire.Input("Size")
	if !size.Default.Equal(shader.Scalar(0.02)) {
		t.Errorf("Size = %v", size.Default)
	}
	if wire.Location != (shader.Vec2{X: -400}) {
		t.Errorf("Location = %v", wire.Location)
	}
	emit, _ := g.Node("Emission")
	strength, _ := emit.Input("Strength")
	if !strength.IsLinked() {
		t.Error("Emission.Strength should be linked")
	}

	again, _ := c.Material("Wire")
	if again != g {
		t.Error("Material should return the same graph on repeated calls")
	}
}

func TestMaterialErrors(t *testing.T) {
	c, err := Parse([]byte(library), shader.Builtin())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Material("Missing"); !errors.Is(err, errors.ErrCodeMaterialNotFound) {
		t.Errorf("missing material err = %v", err)
	}
	if _, err := c.Material("Exotic"); !errors.Is(err, errors.ErrCodeUnknownNodeType) {
		t.Errorf("unknown type err = %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			name: "unknown input",
			doc:  `{"materials":[{"name":"M","nodes":[{"name":"A","type":"ShaderNodeMath","location":[0,0],"inputs":{"Nope":1}}],"links":[]}]}`,
			code: errors.ErrCodeSocketNameMismatch,
		},
		{
			name: "link to unknown node",
			doc:  `{"materials":[{"name":"M","nodes":[{"name":"A","type":"ShaderNodeValue","location":[0,0]}],"links":[{"from_node":"A","from_socket":"Value","to_node":"B","to_socket":"Value"}]}]}`,
			code: errors.ErrCodeDanglingEndpoint,
		},
		{
			name: "link from input socket",
			doc:  `{"materials":[{"name":"M","nodes":[{"name":"A","type":"ShaderNodeMath","location":[0,0]},{"name":"B","type":"ShaderNodeMath","location":[0,0]}],"links":[{"from_node":"A","from_socket":"Value_001","to_node":"B","to_socket":"Value"}]}]}`,
			code: errors.ErrCodeDanglingEndpoint,
		},
		{
			name: "duplicate node names",
			doc:  `{"materials":[{"name":"M","nodes":[{"name":"A","type":"ShaderNodeValue","location":[0,0]},{"name":"A","type":"ShaderNodeValue","location":[0,0]}],"links":[]}]}`,
			code: errors.ErrCodeInvalidContainer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.doc), shader.Builtin())
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := c.Material("M"); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `nope`},
		{"future version", `{"version": 99, "materials": []}`},
		{"unnamed material", `{"materials": [{"nodes": []}]}`},
		{"duplicate material", `{"materials": [{"name": "A"}, {"name": "A"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), shader.Builtin())
			if !errors.Is(err, errors.ErrCodeInvalidContainer) {
				t.Errorf("err = %v, want INVALID_CONTAINER", err)
			}
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.json"), shader.Builtin())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	reg := shader.Builtin()
	path := filepath.Join(t.TempDir(), "scene.json")

	c := New(path, reg)
	g, err := c.Create("Wire")
	if err != nil {
		t.Fatal(err)
	}
	val, _ := g.NewNode("ShaderNodeValue")
	math, _ := g.NewNode("ShaderNodeMath")
	math.Location = shader.Vec2{X: 200, Y: -40}
	out, _ := val.Output("Value")
	in, _ := math.Input("Value")
	_, _ = g.Link(out, in)
	b, _ := math.Input("Value_001")
	b.Default = shader.Scalar(2)

	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, _ := os.ReadFile(path)

	reopened, err := Open(path, reg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rg, err := reopened.Material("Wire")
	if err != nil {
		t.Fatal(err)
	}
	rm, _ := rg.Node("Math")
	rb, _ := rm.Input("Value_001")
	if !rb.Default.Equal(shader.Scalar(2)) {
		t.Errorf("Value_001 = %v, want 2", rb.Default)
	}
	if rm.Location != math.Location {
		t.Errorf("Location = %v, want %v", rm.Location, math.Location)
	}
	if rg.LinkCount() != 1 {
		t.Errorf("LinkCount = %d", rg.LinkCount())
	}

	if err := reopened.Save(); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(path)
	if !bytes.Equal(first, second) {
		t.Errorf("re-saving changed the file:\n%s\n---\n%s", first, second)
	}
}

func TestSaveKeepsUndecodedMaterials(t *testing.T) {
	path := writeFile(t, "lib.json", library)
	c, err := Open(path, shader.Builtin())
	if err != nil {
		t.Fatal(err)
	}
	g, err := c.Material("Wire")
	if err != nil {
		t.Fatal(err)
	}
	g.Clear()
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "ShaderNodeFromTheFuture") {
		t.Error("undecoded material was dropped")
	}
	reopened, err := Open(path, shader.Builtin())
	if err != nil {
		t.Fatal(err)
	}
	rg, _ := reopened.Material("Wire")
	if rg.NodeCount() != 0 {
		t.Errorf("cleared material has %d nodes", rg.NodeCount())
	}
}

func TestCreate(t *testing.T) {
	c := New("", shader.Builtin())
	if _, err := c.Create("A"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Create("A"); !errors.Is(err, errors.ErrCodeNameCollision) {
		t.Errorf("duplicate Create err = %v", err)
	}
	if _, err := c.Create(""); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("empty Create err = %v", err)
	}
	if !c.Has("A") || len(c.Materials()) != 1 {
		t.Errorf("materials = %v, want [A]", c.Materials())
	}
	if err := c.Save(); !errors.Is(err, errors.ErrCodePersist) {
		t.Errorf("Save without path err = %v", err)
	}
}

func TestWriteFileAtomicKeepsMode(t *testing.T) {
	path := writeFile(t, "x.json", "old")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("new")); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q", data)
	}
	fi, _ := os.Stat(path)
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestSaveFailureLeavesFile(t *testing.T) {
	path := writeFile(t, "lib.json", library)
	c, err := Open(path, shader.Builtin())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveAs(filepath.Join(t.TempDir(), "missing-dir", "lib.json")); !errors.Is(err, errors.ErrCodePersist) {
		t.Errorf("err = %v, want PERSIST_ERROR", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != library {
		t.Error("original file changed")
	}
}
