// Package obj parses triangulated Wavefront OBJ text into flat vertex streams.
//
// Only the directives needed for a textured, lit mesh are interpreted:
//
//	v  x y z          position
//	vn x y z          normal
//	vt u v            texture coordinate
//	f  v/t/n v/t/n v/t/n
//
// Every face corner becomes one output vertex. Vertices shared between faces
// are duplicated, so the streams can be drawn without an index buffer.
package obj

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single line of input.
const maxLineSize = 1 << 20

// Component counts per face-vertex instance.
const (
	PositionSize = 3
	NormalSize   = 3
	TexCoordSize = 2
)

// RawMesh holds one entry per face-vertex instance, in face order.
type RawMesh struct {
	Positions []float32 // x, y, z per vertex
	Normals   []float32 // x, y, z per vertex
	TexCoords []float32 // u, v per vertex

	// Indices is the running face-vertex index (0, 1, 2, ...). The streams
	// are already flat, so drawing does not need it.
	Indices []uint32
}

// VertexCount returns the number of face-vertex instances.
func (m *RawMesh) VertexCount() int {
	return len(m.Positions) / PositionSize
}

// Triangles returns the number of faces.
func (m *RawMesh) Triangles() int {
	return m.VertexCount() / 3
}

// Validate checks that the three streams describe the same vertex count and
// that the count is a whole number of triangles.
func (m *RawMesh) Validate() error {
	n := m.VertexCount()
	switch {
	case len(m.Positions)%PositionSize != 0:
		return fmt.Errorf("position stream length %d not a multiple of %d", len(m.Positions), PositionSize)
	case len(m.Normals) != n*NormalSize:
		return fmt.Errorf("normal stream has %d floats, want %d", len(m.Normals), n*NormalSize)
	case len(m.TexCoords) != n*TexCoordSize:
		return fmt.Errorf("texcoord stream has %d floats, want %d", len(m.TexCoords), n*TexCoordSize)
	case n%3 != 0:
		return fmt.Errorf("vertex count %d is not a whole number of triangles", n)
	}
	return nil
}

// parser is the per-call parse context. Nothing is shared between calls.
type parser struct {
	positions [][3]float32
	normals   [][3]float32
	texCoords [][2]float32

	mesh RawMesh
	line int
	text string
}

// Parse reads mesh text from r. On any error no mesh is returned.
func Parse(r io.Reader) (*RawMesh, error) {
	p := &parser{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		p.line++
		p.text = scanner.Text()
		if err := p.parseLine(); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: reading line %d: %w", p.line+1, err)
	}

	return &p.mesh, nil
}

// ParseBytes parses mesh text held in memory.
func ParseBytes(data []byte) (*RawMesh, error) {
	return Parse(bytes.NewReader(data))
}

// ParseFile parses the mesh file at path.
func ParseFile(path string) (*RawMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mesh, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

func (p *parser) parseLine() error {
	fields := strings.Fields(p.text)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := p.vec3(fields[1:])
		if err != nil {
			return err
		}
		p.positions = append(p.positions, v)
	case "vn":
		v, err := p.vec3(fields[1:])
		if err != nil {
			return err
		}
		p.normals = append(p.normals, v)
	case "vt":
		v, err := p.vec2(fields[1:])
		if err != nil {
			return err
		}
		p.texCoords = append(p.texCoords, v)
	case "f":
		return p.face(fields[1:])
	}
	// o, g, s, usemtl, mtllib and anything else are not interpreted.
	return nil
}

// face resolves the three corners first so a bad reference leaves the output
// streams untouched, then appends them in the order written.
func (p *parser) face(refs []string) error {
	if len(refs) != 3 {
		return p.malformed(fmt.Sprintf("face has %d vertices, only triangles are supported", len(refs)))
	}

	var corners [3]struct {
		pos, norm [3]float32
		tex       [2]float32
	}
	for i, ref := range refs {
		vi, ti, ni, err := p.splitRef(ref)
		if err != nil {
			return err
		}
		if err := p.checkIndex("position", vi, len(p.positions)); err != nil {
			return err
		}
		if err := p.checkIndex("texcoord", ti, len(p.texCoords)); err != nil {
			return err
		}
		if err := p.checkIndex("normal", ni, len(p.normals)); err != nil {
			return err
		}
		corners[i].pos = p.positions[vi-1]
		corners[i].tex = p.texCoords[ti-1]
		corners[i].norm = p.normals[ni-1]
	}

	for _, c := range corners {
		p.mesh.Positions = append(p.mesh.Positions, c.pos[0], c.pos[1], c.pos[2])
		p.mesh.Normals = append(p.mesh.Normals, c.norm[0], c.norm[1], c.norm[2])
		p.mesh.TexCoords = append(p.mesh.TexCoords, c.tex[0], c.tex[1])
		p.mesh.Indices = append(p.mesh.Indices, uint32(len(p.mesh.Indices)))
	}
	return nil
}

// splitRef parses "v/t/n" into its three 1-based indices.
func (p *parser) splitRef(ref string) (v, t, n int, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return 0, 0, 0, p.malformed(fmt.Sprintf("vertex reference %q is not v/vt/vn", ref))
	}

	var idx [3]int
	for i, s := range parts {
		idx[i], err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, 0, p.malformed(fmt.Sprintf("bad index %q in %q", s, ref))
		}
	}
	return idx[0], idx[1], idx[2], nil
}

func (p *parser) checkIndex(kind string, idx, size int) error {
	if idx < 1 || idx > size {
		return &IndexOutOfRangeError{Line: p.line, Kind: kind, Index: idx, Size: size}
	}
	return nil
}

func (p *parser) vec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, p.malformed(fmt.Sprintf("need 3 components, got %d", len(fields)))
	}
	for i := range v {
		f, err := p.float(fields[i])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func (p *parser) vec2(fields []string) ([2]float32, error) {
	var v [2]float32
	if len(fields) < 2 {
		return v, p.malformed(fmt.Sprintf("need 2 components, got %d", len(fields)))
	}
	for i := range v {
		f, err := p.float(fields[i])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func (p *parser) float(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, p.malformed(fmt.Sprintf("bad number %q", s))
	}
	return float32(f), nil
}

func (p *parser) malformed(reason string) error {
	return &MalformedLineError{Line: p.line, Text: p.text, Reason: reason}
}
