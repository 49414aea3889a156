package obj

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// quad is two triangles sharing an edge, so vertices 1 and 3 are used twice.
const quad = `# unit quad
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
s off
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func TestParse_Counts(t *testing.T) {
	mesh, err := Parse(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := mesh.Triangles(); got != 2 {
		t.Errorf("Triangles() = %d, want 2", got)
	}
	if got := mesh.VertexCount(); got != 6 {
		t.Errorf("VertexCount() = %d, want 6", got)
	}
	if len(mesh.Positions) != 6*3 {
		t.Errorf("positions: got %d floats, want 18", len(mesh.Positions))
	}
	if len(mesh.Normals) != 6*3 {
		t.Errorf("normals: got %d floats, want 18", len(mesh.Normals))
	}
	if len(mesh.TexCoords) != 6*2 {
		t.Errorf("texcoords: got %d floats, want 12", len(mesh.TexCoords))
	}
	if err := mesh.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParse_WindingOrder(t *testing.T) {
	mesh, err := Parse(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Second face is 1, 3, 4.
	want := []float32{
		0, 0, 0, 1, 0, 0, 1, 1, 0,
		0, 0, 0, 1, 1, 0, 0, 1, 0,
	}
	for i, w := range want {
		if mesh.Positions[i] != w {
			t.Fatalf("Positions[%d] = %v, want %v (full: %v)", i, mesh.Positions[i], w, mesh.Positions)
		}
	}

	wantUV := []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}
	for i, w := range wantUV {
		if mesh.TexCoords[i] != w {
			t.Fatalf("TexCoords[%d] = %v, want %v", i, mesh.TexCoords[i], w)
		}
	}
}

func TestParse_NoDeduplication(t *testing.T) {
	mesh, err := Parse(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Vertex 1 appears as corner 0 of both faces.
	for i := 0; i < 3; i++ {
		if mesh.Positions[i] != mesh.Positions[9+i] {
			t.Errorf("shared vertex differs at component %d", i)
		}
	}
}

func TestParse_Indices(t *testing.T) {
	mesh, err := Parse(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(mesh.Indices) != 6 {
		t.Fatalf("got %d indices, want 6", len(mesh.Indices))
	}
	for i, idx := range mesh.Indices {
		if idx != uint32(i) {
			t.Errorf("Indices[%d] = %d, want %d", i, idx, i)
		}
	}
}

func TestParse_Normals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 1 0 0\nvn 0 1 0\nvn 0 0 1\nf 1/1/3 2/1/2 3/1/1\n"
	mesh, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []float32{0, 0, 1, 0, 1, 0, 1, 0, 0}
	for i, w := range want {
		if mesh.Normals[i] != w {
			t.Errorf("Normals[%d] = %v, want %v", i, mesh.Normals[i], w)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	const pools = "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\n"

	tests := []struct {
		name     string
		src      string
		wantLine int
		check    func(t *testing.T, err error)
	}{
		{
			name:     "two vertex face",
			src:      pools + "f 1/1/1 2/1/1\n",
			wantLine: 6,
			check:    wantMalformed,
		},
		{
			name:     "quad face",
			src:      pools + "v 1 1 0\nf 1/1/1 2/1/1 3/1/1 4/1/1\n",
			wantLine: 7,
			check:    wantMalformed,
		},
		{
			name:     "bad float",
			src:      "v 0 zero 0\n",
			wantLine: 1,
			check:    wantMalformed,
		},
		{
			name:     "short position",
			src:      "v 1 2\n",
			wantLine: 1,
			check:    wantMalformed,
		},
		{
			name:     "short texcoord",
			src:      "vt 1\n",
			wantLine: 1,
			check:    wantMalformed,
		},
		{
			name:     "bad index",
			src:      pools + "f 1/1/1 x/1/1 3/1/1\n",
			wantLine: 6,
			check:    wantMalformed,
		},
		{
			name:     "missing texcoord",
			src:      pools + "f 1//1 2//1 3//1\n",
			wantLine: 6,
			check:    wantMalformed,
		},
		{
			name:     "position only",
			src:      pools + "f 1 2 3\n",
			wantLine: 6,
			check:    wantMalformed,
		},
		{
			name:     "position out of range",
			src:      pools + "f 1/1/1 2/1/1 4/1/1\n",
			wantLine: 6,
			check:    wantOutOfRange("position", 4, 3),
		},
		{
			name:     "forward reference",
			src:      "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 3/1/1\nv 1 0 0\nv 0 1 0\n",
			wantLine: 4,
			check:    wantOutOfRange("position", 2, 1),
		},
		{
			name:     "texcoord out of range",
			src:      pools + "f 1/2/1 2/1/1 3/1/1\n",
			wantLine: 6,
			check:    wantOutOfRange("texcoord", 2, 1),
		},
		{
			name:     "normal out of range",
			src:      pools + "f 1/1/1 2/1/1 3/1/9\n",
			wantLine: 6,
			check:    wantOutOfRange("normal", 9, 1),
		},
		{
			name:     "zero index",
			src:      pools + "f 0/1/1 2/1/1 3/1/1\n",
			wantLine: 6,
			check:    wantOutOfRange("position", 0, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := Parse(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if mesh != nil {
				t.Error("expected no mesh on error")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("errors.Is(err, ErrParse) = false for %v", err)
			}
			tt.check(t, err)

			var line int
			var malformed *MalformedLineError
			var oor *IndexOutOfRangeError
			switch {
			case errors.As(err, &malformed):
				line = malformed.Line
			case errors.As(err, &oor):
				line = oor.Line
			}
			if line != tt.wantLine {
				t.Errorf("error line = %d, want %d", line, tt.wantLine)
			}
		})
	}
}

func wantMalformed(t *testing.T, err error) {
	t.Helper()
	var malformed *MalformedLineError
	if !errors.As(err, &malformed) {
		t.Errorf("expected *MalformedLineError, got %T: %v", err, err)
	}
}

func wantOutOfRange(kind string, index, size int) func(*testing.T, error) {
	return func(t *testing.T, err error) {
		t.Helper()
		var oor *IndexOutOfRangeError
		if !errors.As(err, &oor) {
			t.Fatalf("expected *IndexOutOfRangeError, got %T: %v", err, err)
		}
		if oor.Kind != kind || oor.Index != index || oor.Size != size {
			t.Errorf("got kind=%s index=%d size=%d, want %s %d %d", oor.Kind, oor.Index, oor.Size, kind, index, size)
		}
	}
}

func TestParse_IgnoresUnknownDirectives(t *testing.T) {
	src := "mtllib cube.mtl\ng group\nusemtl red\n\t\n" +
		"v\t0 0 0 1\nv 1  0 0\nv 0 1 0\nvt 0 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 3/1/1\n"
	mesh, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mesh.Triangles() != 1 {
		t.Errorf("Triangles() = %d, want 1", mesh.Triangles())
	}
}

func TestParse_Empty(t *testing.T) {
	mesh, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if mesh.VertexCount() != 0 {
		t.Errorf("VertexCount() = %d, want 0", mesh.VertexCount())
	}
}

func TestParse_NoStateBetweenCalls(t *testing.T) {
	first, err := Parse(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("first Parse: %v", err)
	}

	second := "v 5 5 5\nv 6 5 5\nv 5 6 5\nvt 0.5 0.5\nvn 0 1 0\nf 1/1/1 2/1/1 3/1/1\n"
	mesh, err := Parse(strings.NewReader(second))
	if err != nil {
		t.Fatalf("second Parse: %v", err)
	}
	if mesh.Triangles() != 1 {
		t.Fatalf("second mesh has %d triangles, want 1", mesh.Triangles())
	}
	if mesh.Positions[0] != 5 {
		t.Errorf("second mesh starts with %v, data leaked from first parse", mesh.Positions[:3])
	}

	// A face in the second file may only see the second file's pools.
	_, err = Parse(strings.NewReader("vt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 3/1/1\n"))
	var oor *IndexOutOfRangeError
	if !errors.As(err, &oor) || oor.Size != 0 {
		t.Errorf("expected out of range against empty pool, got %v", err)
	}

	if first.Triangles() != 2 {
		t.Errorf("first mesh changed after later parses: %d triangles", first.Triangles())
	}
}

func TestParse_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mesh, err := ParseBytes([]byte(quad))
			if err != nil {
				errs <- err
				return
			}
			if mesh.Triangles() != 2 {
				errs <- errors.New("wrong triangle count")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quad), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	mesh, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if mesh.Triangles() != 2 {
		t.Errorf("Triangles() = %d, want 2", mesh.Triangles())
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    RawMesh
		wantErr bool
	}{
		{"empty", RawMesh{}, false},
		{"one triangle", RawMesh{
			Positions: make([]float32, 9),
			Normals:   make([]float32, 9),
			TexCoords: make([]float32, 6),
		}, false},
		{"short normals", RawMesh{
			Positions: make([]float32, 9),
			Normals:   make([]float32, 6),
			TexCoords: make([]float32, 6),
		}, true},
		{"short texcoords", RawMesh{
			Positions: make([]float32, 9),
			Normals:   make([]float32, 9),
			TexCoords: make([]float32, 4),
		}, true},
		{"partial triangle", RawMesh{
			Positions: make([]float32, 6),
			Normals:   make([]float32, 6),
			TexCoords: make([]float32, 4),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
