// Package mesh uploads parsed vertex streams into GPU buffers.
package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hologram/internal/engine/gpu"
	"github.com/Faultbox/hologram/internal/logger"
	"github.com/Faultbox/hologram/internal/obj"
	"github.com/Faultbox/hologram/internal/report"
)

// ResourceCreationError is returned when a buffer cannot be created or filled.
type ResourceCreationError struct {
	Reason string
}

func (e *ResourceCreationError) Error() string {
	return "mesh: buffer creation failed: " + e.Reason
}

// GPUMesh is a mesh resident in GPU memory, one buffer per attribute stream.
type GPUMesh struct {
	Positions uint32
	Normals   uint32
	TexCoords uint32
	Count     int32 // face-vertex instances
}

// Upload creates static buffers for the three streams of raw. On failure the
// error is passed to reporter, any buffers already created are released, and
// the error is returned.
func Upload(gl gpu.GL, raw *obj.RawMesh, reporter report.Reporter) (*GPUMesh, error) {
	m, err := upload(gl, raw)
	if err != nil {
		logger.Warn("mesh upload failed", zap.Error(err))
		if reporter != nil {
			reporter.ReportError(report.BufferCreation, err.Reason)
		}
		return nil, err
	}

	logger.Debug("mesh uploaded",
		zap.Uint32("positions", m.Positions),
		zap.Uint32("normals", m.Normals),
		zap.Uint32("texcoords", m.TexCoords),
		zap.Int32("vertices", m.Count),
	)
	return m, nil
}

func upload(gl gpu.GL, raw *obj.RawMesh) (*GPUMesh, *ResourceCreationError) {
	if raw == nil || raw.VertexCount() == 0 {
		return nil, &ResourceCreationError{Reason: "mesh has no vertices"}
	}
	if err := raw.Validate(); err != nil {
		return nil, &ResourceCreationError{Reason: err.Error()}
	}

	m := &GPUMesh{Count: int32(raw.VertexCount())}
	streams := []struct {
		name   string
		data   []float32
		handle *uint32
	}{
		{"position", raw.Positions, &m.Positions},
		{"normal", raw.Normals, &m.Normals},
		{"texcoord", raw.TexCoords, &m.TexCoords},
	}

	// Drop any stale error so the checks below only see our own calls.
	for i := 0; i < 8 && gl.GetError() != gpu.NoError; i++ {
	}

	for _, s := range streams {
		buf := gl.GenBuffer()
		if buf == 0 {
			m.Delete(gl)
			return nil, &ResourceCreationError{Reason: fmt.Sprintf("no buffer name for %s stream", s.name)}
		}
		*s.handle = buf

		gl.BindBuffer(gpu.ArrayBuffer, buf)
		gl.BufferData(gpu.ArrayBuffer, s.data, gpu.StaticDraw)
		if code := gl.GetError(); code != gpu.NoError {
			gl.BindBuffer(gpu.ArrayBuffer, 0)
			m.Delete(gl)
			return nil, &ResourceCreationError{Reason: fmt.Sprintf("%s stream upload: GL error 0x%04X", s.name, code)}
		}
	}
	gl.BindBuffer(gpu.ArrayBuffer, 0)

	return m, nil
}

// Delete releases the buffers. It is safe on a nil or partly built mesh.
func (m *GPUMesh) Delete(gl gpu.GL) {
	if m == nil {
		return
	}
	for _, h := range []*uint32{&m.Positions, &m.Normals, &m.TexCoords} {
		if *h != 0 {
			gl.DeleteBuffer(*h)
			*h = 0
		}
	}
	m.Count = 0
}
