// Package glsl provides embedded GLSL shader sources.
package glsl

import _ "embed"

// HologramVertexShader transforms the mesh and passes eye-space position,
// normal and texture coordinate to the fragment stage.
//
//go:embed hologram.vert
var HologramVertexShader string

// HologramFragmentShader applies a per-fragment point light to the texture.
//
//go:embed hologram.frag
var HologramFragmentShader string
