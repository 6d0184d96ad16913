package assets

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/trailhead/internal/engine/mesh"
)

// ErrNoMesh is returned when a model file holds no triangle geometry.
var ErrNoMesh = errors.New("model has no mesh")

// ErrMalformed is returned when a model references data it does not contain.
var ErrMalformed = errors.New("malformed model")

// ClipInfo describes an animation stored in a model.
type ClipInfo struct {
	Name     string
	Duration float32 // seconds
}

// Model is a loaded 3D model.
type Model struct {
	Name  string
	Mesh  *mesh.Mesh
	Clips []ClipInfo

	// Fallback is set when the model was substituted for a failed load.
	Fallback bool
}

// Loader turns an asset path into a model.
type Loader interface {
	Load(path string) (*Model, error)
}

// GLTFLoader loads self-contained glTF files (.glb, or .gltf with embedded
// buffers) through a Manager.
type GLTFLoader struct {
	Files *Manager
}

// NewGLTFLoader creates a loader reading from files.
func NewGLTFLoader(files *Manager) *GLTFLoader {
	return &GLTFLoader{Files: files}
}

// Load reads and decodes the model at p. Every triangle primitive of every
// mesh is merged into one mesh; node transforms are not applied.
func (l *GLTFLoader) Load(p string) (*Model, error) {
	data, err := l.Files.Read(p)
	if err != nil {
		return nil, err
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p, err)
	}

	m, err := buildMesh(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	clips, err := clipInfos(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	return &Model{
		Name:  strings.TrimSuffix(path.Base(p), path.Ext(p)),
		Mesh:  m,
		Clips: clips,
	}, nil
}

func buildMesh(doc *gltf.Document) (*mesh.Mesh, error) {
	var parts []*mesh.Mesh
	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			acr, err := accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("positions of %q: %w", gm.Name, err)
			}
			positions, err := modeler.ReadPosition(doc, acr, nil)
			if err != nil {
				return nil, fmt.Errorf("reading positions of %q: %w", gm.Name, err)
			}

			var normals [][3]float32
			if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
				if acr, err = accessor(doc, nIdx); err != nil {
					return nil, fmt.Errorf("normals of %q: %w", gm.Name, err)
				}
				normals, err = modeler.ReadNormal(doc, acr, nil)
				if err != nil {
					return nil, fmt.Errorf("reading normals of %q: %w", gm.Name, err)
				}
			}

			var indices []uint32
			if prim.Indices != nil {
				if acr, err = accessor(doc, *prim.Indices); err != nil {
					return nil, fmt.Errorf("indices of %q: %w", gm.Name, err)
				}
				indices, err = modeler.ReadIndices(doc, acr, nil)
				if err != nil {
					return nil, fmt.Errorf("reading indices of %q: %w", gm.Name, err)
				}
			}

			part, err := mesh.FromArrays(positions, normals, indices)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", gm.Name, err)
			}
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return nil, ErrNoMesh
	}
	return mesh.Merge(parts...), nil
}

func clipInfos(doc *gltf.Document) ([]ClipInfo, error) {
	clips := make([]ClipInfo, 0, len(doc.Animations))
	for _, anim := range doc.Animations {
		var duration float32
		for _, s := range anim.Samplers {
			acr, err := accessor(doc, s.Input)
			if err != nil {
				return nil, fmt.Errorf("animation %q: %w", anim.Name, err)
			}
			if len(acr.Max) > 0 && float32(acr.Max[0]) > duration {
				duration = float32(acr.Max[0])
			}
		}
		clips = append(clips, ClipInfo{Name: strings.ToLower(anim.Name), Duration: duration})
	}
	return clips, nil
}

// accessor returns accessor i after checking the references modeler indexes
// without bounds checks.
func accessor(doc *gltf.Document, i uint32) (*gltf.Accessor, error) {
	if int(i) >= len(doc.Accessors) || doc.Accessors[i] == nil {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrMalformed, i, len(doc.Accessors))
	}
	acr := doc.Accessors[i]
	if acr.Sparse != nil {
		return nil, fmt.Errorf("%w: sparse accessor %d", ErrMalformed, i)
	}
	if acr.BufferView != nil {
		v := *acr.BufferView
		if int(v) >= len(doc.BufferViews) || doc.BufferViews[v] == nil {
			return nil, fmt.Errorf("%w: accessor %d references buffer view %d", ErrMalformed, i, v)
		}
		if acr.ByteOffset > doc.BufferViews[v].ByteLength {
			return nil, fmt.Errorf("%w: accessor %d offset past buffer view %d", ErrMalformed, i, v)
		}
	}
	return acr, nil
}
