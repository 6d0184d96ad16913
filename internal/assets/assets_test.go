package assets

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/mesh"
)

func TestManagerSourcePriority(t *testing.T) {
	m := NewManager()
	m.AddSource(fstest.MapFS{
		"models/tree.glb": {Data: []byte("base")},
		"models/rock.glb": {Data: []byte("rock")},
	})
	m.AddSource(fstest.MapFS{
		"models/tree.glb": {Data: []byte("override")},
	})

	data, err := m.Read("models/tree.glb")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "override" {
		t.Errorf("got %q, want last-added source to win", data)
	}
	if data, _ := m.Read("models/rock.glb"); string(data) != "rock" {
		t.Errorf("got %q from base source", data)
	}

	if _, err := m.Read("models/missing.glb"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want ErrNotFound", err)
	}
}

func TestManagerCaches(t *testing.T) {
	m := NewManager()
	m.AddSource(fstest.MapFS{"a.bin": {Data: []byte("x")}})

	for i := 0; i < 3; i++ {
		if _, err := m.Read("a.bin"); err != nil {
			t.Fatal(err)
		}
	}
	hits, misses := m.Cache().Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("hits=%d misses=%d, want 2/1", hits, misses)
	}

	m.Close()
	if _, err := m.Read("a.bin"); err == nil {
		t.Error("closed manager should have no sources")
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c := NewCache(10)
	c.Set("a", []byte("aaaa"))
	c.Set("b", []byte("bbbb"))
	c.Set("c", []byte("cccc"))

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry survived past the budget")
	}
	for _, k := range []string{"b", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s evicted", k)
		}
	}
	if c.Used() != 8 {
		t.Errorf("used = %d, want 8", c.Used())
	}

	c.Set("b", []byte("bb"))
	if c.Used() != 6 {
		t.Errorf("used after replace = %d, want 6", c.Used())
	}
	c.Set("huge", make([]byte, 11))
	if _, ok := c.Get("huge"); ok {
		t.Error("entry over the whole budget was cached")
	}
}

// triangle.gltf: one mesh with three positions in an embedded buffer and
// an "Idle" animation lasting 1.5s.
const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAAAAAAIC/"}],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 0, "componentType": 5126, "count": 1, "type": "SCALAR", "min": [0], "max": [1.5]}
  ],
  "meshes": [{"name": "body", "primitives": [{"attributes": {"POSITION": 0}}]}],
  "animations": [{"name": "Idle", "samplers": [{"input": 1, "output": 1}], "channels": [{"sampler": 0, "target": {"path": "translation"}}]}]
}`

func TestGLTFLoader(t *testing.T) {
	files := NewManager()
	files.AddSource(fstest.MapFS{
		"models/hero.gltf":  {Data: []byte(triangleGLTF)},
		"models/empty.gltf": {Data: []byte(`{"asset": {"version": "2.0"}}`)},
		"models/junk.glb":   {Data: []byte("not a model")},
	})
	l := NewGLTFLoader(files)

	m, err := l.Load("models/hero.gltf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "hero" {
		t.Errorf("name = %q, want hero", m.Name)
	}
	if m.Mesh.TriangleCount() != 1 {
		t.Errorf("triangles = %d, want 1", m.Mesh.TriangleCount())
	}
	if n := mgl32.Vec3(m.Mesh.Vertices[0].Normal); n.Sub(mgl32.Vec3{0, 1, 0}).Len() > 1e-5 {
		t.Errorf("computed normal = %v, want +Y", n)
	}
	if len(m.Clips) != 1 || m.Clips[0].Name != "idle" || m.Clips[0].Duration != 1.5 {
		t.Errorf("clips = %+v, want [idle 1.5s]", m.Clips)
	}

	if _, err := l.Load("models/empty.gltf"); !errors.Is(err, ErrNoMesh) {
		t.Errorf("empty model error = %v, want ErrNoMesh", err)
	}
	if _, err := l.Load("models/junk.glb"); err == nil {
		t.Error("expected decode error for junk file")
	}
	if _, err := l.Load("models/none.glb"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing model error = %v, want ErrNotFound", err)
	}
}

func TestGLTFLoaderRejectsBadReferences(t *testing.T) {
	bad := map[string]string{
		"position": `"meshes": [{"primitives": [{"attributes": {"POSITION": 7}}]}]`,
		"normal":   `"meshes": [{"primitives": [{"attributes": {"POSITION": 0, "NORMAL": 9}}]}]`,
		"indices":  `"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 4}]}]`,
		"sampler": `"meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
  "animations": [{"name": "Walk", "samplers": [{"input": 5, "output": 1}], "channels": [{"sampler": 0, "target": {"path": "translation"}}]}]`,
		"offset": `"meshes": [{"primitives": [{"attributes": {"POSITION": 1}}]}]`,
	}
	head := `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAAAAAAIC/"}],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 0, "byteOffset": 400, "componentType": 5126, "count": 3, "type": "VEC3"}
  ],
  `

	files := NewManager()
	fsys := fstest.MapFS{}
	for name, body := range bad {
		fsys["models/"+name+".gltf"] = &fstest.MapFile{Data: []byte(head + body + "\n}")}
	}
	files.AddSource(fsys)
	l := NewGLTFLoader(files)

	for name := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := l.Load("models/" + name + ".gltf"); !errors.Is(err, ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

type fakeLoader struct {
	mu     sync.Mutex
	calls  []string
	delay  time.Duration
	reject map[string]bool
}

func (f *fakeLoader) Load(path string) (*Model, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	time.Sleep(f.delay)
	if f.reject[path] {
		return nil, fmt.Errorf("load %s: rejected", path)
	}
	return &Model{Name: path, Mesh: mesh.Box(mgl32.Vec3{1, 1, 1})}, nil
}

func TestLoadAllReturnsEveryResult(t *testing.T) {
	loader := &fakeLoader{delay: 5 * time.Millisecond, reject: map[string]bool{"character.glb": true}}
	reqs := []Request{
		{Key: "character", Path: "character.glb"},
		{Key: "tree", Path: "tree.glb"},
	}

	results := LoadAll(loader, reqs)
	if len(results) != 2 || len(loader.calls) != 2 {
		t.Fatalf("results=%d calls=%d, want 2/2", len(results), len(loader.calls))
	}
	if results[0].Key != "character" || results[0].Err == nil || results[0].Model != nil {
		t.Errorf("character result = %+v, want rejection", results[0])
	}
	if results[1].Key != "tree" || results[1].Err != nil || results[1].Model == nil {
		t.Errorf("tree result = %+v, want model", results[1])
	}
}

func TestBatchProgress(t *testing.T) {
	loader := &fakeLoader{delay: 20 * time.Millisecond}
	b := NewBatch(loader, []Request{{Key: "a", Path: "a"}, {Key: "b", Path: "b"}, {Key: "c", Path: "c"}})
	if b.Finished() || b.Done() != 0 {
		t.Fatal("batch should not run before Start")
	}

	b.Start()
	b.Start()
	results := b.Wait()

	if !b.Finished() || b.Done() != 3 || b.Total() != 3 {
		t.Errorf("finished=%v done=%d total=%d", b.Finished(), b.Done(), b.Total())
	}
	if len(loader.calls) != 3 {
		t.Errorf("loader called %d times, want 3 despite double Start", len(loader.calls))
	}
	for i, key := range []string{"a", "b", "c"} {
		if results[i].Key != key {
			t.Errorf("result %d key = %s, want request order", i, results[i].Key)
		}
	}
}

func TestEmptyBatch(t *testing.T) {
	if got := LoadAll(&fakeLoader{}, nil); len(got) != 0 {
		t.Errorf("got %d results", len(got))
	}
}

func TestFallbacks(t *testing.T) {
	failed := Result{Request: Request{Key: "character", Path: "character.glb"}, Err: errors.New("boom")}
	m := ModelOr(failed, FallbackCharacter)
	if !m.Fallback {
		t.Fatal("expected fallback model")
	}
	size := m.Mesh.Bounds.Size()
	if !size.ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, 1e-5) {
		t.Errorf("fallback character size = %v, want 1x2x1", size)
	}
	if FallbackCharacterPosition != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("fallback position = %v", FallbackCharacterPosition)
	}

	ok := Result{Model: &Model{Name: "hero"}}
	if ModelOr(ok, FallbackCharacter).Name != "hero" {
		t.Error("successful result should be returned as is")
	}

	tree := FallbackTree()
	if tree.Mesh.Bounds.Min[1] < -1e-5 || !strings.HasPrefix(tree.Name, "tree") {
		t.Errorf("fallback tree should stand on its origin, min y = %v", tree.Mesh.Bounds.Min[1])
	}
}

func TestFind(t *testing.T) {
	results := []Result{{Request: Request{Key: "a"}}, {Request: Request{Key: "b"}}}
	if r, ok := Find(results, "b"); !ok || r.Key != "b" {
		t.Error("expected to find b")
	}
	if _, ok := Find(results, "z"); ok {
		t.Error("unexpected result for z")
	}
}
