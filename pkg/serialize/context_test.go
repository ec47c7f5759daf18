package serialize

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/observability"
	"github.com/matzehuels/scenedoc/pkg/scene"
	"github.com/matzehuels/scenedoc/pkg/scene/memory"
)

func TestSerializeNil(t *testing.T) {
	ctx := NewContext(nil)
	var actor *memory.Actor
	for _, obj := range []scene.Object{nil, actor} {
		rec, err := ctx.Serialize("", obj)
		if rec != nil || err != nil {
			t.Errorf("Serialize(%v) = %v, %v, want nil, nil", obj, rec, err)
		}
	}
	if ctx.Registry().Len() != 0 {
		t.Error("nil objects should not be registered")
	}
}

func TestSerializeUnregisteredKind(t *testing.T) {
	_, err := NewContext(DefaultTable()).Serialize("", &opaqueObject{class: "vtkTeapot"})
	if !errors.Is(err, errors.ErrCodeUnregisteredKind) {
		t.Fatalf("err = %v, want %s", err, errors.ErrCodeUnregisteredKind)
	}
	if got := err.(*errors.Error).Class; got != "vtkTeapot" {
		t.Errorf("Class = %q, want vtkTeapot", got)
	}
}

func TestSerializeUnregisteredChildFailsPass(t *testing.T) {
	s := newTestScene()
	s.camera.Class = "vtkTeapotCamera"
	_, err := NewContext(DefaultTable()).Document(s.window)
	if !errors.Is(err, errors.ErrCodeUnregisteredKind) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeUnregisteredKind)
	}
}

func TestSerializeKindMismatch(t *testing.T) {
	light := memory.NewLight()
	light.Class = "vtkOpenGLActor"
	_, err := NewContext(DefaultTable()).Serialize("", light)
	if !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeKindMismatch)
	}
}

func TestSerializeUnhashableObject(t *testing.T) {
	_, err := NewContext(DefaultTable()).Serialize("", sliceObject{parts: []string{"a"}})
	if !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeKindMismatch)
	}
}

func TestSerializeSharedDatasetOnce(t *testing.T) {
	data := pyramid()
	r := memory.NewRenderer(memory.NewCamera())
	for i := 0; i < 2; i++ {
		r.AddViewProp(memory.NewActor(memory.NewMapper(data, nil), memory.NewProperty()))
	}

	tbl := DefaultTable()
	calls := 0
	inner, _ := tbl.Resolve("vtkPolyData")
	tbl.Register("vtkPolyData", func(parent string, obj scene.Object, ctx *Context) (*Record, error) {
		calls++
		return inner(parent, obj, ctx)
	})

	doc, err := NewContext(tbl).Document(r)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if calls != 1 {
		t.Errorf("dataset serialized %d times, want 1", calls)
	}

	props := list(t, doc, "addViewProp")
	if len(props) != 2 {
		t.Fatalf("addViewProp has %d entries, want 2", len(props))
	}
	var ids []any
	for _, p := range props {
		mapper := child(t, p.(map[string]any), "mapper")
		ids = append(ids, child(t, mapper, "inputData")["id"])
	}
	if ids[0] != ids[1] {
		t.Errorf("shared dataset has ids %v", ids)
	}
}

func TestSerializeSourceCycle(t *testing.T) {
	actor := memory.NewActor(nil, memory.NewProperty())
	actor.MapperNode = memory.NewMapper(actor, nil)

	_, err := NewContext(DefaultTable()).Document(actor)
	if !errors.Is(err, errors.ErrCodeCyclicGraph) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeCyclicGraph)
	}
}

func TestRefIDs(t *testing.T) {
	s := newTestScene()
	ctx := NewContext(DefaultTable())
	if _, err := ctx.Serialize("", s.window); err != nil {
		t.Fatal(err)
	}

	if got := ctx.RefID(s.window); got != "1" {
		t.Errorf("window id = %q, want 1", got)
	}
	if ctx.RefID(s.data) == ctx.RefID(s.mapper) {
		t.Error("distinct objects share an id")
	}
	if ctx.RefID(s.data) != ctx.RefID(s.data) {
		t.Error("id is not stable within a pass")
	}
}

func TestWithIDFunc(t *testing.T) {
	s := newTestScene()
	doc := mustDocument(t, s.window, WithIDFunc(func(obj scene.Object, seq int) string {
		return obj.ClassName() + "-" + string(rune('a'-1+seq))
	}))
	if doc["id"] != "vtkOpenGLRenderWindow-a" {
		t.Errorf("id = %v", doc["id"])
	}
}

func TestDocumentResetsPass(t *testing.T) {
	s := newTestScene()
	ctx := NewContext(DefaultTable())
	if _, err := ctx.Document(s.window); err != nil {
		t.Fatal(err)
	}
	firstPass, firstLen := ctx.PassID(), ctx.Registry().Len()

	if _, err := ctx.Document(s.window); err != nil {
		t.Fatal(err)
	}
	if ctx.PassID() == firstPass {
		t.Error("second pass reused the pass id")
	}
	if ctx.Registry().Len() != firstLen {
		t.Errorf("registry has %d records after second pass, want %d", ctx.Registry().Len(), firstLen)
	}
}

func TestDocumentEmpty(t *testing.T) {
	tests := []struct {
		name string
		root scene.Object
	}{
		{"nil root", nil},
		{"visible actor without mapper", memory.NewActor(nil, memory.NewProperty())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContext(DefaultTable()).Document(tt.root)
			if !errors.Is(err, errors.ErrCodeEmptyDocument) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeEmptyDocument)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	s := newTestScene()
	s.renderer.AddLight(memory.NewLight())

	a, err := json.Marshal(mustDocument(t, s.window))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(mustDocument(t, s.window))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("serializing the same scene twice produced different bytes")
	}
}

func TestConcurrentPasses(t *testing.T) {
	s := newTestScene()
	tbl := DefaultTable()

	var wg sync.WaitGroup
	docs := make([][]byte, 8)
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := NewContext(tbl).Document(s.window)
			if err != nil {
				t.Error(err)
				return
			}
			docs[i], _ = json.Marshal(doc)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(docs); i++ {
		if string(docs[i]) != string(docs[0]) {
			t.Errorf("pass %d differs from pass 0", i)
		}
	}
}

type countingHooks struct {
	observability.NoopPassHooks
	mu         sync.Mutex
	dispatches int
	dedupes    int
	completed  int
	records    int
}

func (h *countingHooks) OnDispatch(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dispatches++
}

func (h *countingHooks) OnDedupe(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dedupes++
}

func (h *countingHooks) OnPassComplete(_ context.Context, _ string, records int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed++
	h.records = records
}

func TestPassHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPassHooks(hooks)
	defer observability.Reset()

	data := pyramid()
	r := memory.NewRenderer(memory.NewCamera())
	r.AddViewProp(memory.NewActor(memory.NewMapper(data, nil), memory.NewProperty()))
	r.AddViewProp(memory.NewActor(memory.NewMapper(data, nil), memory.NewProperty()))

	mustDocument(t, r)

	// renderer, camera, 2 actors, 2 mappers, 1 dataset, 2 properties
	if hooks.dispatches != 9 {
		t.Errorf("dispatches = %d, want 9", hooks.dispatches)
	}
	if hooks.dedupes != 1 {
		t.Errorf("dedupes = %d, want 1", hooks.dedupes)
	}
	if hooks.completed != 1 || hooks.records != 9 {
		t.Errorf("completed = %d with %d records, want 1 with 9", hooks.completed, hooks.records)
	}
}
