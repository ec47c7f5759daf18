package serialize

import (
	"context"
	"io"
	"reflect"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/observability"
	"github.com/matzehuels/scenedoc/pkg/scene"
	"github.com/matzehuels/scenedoc/pkg/scene/memory"
)

// Document is a flattened, JSON-compatible scene description.
type Document = map[string]any

// Merger collapses a composite dataset into a single PolyData.
type Merger func(scene.CompositeDataSet) (scene.PolyData, error)

// IDFunc mints the reference id of an object the first time a pass sees it.
// seq counts distinct objects in the pass, starting at 1.
type IDFunc func(obj scene.Object, seq int) string

// SequentialIDs is the default IDFunc: "1", "2", ...
func SequentialIDs(_ scene.Object, seq int) string { return strconv.Itoa(seq) }

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for per-dispatch debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMerger replaces the composite dataset merger.
func WithMerger(m Merger) Option {
	return func(c *Context) {
		if m != nil {
			c.merger = m
		}
	}
}

// WithIDFunc replaces the reference id minting strategy. Ids must be unique
// within a pass.
func WithIDFunc(f IDFunc) Option {
	return func(c *Context) {
		if f != nil {
			c.idFunc = f
		}
	}
}

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option {
	return func(c *Context) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// Context owns one serialization pass: the dispatch table, the registry of
// produced records, and the identity map from scene objects to reference ids.
//
// A Context is single-threaded. Independent passes may run concurrently as
// long as each uses its own Context.
type Context struct {
	table  *Table
	logger *log.Logger
	merger Merger
	idFunc IDFunc
	ctx    context.Context

	passID     string
	reg        *Registry
	ids        map[scene.Object]string
	inProgress map[string]bool
}

// NewContext returns a Context dispatching through table. A nil table uses
// DefaultTable.
func NewContext(table *Table, opts ...Option) *Context {
	if table == nil {
		table = DefaultTable()
	}
	c := &Context{
		table:  table,
		logger: log.New(io.Discard),
		merger: memory.MergeBlocks,
		idFunc: SequentialIDs,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// Reset discards the current pass and starts a fresh one.
func (c *Context) Reset() {
	c.passID = uuid.NewString()
	c.reg = NewRegistry()
	c.ids = make(map[scene.Object]string)
	c.inProgress = make(map[string]bool)
}

// PassID returns the random identifier of the current pass.
func (c *Context) PassID() string { return c.passID }

// Registry returns the records produced so far in the current pass.
func (c *Context) Registry() *Registry { return c.reg }

// Table returns the dispatch table.
func (c *Context) Table() *Table { return c.table }

// RefID returns the reference id of obj, minting one on first sight. obj
// must be comparable; Serialize rejects objects that are not.
func (c *Context) RefID(obj scene.Object) string {
	if id, ok := c.ids[obj]; ok {
		return id
	}
	id := c.idFunc(obj, len(c.ids)+1)
	c.ids[obj] = id
	return id
}

// Serialize dispatches obj to the serializer registered for its class and
// registers the result under obj's reference id. parent is the reference id
// of the requesting object, or empty for the root.
//
// A nil obj yields a nil record. An object already serialized in this pass is
// returned from the registry without re-serializing. Requesting an object
// whose serialization is still in progress fails with CYCLIC_GRAPH.
func (c *Context) Serialize(parent string, obj scene.Object) (*Record, error) {
	if isNil(obj) {
		return nil, nil
	}

	class := obj.ClassName()
	if !reflect.TypeOf(obj).Comparable() {
		return nil, errors.New(errors.ErrCodeKindMismatch, "%T cannot be used as an object identity; pass a pointer", obj).
			WithObject("", class)
	}
	id := c.RefID(obj)

	if c.inProgress[id] {
		return nil, errors.New(errors.ErrCodeCyclicGraph, "object reached again while being serialized").
			WithObject(id, class)
	}
	if rec, ok := c.reg.Get(id); ok {
		c.logger.Debug("reuse", "ref", id, "class", class)
		observability.Pass().OnDedupe(c.ctx, class)
		return rec, nil
	}

	fn, ok := c.table.Resolve(class)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnregisteredKind, "no serializer registered").
			WithObject(id, class)
	}

	kind, _ := c.table.KindOf(class)
	c.logger.Debug("serialize", "ref", id, "class", class, "kind", kind, "parent", parent)
	observability.Pass().OnDispatch(c.ctx, class, string(kind))

	c.inProgress[id] = true
	rec, err := fn(parent, obj, c)
	delete(c.inProgress, id)
	if err != nil {
		return nil, err
	}

	c.reg.Register(id, rec)
	return rec, nil
}

// Document runs a fresh pass from root and flattens the result.
//
// A root that produces no record (for example a visible actor without a
// mapper) fails with EMPTY_DOCUMENT.
func (c *Context) Document(root scene.Object) (Document, error) {
	c.Reset()
	if isNil(root) {
		return nil, errors.New(errors.ErrCodeEmptyDocument, "no root object")
	}

	hooks := observability.Pass()
	start := time.Now()
	hooks.OnPassStart(c.ctx, c.passID, root.ClassName())

	doc, err := c.document(root)

	hooks.OnPassComplete(c.ctx, c.passID, c.reg.Len(), time.Since(start), err)
	c.logger.Debug("pass complete", "pass", c.passID, "records", c.reg.Len(), "err", err)
	return doc, err
}

func (c *Context) document(root scene.Object) (Document, error) {
	rec, err := c.Serialize("", root)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New(errors.ErrCodeEmptyDocument, "root produced no record").
			WithObject(c.RefID(root), root.ClassName())
	}
	return Flatten(rec, c.reg)
}

func isNil(obj scene.Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func kindMismatch(obj scene.Object, id, want string) error {
	return errors.New(errors.ErrCodeKindMismatch, "%T does not implement scene.%s", obj, want).
		WithObject(id, obj.ClassName())
}
