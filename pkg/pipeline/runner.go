package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
	"github.com/matzehuels/scenedoc/pkg/sceneio"
	"github.com/matzehuels/scenedoc/pkg/serialize"
	"github.com/matzehuels/scenedoc/pkg/store"
)

// Runner encapsulates pipeline execution with publishing.
// Both CLI and server use this to avoid duplicating the export logic.
//
// The Runner is stateless except for the store, table and logger. Every
// Execute call runs its own serialization context, so multiple goroutines
// can safely share one Runner.
type Runner struct {
	Store  store.Store
	Table  *serialize.Table
	Logger *log.Logger
}

// NewRunner creates a runner.
// If s is nil, a NullStore is used (publishing disabled).
// If table is nil, the default dispatch table is used.
func NewRunner(s store.Store, table *serialize.Table, logger *log.Logger) *Runner {
	if s == nil {
		s = store.NewNullStore()
	}
	if table == nil {
		table = serialize.DefaultTable()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:  s,
		Table:  table,
		Logger: logger,
	}
}

// Execute runs the complete load → serialize → encode → publish pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	root, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Serialize
	serializeStart := time.Now()
	sctx := serialize.NewContext(r.Table,
		serialize.WithLogger(opts.Logger),
		serialize.WithContext(ctx))
	doc, err := sctx.Document(root)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.PassID = sctx.PassID()
	result.Stats.Records = sctx.Registry().Len()
	result.Stats.SerializeTime = time.Since(serializeStart)

	opts.Logger.Info("serialized scene",
		"records", result.Stats.Records,
		"pass", result.Stats.PassID,
		"duration", result.Stats.SerializeTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	if opts.Wants(FormatJSON) {
		data, err := Encode(doc, opts.Indent)
		if err != nil {
			return nil, err
		}
		result.Artifacts[FormatJSON] = data
		result.Stats.Bytes = len(data)
	}
	if opts.Wants(FormatDOT) || opts.Wants(FormatSVG) {
		rec, _ := sctx.Registry().Get(sctx.RefID(root))
		dot := serialize.ToDOT(rec, sctx.Registry())
		if opts.Wants(FormatDOT) {
			result.Artifacts[FormatDOT] = []byte(dot)
		}
		if opts.Wants(FormatSVG) {
			svg, err := serialize.RenderSVG(ctx, dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
			}
			result.Artifacts[FormatSVG] = svg
		}
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	opts.Logger.Debug("encoded artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	// Stage 4: Publish
	if opts.Publish {
		data, err := Encode(doc, 0)
		if err != nil {
			return nil, err
		}
		key, hit, err := r.Publish(ctx, data, opts.TTL)
		if err != nil {
			return nil, err
		}
		result.Key = key
		result.StoreHit = hit
		opts.Logger.Info("published document", "key", key, "cached", hit)
	}

	return result, nil
}

// Load reads the scene named by opts.
func (r *Runner) Load(opts Options) (scene.Object, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Scene != "" {
		return sceneio.ReadSceneFile(opts.Scene)
	}
	return sceneio.ReadScene(strings.NewReader(opts.SceneData), sceneio.Format(opts.SceneFormat))
}

// Encode writes doc as JSON. An indent of zero produces compact output.
// Map keys are sorted, so equal documents encode to equal bytes.
func Encode(doc serialize.Document, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Publish stores data under its content key. hit reports that the key was
// already present, in which case nothing is written.
func (r *Runner) Publish(ctx context.Context, data []byte, ttl time.Duration) (key string, hit bool, err error) {
	key = store.Key(data)
	if _, found, err := r.Store.Get(ctx, key); err == nil && found {
		return key, true, nil
	}
	if err := r.Store.Set(ctx, key, data, ttl); err != nil {
		return "", false, errors.Wrap(errors.ErrCodeNetwork, err, "publish %s", key)
	}
	return key, false, nil
}

// Fetch returns a published document.
func (r *Runner) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := errors.ValidateDocumentKey(key); err != nil {
		return nil, err
	}
	data, found, err := r.Store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", key)
	}
	if !found {
		return nil, errors.New(errors.ErrCodeNotFound, "document %s not found", key)
	}
	return data, nil
}

// Close releases resources held by the runner (primarily the store).
func (r *Runner) Close() error {
	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
