package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/store"
)

const pyramidYAML = `
datasets:
  pyramid:
    points: [0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 0.5, 0.5, 1]
    polys: [[0, 1, 4], [1, 2, 4]]
renderWindow:
  renderers:
    - actors:
        - mapper: {input: pyramid}
        - mapper: {input: pyramid}
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"json", "png"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"scene file", Options{Scene: "a.yaml"}, false},
		{"inline scene", Options{SceneData: "actor: {}", SceneFormat: "yaml"}, false},
		{"no scene", Options{}, true},
		{"both sources", Options{Scene: "a.yaml", SceneData: "{}"}, true},
		{"inline without format", Options{SceneData: "{}"}, true},
		{"bad extension", Options{Scene: "a.vtp"}, true},
		{"bad format", Options{Scene: "a.yaml", SceneFormat: "xml"}, true},
		{"bad artifact", Options{Scene: "a.yaml", Formats: []string{"png"}}, true},
		{"bad indent", Options{Scene: "a.yaml", Indent: 12}, true},
		{"negative ttl", Options{Scene: "a.yaml", TTL: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	opts := Options{Scene: "scene.toml", Publish: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.SceneFormat != "toml" {
		t.Errorf("SceneFormat = %q, want toml", opts.SceneFormat)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Indent != DefaultIndent {
		t.Errorf("Indent = %d, want %d", opts.Indent, DefaultIndent)
	}
	if opts.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", opts.TTL, DefaultTTL)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	compact := Options{Scene: "scene.toml", Compact: true, Indent: 4}
	if err := compact.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if compact.Indent != 0 {
		t.Errorf("compact Indent = %d, want 0", compact.Indent)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Scene: "a.yaml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Indent != first.Indent || opts.SceneFormat != first.SceneFormat || len(opts.Formats) != len(first.Formats) {
		t.Error("second call changed the options")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		SceneData:   pyramidYAML,
		SceneFormat: "yaml",
		Formats:     []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// window, renderer, camera, 2 actors, 2 properties, 2 mappers, 1 dataset
	if res.Stats.Records != 10 {
		t.Errorf("Records = %d, want 10", res.Stats.Records)
	}
	if res.Stats.PassID == "" {
		t.Error("PassID not set")
	}
	if res.Key != "" {
		t.Error("Key should be empty without Publish")
	}

	var doc map[string]any
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc["vtkClass"] != "vtkRenderWindow" {
		t.Errorf("vtkClass = %v", doc["vtkClass"])
	}
	if !bytes.Contains(res.Artifacts[FormatJSON], []byte("\n  \"")) {
		t.Error("json artifact should be indented")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph Scene {") {
		t.Errorf("dot artifact = %q", res.Artifacts[FormatDOT])
	}
	if _, ok := res.Artifacts[FormatSVG]; ok {
		t.Error("svg was not requested")
	}
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyramid.yaml")
	if err := os.WriteFile(path, []byte(pyramidYAML), 0644); err != nil {
		t.Fatal(err)
	}
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Scene: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Artifacts[FormatJSON]) == 0 {
		t.Error("missing json artifact")
	}
}

func TestExecuteExampleScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenes", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example scenes")
	}

	runner := NewRunner(nil, nil, nil)
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			res, err := runner.Execute(context.Background(), Options{
				Scene:   path,
				Formats: []string{FormatJSON, FormatDOT},
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			var doc map[string]any
			if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if doc["vtkClass"] == nil {
				t.Error("root record has no vtkClass")
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want errors.Code
	}{
		{"malformed", "renderWindow: [", errors.ErrCodeInvalidScene},
		{"no geometry", "datasets: {d: {}}\nactor: {mapper: {input: d}}", errors.ErrCodeMissingGeometry},
		{"empty document", "actor: {}", errors.ErrCodeEmptyDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{SceneData: tt.data, SceneFormat: "yaml"})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestExecutePublish(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fs, nil, nil)
	defer r.Close()
	ctx := context.Background()
	opts := Options{SceneData: pyramidYAML, SceneFormat: "yaml", Publish: true}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(first.Key, store.KeyPrefix) || first.StoreHit {
		t.Errorf("first publish: key %q hit %v", first.Key, first.StoreHit)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if second.Key != first.Key || !second.StoreHit {
		t.Errorf("second publish: key %q hit %v, want %q hit true", second.Key, second.StoreHit, first.Key)
	}

	data, err := r.Fetch(ctx, first.Key)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	compact, _ := Encode(first.Document, 0)
	if !bytes.Equal(data, compact) {
		t.Error("stored document differs from the compact encoding")
	}
}

func TestFetchErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	if _, err := r.Fetch(ctx, "../etc/passwd"); !errors.Is(err, errors.ErrCodeInvalidKey) {
		t.Errorf("bad key: err = %v", err)
	}
	if _, err := r.Fetch(ctx, store.Key([]byte("x"))); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing key: err = %v", err)
	}
}

func TestEncode(t *testing.T) {
	doc := map[string]any{"b": 1, "a": []any{"x"}, "html": "<p>"}
	compact, err := Encode(doc, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(compact); got != `{"a":["x"],"b":1,"html":"<p>"}` {
		t.Errorf("compact = %s", got)
	}

	indented, err := Encode(doc, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(indented), "\n  \"a\": [") || strings.HasSuffix(string(indented), "\n") {
		t.Errorf("indented = %q", indented)
	}
}
