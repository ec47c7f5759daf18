// Package pipeline provides the scene export pipeline for scenedoc.
//
// This package implements the complete load → serialize → encode → publish
// pipeline shared by the CLI and the HTTP server, so both entry points
// produce byte-identical documents for the same scene.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a scene description (JSON, YAML or TOML) into memory objects
//  2. Serialize: Run one serialization pass and flatten it into a document
//  3. Encode: Produce the requested artifacts (JSON, DOT, SVG)
//  4. Publish: Store the compact JSON document under its content key
//
// # Usage
//
//	runner := pipeline.NewRunner(st, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   "pyramid.yaml",
//	    Formats: []string{"json", "svg"},
//	    Publish: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Key)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/sceneio"
	"github.com/matzehuels/scenedoc/pkg/serialize"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultIndent is the JSON indentation width.
	DefaultIndent = 2

	// DefaultTTL is how long published documents are kept.
	DefaultTTL = 7 * 24 * time.Hour

	// MaxSceneSize bounds inline scene descriptions.
	MaxSceneSize = 32 << 20
)

// Format constants for output artifacts.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one export.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of Scene and SceneData is set.
	Scene       string `json:"scene,omitempty"`
	SceneData   string `json:"scene_data,omitempty"`
	SceneFormat string `json:"scene_format,omitempty"`

	// Encode options
	Formats []string `json:"formats,omitempty"`
	Indent  int      `json:"indent,omitempty"`
	Compact bool     `json:"compact,omitempty"`

	// Publish options
	Publish bool          `json:"publish,omitempty"`
	TTL     time.Duration `json:"ttl,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the flattened scene document.
	Document serialize.Document

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Key is the content key of the published document (empty unless
	// Options.Publish is set).
	Key string

	// StoreHit is true when the document was already published.
	StoreHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PassID        string
	Records       int
	Bytes         int
	LoadTime      time.Duration
	SerializeTime time.Duration
	EncodeTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetEncodeDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Indent < 0 || o.Indent > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "indent must be between 0 and 8, got %d", o.Indent)
	}
	if o.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ttl must not be negative")
	}
	if o.Publish && o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the scene source and resolves its format.
func (o *Options) ValidateForLoad() error {
	switch {
	case o.Scene == "" && o.SceneData == "":
		return errors.New(errors.ErrCodeInvalidInput, "scene or scene_data is required")
	case o.Scene != "" && o.SceneData != "":
		return errors.New(errors.ErrCodeInvalidInput, "scene and scene_data are mutually exclusive")
	case len(o.SceneData) > MaxSceneSize:
		return errors.New(errors.ErrCodeInvalidInput, "scene_data exceeds %d bytes", MaxSceneSize)
	}

	if o.Scene != "" {
		if err := errors.ValidateSceneFilename(o.Scene); err != nil {
			return err
		}
	}

	switch {
	case o.SceneFormat != "":
		f, err := sceneio.ParseFormat(o.SceneFormat)
		if err != nil {
			return err
		}
		o.SceneFormat = string(f)
	case o.Scene != "":
		f, err := sceneio.FormatFromPath(o.Scene)
		if err != nil {
			return err
		}
		o.SceneFormat = string(f)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "scene_format is required with scene_data")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetEncodeDefaults sets default values for encoding.
func (o *Options) SetEncodeDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Indent == 0 && !o.Compact {
		o.Indent = DefaultIndent
	}
	if o.Compact {
		o.Indent = 0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Wants reports whether format is among the requested artifacts.
func (o *Options) Wants(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
