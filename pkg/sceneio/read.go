// Package sceneio reads scene description files and builds in-memory scenes.
//
// A scene file is JSON, YAML or TOML. It is first decoded into a generic
// map, then into a [Description] with mapstructure, and finally built into
// [memory] objects ready for serialization:
//
//	root, err := sceneio.ReadSceneFile("cube.yaml")
//	doc, err := serialize.NewContext(nil).Document(root)
//
// Shared objects live in named sections (datasets, lookupTables,
// transferFunctions, properties, cameras) and are referenced by name:
//
//	datasets:
//	  cube: {points: [...], polys: [[0, 1, 2]]}
//	renderer:
//	  actors:
//	    - mapper: {input: cube}
//	    - mapper: {input: cube}
//
// Both actors above share one dataset object.
package sceneio

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
)

// Format is a scene file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown scene format for %q (want .json, .yaml, .yml or .toml)", path)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown scene format %q", s)
}

// Decode reads a scene description in the given format.
func Decode(r io.Reader, format Format) (*Description, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "read scene")
	}

	raw := map[string]any{}
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		_, err = toml.Decode(string(data), &raw)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown scene format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse %s scene", format)
	}

	var desc Description
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &desc,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	return &desc, nil
}

// ReadScene decodes and builds a scene, returning its root object.
func ReadScene(r io.Reader, format Format) (scene.Object, error) {
	desc, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return desc.Build()
}

// ReadSceneFile reads a scene file, picking the format from its extension.
func ReadSceneFile(path string) (scene.Object, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open scene %s", path)
	}
	defer f.Close()
	return ReadScene(f, format)
}
