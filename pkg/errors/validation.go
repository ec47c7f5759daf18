package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// documentKeyRegex matches content-addressed document keys ("scene:<sha256>").
var documentKeyRegex = regexp.MustCompile(`^scene:[0-9a-f]{64}$`)

// ValidateDocumentKey validates a document store key received from a client.
// It rejects anything that is not a content-addressed scene key so that
// user input can never address other entries of a shared backend.
func ValidateDocumentKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "document key cannot be empty")
	}
	if !documentKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid document key: %q", key)
	}
	return nil
}

// sceneExtensions lists the description formats understood by sceneio.
var sceneExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateSceneFilename validates a scene description filename.
//
// Validation rules:
//   - Filename cannot be empty
//   - No null bytes or control characters
//   - Extension must be one of .json, .yaml, .yml, .toml
func ValidateSceneFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "scene filename cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "scene filename contains invalid control characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !sceneExtensions[ext] {
		return New(ErrCodeInvalidInput, "unsupported scene format %q (must be one of: .json, .yaml, .yml, .toml)", ext)
	}
	return nil
}
