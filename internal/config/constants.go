package config

import (
	"path/filepath"
	"strings"
)

// Symbol table sizing.
const (
	InitialBucketCount = 8
	MaxLoadFactor      = 2
	ScaleFactor        = 2
)

// ConfigFileName is looked up in the working directory and its parents.
const ConfigFileName = "defsub.yaml"

// DirectiveName is the word after '#' that starts a definition.
const DirectiveName = "define"

// DefaultDefineValue is bound by "-D NAME" without a value.
const DefaultDefineValue = 1

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".def", ".in", ".defsub"}

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range SourceFileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// TrimSourceExt strips a recognized source extension from name.
func TrimSourceExt(name string) string {
	for _, e := range SourceFileExtensions {
		if strings.HasSuffix(name, e) {
			return strings.TrimSuffix(name, e)
		}
	}
	return name
}
