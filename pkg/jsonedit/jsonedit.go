// Package jsonedit rewrites single values inside JSON documents while leaving
// key order, indentation and every other byte of the document untouched.
package jsonedit

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrNotWritten is returned when a set left the document without the value.
var ErrNotWritten = errors.New("value not written")

// keyEscaper escapes characters that the key path syntax treats specially.
var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
	`!`, `\!`,
)

// EscapeKey escapes a single object key so that it is addressed literally
// when joined into a dot-separated key path (e.g. "lodash.get").
func EscapeKey(key string) string {
	return keyEscaper.Replace(key)
}

// JoinPath builds a key path from already escaped segments.
func JoinPath(segments ...string) string {
	return strings.Join(segments, ".")
}

// Set replaces (or inserts) the string value at keyPath within doc.
func Set(doc []byte, keyPath string, value string) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("invalid JSON document")
	}

	out, err := sjson.SetBytes(doc, keyPath, value)
	if err != nil {
		return nil, fmt.Errorf("set %q: %w", keyPath, err)
	}

	// sjson reports success without editing paths it cannot address.
	if written, ok := Get(out, keyPath); !ok || written != value {
		return nil, fmt.Errorf("set %q: %w", keyPath, ErrNotWritten)
	}

	return out, nil
}

// Get returns the string value at keyPath and whether it exists.
func Get(doc []byte, keyPath string) (string, bool) {
	result := gjson.GetBytes(doc, keyPath)
	if !result.Exists() {
		return "", false
	}

	return result.String(), true
}

// SetFile updates one value of the JSON file at path. The file keeps its
// permissions; it ends with a newline exactly when endsWithNewline is true.
func SetFile(path string, keyPath string, value string, endsWithNewline bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	// #nosec G304 - path points at a workspace manifest chosen by the caller
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	out, err := Set(doc, keyPath, value)
	if err != nil {
		return fmt.Errorf("edit %s: %w", path, err)
	}

	out = bytes.TrimRight(out, "\n")
	if endsWithNewline {
		out = append(out, '\n')
	}

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	slog.Debug("updated JSON value", "path", path, "key", keyPath, "value", value)

	return nil
}
