package pyproject

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/pyprojconv/pyprojconv/pkg/errors"
)

// Document is a parsed pyproject.toml together with the key order
// recorded by the decoder. The raw data stays untyped so unrecognized
// sections survive a conversion untouched.
type Document struct {
	root map[string]any
	meta toml.MetaData
}

// Load reads and parses a pyproject.toml file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "reading %s", path)
	}
	return Parse(data)
}

// Parse parses raw TOML bytes into a Document.
func Parse(data []byte) (*Document, error) {
	root := make(map[string]any)
	meta, err := toml.Decode(string(data), &root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTOML, err, "parsing TOML")
	}
	return &Document{root: root, meta: meta}, nil
}

// table walks to the nested table at path. Returns nil when any
// component is missing or not a table.
func (d *Document) table(path ...string) map[string]any {
	cur := d.root
	for _, p := range path {
		next, ok := cur[p].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// keysUnder returns the immediate child keys of path in document order.
func (d *Document) keysUnder(path ...string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, k := range d.meta.Keys() {
		if len(k) != len(path)+1 {
			continue
		}
		match := true
		for i, p := range path {
			if k[i] != p {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		name := k[len(path)]
		if !seen[name] {
			seen[name] = true
			keys = append(keys, name)
		}
	}
	return keys
}

// orderedKeys returns the keys of data in source-document order where
// the decoder recorded it, with any leftovers appended sorted.
func (d *Document) orderedKeys(data map[string]any, path []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range d.keysUnder(path...) {
		if _, ok := data[k]; ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}

	var rest []string
	for k := range data {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
