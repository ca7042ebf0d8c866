package pyproject

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pyprojconv/pyprojconv/pkg/errors"
)

// Output is a converted pyproject document ready to be encoded.
// Sections are written in the order the conversion produced them.
type Output struct {
	sections []section
}

func (o *Output) add(s section) {
	o.sections = append(o.sections, s)
}

// Encode writes the document as TOML, one blank line between sections.
func (o *Output) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, s := range o.sections {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if err := s.write(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save encodes the document to a file at path.
func (o *Output) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "creating %s", path)
	}
	if err := o.Encode(f); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", path)
	}
	return f.Close()
}

type section interface {
	write(w *bufio.Writer) error
}

// row is a single key/value line within a table.
type row struct {
	key string
	val any
}

// table is a fixed-shape output table with ordered rows.
type table struct {
	path []string
	rows []row
}

func (t table) write(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, "[%s]\n", headerPath(t.path)); err != nil {
		return err
	}
	for _, r := range t.rows {
		if _, err := fmt.Fprintf(w, "%s = %s\n", encodeKey(r.key), encodeValue(r.val)); err != nil {
			return err
		}
	}
	return nil
}

// fragment is an opaque pass-through table copied from the source
// document. Keys keep their source order where the decoder recorded
// it; sub-tables are written after plain values, each under its own
// dotted header.
type fragment struct {
	path []string
	data map[string]any
	doc  *Document
}

func (f fragment) write(w *bufio.Writer) error {
	keys := f.doc.orderedKeys(f.data, f.path)
	var plain, subs []string
	for _, k := range keys {
		if _, ok := f.data[k].(map[string]any); ok {
			subs = append(subs, k)
		} else {
			plain = append(plain, k)
		}
	}

	if _, err := fmt.Fprintf(w, "[%s]\n", headerPath(f.path)); err != nil {
		return err
	}
	for _, k := range plain {
		if _, err := fmt.Fprintf(w, "%s = %s\n", encodeKey(k), encodeValue(f.data[k])); err != nil {
			return err
		}
	}
	for _, k := range subs {
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		sub := fragment{
			path: append(append([]string{}, f.path...), k),
			data: f.data[k].(map[string]any),
			doc:  f.doc,
		}
		if err := sub.write(w); err != nil {
			return err
		}
	}
	return nil
}

// multiline is a string array rendered one element per line, the way
// dependency lists conventionally appear in pyproject files.
type multiline []string

// inlineTable is an inline TOML table with ordered pairs.
type inlineTable struct {
	pairs []row
}

func encodeValue(v any) string {
	switch v := v.(type) {
	case string:
		return encodeString(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return encodeFloat(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case multiline:
		var b strings.Builder
		b.WriteString("[\n")
		for _, s := range v {
			fmt.Fprintf(&b, "    %s,\n", encodeString(s))
		}
		b.WriteString("]")
		return b.String()
	case inlineTable:
		parts := make([]string, len(v.pairs))
		for i, p := range v.pairs {
			parts[i] = fmt.Sprintf("%s = %s", encodeKey(p.key), encodeValue(p.val))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []string:
		parts := make([]string, len(v))
		for i, s := range v {
			parts[i] = encodeString(s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = encodeValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []map[string]any:
		parts := make([]string, len(v))
		for i, m := range v {
			parts[i] = encodeValue(m)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		// Inline tables only occur inside arrays; sorted keys keep the
		// output deterministic.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s = %s", encodeKey(k), encodeValue(v[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case nil:
		return `""`
	}
	return encodeString(fmt.Sprintf("%v", v))
}

var bareKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func encodeKey(k string) string {
	if bareKeyRe.MatchString(k) {
		return k
	}
	return encodeString(k)
}

func headerPath(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = encodeKey(p)
	}
	return strings.Join(quoted, ".")
}

func encodeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func encodeFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
