package pyproject

import (
	"fmt"
	"strings"
)

// Dependency is a named package constraint. Constraint uses pip syntax
// internally (">=1.2.3,<2.0.0", "==1.0", or "" for unconstrained); the
// dialect codecs translate to and from Poetry specifiers at the
// boundary.
type Dependency struct {
	Name       string
	Constraint string
}

// PipString renders the dependency as a pip requirement list entry.
func (d Dependency) PipString() string {
	return d.Name + d.Constraint
}

// Section is an unrelated [tool.*] configuration table carried through
// a conversion without interpretation.
type Section struct {
	Name string         // key under [tool], e.g. "black"
	Data map[string]any // decoded fragment
}

// Project is the dialect-neutral view of a pyproject document.
type Project struct {
	Name            string
	Version         string
	Description     string
	Authors         []string
	License         string
	Dependencies    []Dependency
	DevDependencies []Dependency // nil when the source has no dev group
	PackagesFrom    string       // package-discovery root, "" when none declared
	Sections        []Section    // pass-through tool sections in document order
}

// moduleName derives the importable module name for a project, mapping
// the distribution-name convention (dashes) to the module convention
// (underscores).
func moduleName(project string) string {
	return strings.ReplaceAll(strings.ToLower(project), "-", "_")
}

// authorStrings flattens an authors value into the "Name <email>"
// string form. Poetry authors are already strings; PEP 621 author
// tables are composed from their name and email fields.
func authorStrings(v any) []string {
	var out []string
	for _, e := range anySlice(v) {
		switch e := e.(type) {
		case string:
			out = append(out, e)
		case map[string]any:
			name, _ := e["name"].(string)
			email, _ := e["email"].(string)
			switch {
			case name != "" && email != "":
				out = append(out, fmt.Sprintf("%s <%s>", name, email))
			case name != "":
				out = append(out, name)
			case email != "":
				out = append(out, email)
			}
		}
	}
	return out
}

// licenseString extracts a license value, accepting both the plain
// string form and the PEP 621 {text = "..."} table form.
func licenseString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["text"].(string); ok {
			return s
		}
	}
	return ""
}

// anySlice normalizes the decoder's array representations.
func anySlice(v any) []any {
	switch v := v.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	}
	return nil
}

// stringSlice extracts the string elements of an array value.
func stringSlice(v any) []string {
	var out []string
	for _, e := range anySlice(v) {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// tableSlice extracts the table elements of an array value.
func tableSlice(v any) []map[string]any {
	var out []map[string]any
	for _, e := range anySlice(v) {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
