package pyproject

import (
	"strings"

	"github.com/pyprojconv/pyprojconv/pkg/errors"
)

// DefaultPythonVersion is the specifier synthesized for the python
// pseudo-dependency when converting to the Poetry dialect.
const DefaultPythonVersion = "^3.11"

// pythonKey is the Poetry-only language-version entry. It is dropped
// when reading Poetry documents and synthesized when writing them; it
// never appears in a translated dependency list.
const pythonKey = "python"

// Poetry build backend constants.
const (
	poetryBackend = "poetry.core.masonry.api"
	poetryRequire = "poetry-core"
)

// parsePoetry extracts the dialect-neutral project from a Poetry
// document.
func parsePoetry(d *Document) (*Project, error) {
	tbl := d.table("tool", "poetry")
	if tbl == nil {
		return nil, errors.New(errors.ErrCodeInvalidDialect, "missing [tool.poetry] table")
	}

	p := &Project{}
	var err error
	if p.Name, err = requiredString(tbl, "name", "tool.poetry"); err != nil {
		return nil, err
	}
	if p.Version, err = requiredString(tbl, "version", "tool.poetry"); err != nil {
		return nil, err
	}
	p.Description, _ = tbl["description"].(string)
	p.License = licenseString(tbl["license"])
	p.Authors = authorStrings(tbl["authors"])

	p.Dependencies = poetryDependencies(d, "tool", "poetry", "dependencies")
	p.DevDependencies = poetryDependencies(d, "tool", "poetry", "group", "dev", "dependencies")
	p.PackagesFrom = poetryPackagesFrom(tbl["packages"])
	p.Sections = toolSections(d, "poetry")
	return p, nil
}

// poetryDependencies reads a Poetry dependency mapping in document
// order, translating each specifier to the internal pip form. The
// python pseudo-dependency is skipped. Specifier values that are
// tables use their version field when present and fall back to "*".
func poetryDependencies(d *Document, path ...string) []Dependency {
	tbl := d.table(path...)
	if tbl == nil {
		return nil
	}
	var deps []Dependency
	for _, name := range d.orderedKeys(tbl, path) {
		if strings.EqualFold(name, pythonKey) {
			continue
		}
		deps = append(deps, Dependency{
			Name:       name,
			Constraint: PipConstraint(specString(tbl[name])),
		})
	}
	return deps
}

func specString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["version"].(string); ok {
			return s
		}
	}
	return "*"
}

// poetryPackagesFrom extracts the package-discovery root from a Poetry
// packages declaration like [{include = "pkg", from = "src"}].
func poetryPackagesFrom(v any) string {
	for _, entry := range tableSlice(v) {
		if from, ok := entry["from"].(string); ok && from != "" {
			return from
		}
	}
	return ""
}

// buildPoetry renders a project in the Poetry convention. python is
// the specifier for the synthesized python entry, which always leads
// the dependency mapping.
func buildPoetry(d *Document, p *Project, python string) *Output {
	out := &Output{}

	rows := []row{
		{"name", p.Name},
		{"version", p.Version},
		{"description", p.Description},
		{"authors", p.Authors},
	}
	if p.License != "" {
		rows = append(rows, row{"license", p.License})
	}
	if p.PackagesFrom != "" {
		rows = append(rows, row{"packages", []any{inlineTable{pairs: []row{
			{"include", moduleName(p.Name)},
			{"from", p.PackagesFrom},
		}}}})
	}
	out.add(table{path: []string{"tool", "poetry"}, rows: rows})

	deps := table{path: []string{"tool", "poetry", "dependencies"}}
	deps.rows = append(deps.rows, row{pythonKey, python})
	for _, dep := range p.Dependencies {
		deps.rows = append(deps.rows, row{dep.Name, PoetryConstraint(dep.Constraint)})
	}
	out.add(deps)

	if len(p.DevDependencies) > 0 {
		dev := table{path: []string{"tool", "poetry", "group", "dev", "dependencies"}}
		for _, dep := range p.DevDependencies {
			dev.rows = append(dev.rows, row{dep.Name, PoetryConstraint(dep.Constraint)})
		}
		out.add(dev)
	}

	addToolSections(out, d, p.Sections)

	out.add(table{path: []string{"build-system"}, rows: []row{
		{"requires", multiline{poetryRequire}},
		{"build-backend", poetryBackend},
	}})
	return out
}

// toolSections collects the [tool.*] children except the named source
// section, preserving document order.
func toolSections(d *Document, exclude string) []Section {
	tool := d.table("tool")
	if tool == nil {
		return nil
	}
	var sections []Section
	for _, name := range d.orderedKeys(tool, []string{"tool"}) {
		if name == exclude {
			continue
		}
		data, ok := tool[name].(map[string]any)
		if !ok {
			continue
		}
		sections = append(sections, Section{Name: name, Data: data})
	}
	return sections
}

// addToolSections appends pass-through sections, dropping the two
// build-tool sections that the conversion replaces.
func addToolSections(out *Output, d *Document, sections []Section) {
	for _, s := range sections {
		if s.Name == "poetry" || s.Name == "setuptools" {
			continue
		}
		out.add(fragment{path: []string{"tool", s.Name}, data: s.Data, doc: d})
	}
}

func requiredString(tbl map[string]any, key, where string) (string, error) {
	s, ok := tbl[key].(string)
	if !ok || s == "" {
		return "", errors.New(errors.ErrCodeMissingField, "missing required field %q in [%s]", key, where)
	}
	return s, nil
}
