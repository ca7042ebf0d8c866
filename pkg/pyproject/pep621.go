package pyproject

import "github.com/pyprojconv/pyprojconv/pkg/errors"

// Setuptools build backend constants.
const (
	setuptoolsBackend = "setuptools.build_meta"
)

var setuptoolsRequires = multiline{"setuptools", "wheel"}

// parsePip extracts the dialect-neutral project from a PEP 621
// document.
func parsePip(d *Document) (*Project, error) {
	tbl := d.table("project")
	if tbl == nil {
		return nil, errors.New(errors.ErrCodeInvalidDialect, "missing [project] table")
	}

	p := &Project{}
	var err error
	if p.Name, err = requiredString(tbl, "name", "project"); err != nil {
		return nil, err
	}
	if p.Version, err = requiredString(tbl, "version", "project"); err != nil {
		return nil, err
	}
	p.Description, _ = tbl["description"].(string)
	p.License = licenseString(tbl["license"])
	p.Authors = authorStrings(tbl["authors"])

	for _, req := range stringSlice(tbl["dependencies"]) {
		p.Dependencies = append(p.Dependencies, SplitRequirement(req))
	}
	if optional := d.table("project", "optional-dependencies"); optional != nil {
		for _, req := range stringSlice(optional["dev"]) {
			p.DevDependencies = append(p.DevDependencies, SplitRequirement(req))
		}
	}

	p.PackagesFrom = setuptoolsPackagesFrom(d)
	p.Sections = toolSections(d, "setuptools")
	return p, nil
}

// setuptoolsPackagesFrom extracts the package-discovery root from
// [tool.setuptools.packages.find].
func setuptoolsPackagesFrom(d *Document) string {
	find := d.table("tool", "setuptools", "packages", "find")
	if find == nil {
		return ""
	}
	if where := stringSlice(find["where"]); len(where) > 0 {
		return where[0]
	}
	return ""
}

// buildPip renders a project in the PEP 621 pip convention.
func buildPip(d *Document, p *Project) *Output {
	out := &Output{}

	deps := make(multiline, 0, len(p.Dependencies))
	for _, dep := range p.Dependencies {
		deps = append(deps, dep.PipString())
	}

	rows := []row{
		{"name", p.Name},
		{"version", p.Version},
		{"description", p.Description},
		{"authors", p.Authors},
	}
	if p.License != "" {
		rows = append(rows, row{"license", p.License})
	}
	rows = append(rows, row{"dependencies", deps})
	out.add(table{path: []string{"project"}, rows: rows})

	if len(p.DevDependencies) > 0 {
		dev := make(multiline, 0, len(p.DevDependencies))
		for _, dep := range p.DevDependencies {
			dev = append(dev, dep.PipString())
		}
		out.add(table{
			path: []string{"project", "optional-dependencies"},
			rows: []row{{"dev", dev}},
		})
	}

	if p.PackagesFrom != "" {
		out.add(table{
			path: []string{"tool", "setuptools", "packages", "find"},
			rows: []row{{"where", []string{p.PackagesFrom}}},
		})
	}

	addToolSections(out, d, p.Sections)

	out.add(table{path: []string{"build-system"}, rows: []row{
		{"requires", setuptoolsRequires},
		{"build-backend", setuptoolsBackend},
	}})
	return out
}
