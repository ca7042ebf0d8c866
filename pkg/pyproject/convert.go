package pyproject

import "github.com/pyprojconv/pyprojconv/pkg/errors"

// ToPoetry converts a pip-style document to the Poetry convention.
// python is the specifier for the synthesized python pseudo-dependency;
// DefaultPythonVersion is used when it is empty. Unrelated [tool.*]
// sections carry through in document order; [tool.setuptools] is
// replaced by the Poetry build configuration.
func ToPoetry(d *Document, python string) (*Output, error) {
	p, err := parsePip(d)
	if err != nil {
		return nil, err
	}
	if python == "" {
		python = DefaultPythonVersion
	}
	return buildPoetry(d, p, python), nil
}

// ToPip converts a Poetry document to the PEP 621 pip convention.
// The python pseudo-dependency is dropped; [tool.poetry] is replaced
// by the setuptools build configuration.
func ToPip(d *Document) (*Output, error) {
	p, err := parsePoetry(d)
	if err != nil {
		return nil, err
	}
	return buildPip(d, p), nil
}

// Convert translates the document into the given target dialect.
func Convert(d *Document, target Dialect, python string) (*Output, error) {
	switch target {
	case DialectPoetry:
		return ToPoetry(d, python)
	case DialectPip:
		return ToPip(d)
	}
	return nil, errors.New(errors.ErrCodeInvalidDialect, "unknown target dialect %q", target)
}
