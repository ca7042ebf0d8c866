package pyproject

import "github.com/pyprojconv/pyprojconv/pkg/errors"

// Dialect identifies a pyproject.toml convention.
type Dialect string

const (
	// DialectPip is the PEP 621 convention: a [project] table with a
	// dependencies array and a setuptools build backend.
	DialectPip Dialect = "pip"

	// DialectPoetry is the Poetry convention: a [tool.poetry] table
	// with a dependencies mapping and the poetry-core build backend.
	DialectPoetry Dialect = "poetry"
)

// Detect returns the convention the document uses. Documents declaring
// [tool.poetry] are treated as Poetry even when a [project] table is
// also present, since Poetry owns the dependency data in that case.
func (d *Document) Detect() (Dialect, error) {
	if d.table("tool", "poetry") != nil {
		return DialectPoetry, nil
	}
	if d.table("project") != nil {
		return DialectPip, nil
	}
	return "", errors.New(errors.ErrCodeInvalidDialect, "no [project] or [tool.poetry] table found")
}
