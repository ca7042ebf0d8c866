// Package pyproject converts Python project metadata between the two
// common pyproject.toml conventions.
//
// # Conventions
//
// The package understands two dialects:
//
//   - pip (PEP 621): a [project] table with a dependencies array of
//     requirement strings like "requests==2.31.0", an optional
//     [project.optional-dependencies] dev array, and a setuptools
//     build backend.
//   - Poetry: a [tool.poetry] table with a dependencies mapping of
//     package name to version specifier ("*", "^1.2.3", "~1.2", or an
//     exact pin), an optional [tool.poetry.group.dev.dependencies]
//     mapping, and the poetry-core build backend.
//
// # Converting
//
//	doc, err := pyproject.Load("pyproject.toml")
//	if err != nil {
//	    return err
//	}
//	out, err := pyproject.ToPoetry(doc, pyproject.DefaultPythonVersion)
//	if err != nil {
//	    return err
//	}
//	err = out.Save("pyproject_poetry.toml")
//
// Conversion is a single in-memory pass: the source document is parsed
// into a dialect-neutral [Project], dependency constraints are
// translated at the dialect boundary, and unrelated [tool.*] sections
// are carried through in document order without interpretation.
//
// # Version specifier translation
//
// Poetry specifiers map to pip constraints via [PipConstraint]
// ("^1.2.3" becomes ">=1.2.3,<2.0.0") and back via [PoetryConstraint].
// The reverse direction is a heuristic inverse: only ranges of the
// exact shape produced by caret conversion are recovered as carets.
// Arbitrary pip constraints (exclusive upper bounds, extra clauses,
// environment markers) pass through unchanged and are not guaranteed
// to round-trip.
package pyproject
