package pyproject

import (
	"fmt"
	"strconv"
	"strings"
)

// PipConstraint converts a Poetry version specifier to a pip constraint
// string. An empty result means "unconstrained".
//
//	"*"       -> ""
//	"^1.2.3"  -> ">=1.2.3,<2.0.0"
//	"~1.2"    -> ">=1.2,<1.3.0"
//	"2.31.0"  -> "2.31.0"
//
// Specifiers that do not match a recognized shape pass through
// unchanged rather than failing.
func PipConstraint(spec string) string {
	switch {
	case spec == "*":
		return ""
	case strings.HasPrefix(spec, "^"):
		base := spec[1:]
		major, ok := atoi(component(base, 0))
		if !ok {
			return spec
		}
		return fmt.Sprintf(">=%s,<%d.0.0", base, major+1)
	case strings.HasPrefix(spec, "~"):
		base := spec[1:]
		// The upper bound allows patch-level increases only: bump the
		// minor component when present, else pin it at zero.
		upper := 0
		if minor := component(base, 1); minor != "" {
			n, ok := atoi(minor)
			if !ok {
				return spec
			}
			upper = n + 1
		}
		return fmt.Sprintf(">=%s,<%s.%d.0", base, component(base, 0), upper)
	}
	return spec
}

// PoetryConstraint converts a pip constraint string to a Poetry version
// specifier.
//
//	""                  -> "*"
//	"==2.31.0"          -> "2.31.0"
//	">=1.20.0,<2.0.0"   -> "^1.20.0"
//
// This is a heuristic inverse of PipConstraint: a ">=,<" range pair is
// assumed to be the product of caret conversion and collapses to the
// caret form of its lower bound. Ranges of any other shape, exclusive
// lower bounds, and environment markers pass through unchanged and are
// not guaranteed to round-trip.
func PoetryConstraint(pip string) string {
	pip = strings.TrimSpace(pip)
	if pip == "" || pip == "*" {
		return "*"
	}
	if strings.Contains(pip, "==") {
		return strings.TrimSpace(strings.ReplaceAll(pip, "==", ""))
	}
	if strings.Contains(pip, ">=") && strings.Contains(pip, "<") {
		lower := strings.SplitN(pip, ",", 2)[0]
		lower = strings.TrimPrefix(strings.TrimSpace(lower), ">=")
		return "^" + strings.TrimSpace(lower)
	}
	return pip
}

// requirementOps are the operators recognized when splitting a pip
// requirement string. "==" is checked before ">=" so exact pins are
// never mistaken for range bounds.
var requirementOps = []string{"==", ">="}

// SplitRequirement splits a pip dependency string like
// "requests==2.31.0" into its package name and constraint. The
// constraint keeps its operator; strings without a recognized operator
// yield an empty constraint.
func SplitRequirement(req string) Dependency {
	for _, op := range requirementOps {
		if i := strings.Index(req, op); i >= 0 {
			return Dependency{
				Name:       strings.TrimSpace(req[:i]),
				Constraint: strings.TrimSpace(req[i:]),
			}
		}
	}
	return Dependency{Name: strings.TrimSpace(req)}
}

// component returns the i-th dotted component of a version string, or
// "" when absent.
func component(version string, i int) string {
	parts := strings.Split(version, ".")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
