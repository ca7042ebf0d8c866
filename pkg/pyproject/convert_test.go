package pyproject

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pyprojconv/pyprojconv/pkg/errors"
)

func encodeToString(t *testing.T, out *Output) string {
	t.Helper()
	var buf bytes.Buffer
	if err := out.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return buf.String()
}

func TestToPoetry(t *testing.T) {
	input := `[project]
name = "docktuna"
version = "1.2.0"
description = "Container inspection helpers"
authors = [
    {name = "Jane Doe", email = "jane@example.com"},
]
license = {text = "MIT"}
dependencies = [
    "requests==2.31.0",
    "numpy>=1.20.0,<2.0.0",
    "flask",
]

[project.optional-dependencies]
dev = ["pytest==8.0.0"]

[tool.black]
line-length = 100

[build-system]
requires = ["setuptools", "wheel"]
build-backend = "setuptools.build_meta"
`
	want := `[tool.poetry]
name = "docktuna"
version = "1.2.0"
description = "Container inspection helpers"
authors = ["Jane Doe <jane@example.com>"]
license = "MIT"

[tool.poetry.dependencies]
python = "^3.11"
requests = "2.31.0"
numpy = "^1.20.0"
flask = "*"

[tool.poetry.group.dev.dependencies]
pytest = "8.0.0"

[tool.black]
line-length = 100

[build-system]
requires = [
    "poetry-core",
]
build-backend = "poetry.core.masonry.api"
`

	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToPoetry(doc, "")
	if err != nil {
		t.Fatalf("ToPoetry failed: %v", err)
	}
	if got := encodeToString(t, out); got != want {
		t.Errorf("ToPoetry output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestToPip(t *testing.T) {
	input := `[tool.poetry]
name = "snek-api"
version = "0.4.2"
description = "Small service scaffold"
authors = ["Jane Doe <jane@example.com>"]
license = "MIT"
packages = [{include = "snek_api", from = "src"}]

[tool.poetry.dependencies]
python = "^3.11"
fastapi = "^0.110.0"
uvicorn = "~0.27"
requests = "*"

[tool.poetry.group.dev.dependencies]
pytest = "^8.0.0"

[tool.ruff]
line-length = 88

[build-system]
requires = ["poetry-core"]
build-backend = "poetry.core.masonry.api"
`
	want := `[project]
name = "snek-api"
version = "0.4.2"
description = "Small service scaffold"
authors = ["Jane Doe <jane@example.com>"]
license = "MIT"
dependencies = [
    "fastapi>=0.110.0,<1.0.0",
    "uvicorn>=0.27,<0.28.0",
    "requests",
]

[project.optional-dependencies]
dev = [
    "pytest>=8.0.0,<9.0.0",
]

[tool.setuptools.packages.find]
where = ["src"]

[tool.ruff]
line-length = 88

[build-system]
requires = [
    "setuptools",
    "wheel",
]
build-backend = "setuptools.build_meta"
`

	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToPip(doc)
	if err != nil {
		t.Fatalf("ToPip failed: %v", err)
	}
	if got := encodeToString(t, out); got != want {
		t.Errorf("ToPip output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestToPoetryPythonOverride(t *testing.T) {
	doc, err := Parse([]byte(`[project]
name = "demo"
version = "0.1.0"
dependencies = []
`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToPoetry(doc, "^3.12")
	if err != nil {
		t.Fatal(err)
	}
	got := encodeToString(t, out)
	if !strings.Contains(got, "python = \"^3.12\"") {
		t.Errorf("expected python override in output, got:\n%s", got)
	}
}

func TestToPoetryNoDevGroup(t *testing.T) {
	doc, err := Parse([]byte(`[project]
name = "demo"
version = "0.1.0"
dependencies = ["requests==2.31.0"]
`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToPoetry(doc, "")
	if err != nil {
		t.Fatal(err)
	}
	got := encodeToString(t, out)
	if strings.Contains(got, "group.dev") {
		t.Errorf("unexpected dev group in output:\n%s", got)
	}
}

func TestToPoetryPackagesBridge(t *testing.T) {
	doc, err := Parse([]byte(`[project]
name = "my-tool"
version = "0.1.0"
dependencies = []

[tool.setuptools.packages.find]
where = ["src"]
`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToPoetry(doc, "")
	if err != nil {
		t.Fatal(err)
	}
	got := encodeToString(t, out)
	want := `packages = [{include = "my_tool", from = "src"}]`
	if !strings.Contains(got, want) {
		t.Errorf("expected %q in output:\n%s", want, got)
	}
	if strings.Contains(got, "setuptools") {
		t.Errorf("setuptools config should not carry through:\n%s", got)
	}
}

func TestToPipTableSpecifiers(t *testing.T) {
	doc, err := Parse([]byte(`[tool.poetry]
name = "demo"
version = "0.1.0"

[tool.poetry.dependencies]
python = "^3.11"
pandas = {version = "^2.1", extras = ["performance"]}
local-helper = {path = "../helper"}
`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToPip(doc)
	if err != nil {
		t.Fatal(err)
	}
	got := encodeToString(t, out)
	if !strings.Contains(got, `"pandas>=2.1,<3.0.0",`) {
		t.Errorf("table specifier with version field should translate:\n%s", got)
	}
	if !strings.Contains(got, `"local-helper",`) {
		t.Errorf("table specifier without version field should be unconstrained:\n%s", got)
	}
}

func TestToPipDropsPython(t *testing.T) {
	doc, err := Parse([]byte(`[tool.poetry]
name = "demo"
version = "0.1.0"

[tool.poetry.dependencies]
python = "^3.11"
requests = "*"
`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToPip(doc)
	if err != nil {
		t.Fatal(err)
	}
	got := encodeToString(t, out)
	if strings.Contains(got, "python") {
		t.Errorf("python pseudo-dependency should be dropped:\n%s", got)
	}
	if !strings.Contains(got, `"requests",`) {
		t.Errorf("expected unconstrained requests entry:\n%s", got)
	}
}

func TestConvertMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  Dialect
	}{
		{
			name:    "pip without name",
			content: "[project]\nversion = \"0.1.0\"\n",
			target:  DialectPoetry,
		},
		{
			name:    "poetry without version",
			content: "[tool.poetry]\nname = \"demo\"\n",
			target:  DialectPip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.content))
			if err != nil {
				t.Fatal(err)
			}
			_, err = Convert(doc, tt.target, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeMissingField) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMissingField)
			}
		})
	}
}

func TestConvertUnknownTarget(t *testing.T) {
	doc, err := Parse([]byte("[project]\nname = \"demo\"\nversion = \"0.1.0\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Convert(doc, Dialect("conda"), "")
	if err == nil {
		t.Fatal("expected error for unknown target")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDialect) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDialect)
	}
}
