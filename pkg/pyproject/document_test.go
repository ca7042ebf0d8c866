package pyproject

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pyprojconv/pyprojconv/pkg/errors"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	content := `[project]
name = "demo"
version = "0.1.0"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.table("project") == nil {
		t.Error("expected [project] table")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestParseInvalidTOML(t *testing.T) {
	_, err := Parse([]byte(`[project
name = broken`))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidTOML) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTOML)
	}
}

func TestKeysUnderPreservesOrder(t *testing.T) {
	doc, err := Parse([]byte(`[tool.poetry.dependencies]
zebra = "^1.0"
alpha = "~2.1"
middle = "*"
`))
	if err != nil {
		t.Fatal(err)
	}

	got := doc.keysUnder("tool", "poetry", "dependencies")
	want := []string{"zebra", "alpha", "middle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keysUnder = %v, want %v", got, want)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Dialect
		wantErr bool
	}{
		{
			name:    "pip",
			content: "[project]\nname = \"demo\"\n",
			want:    DialectPip,
		},
		{
			name:    "poetry",
			content: "[tool.poetry]\nname = \"demo\"\n",
			want:    DialectPoetry,
		},
		{
			name:    "poetry wins over project",
			content: "[project]\nname = \"demo\"\n\n[tool.poetry]\nname = \"demo\"\n",
			want:    DialectPoetry,
		},
		{
			name:    "neither",
			content: "[tool.black]\nline-length = 100\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.content))
			if err != nil {
				t.Fatal(err)
			}
			got, err := doc.Detect()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Detect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidDialect) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDialect)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}
