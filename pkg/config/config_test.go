package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/depviz/depviz/pkg/errors"
)

const validConfig = `
[package]
name = "A"
version = "1.0.0"
output_file = "graph.svg"

[repository]
url = "testdata/repo.txt"
test_mode = true
`

func TestParseValid(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Package.Name != "A" {
		t.Errorf("Name = %q", cfg.Package.Name)
	}
	if cfg.Package.Version != "1.0.0" {
		t.Errorf("Version = %q", cfg.Package.Version)
	}
	if cfg.Package.OutputFile != "graph.svg" {
		t.Errorf("OutputFile = %q", cfg.Package.OutputFile)
	}
	if !cfg.TestMode() {
		t.Error("TestMode() = false, want true")
	}
	if cfg.Repository.ReverseDeps.Bool() {
		t.Error("ReverseDeps should default to false")
	}
	if cfg.Repository.Visualization.Bool() {
		t.Error("Visualization should default to false")
	}
}

func TestParseBooleanTokens(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{`"true"`, true},
		{`"false"`, false},
		{`"1"`, true},
		{`"0"`, false},
		{`"yes"`, true},
		{`"no"`, false},
		{`"YES"`, true},
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
	}
	for _, tc := range cases {
		doc := strings.Replace(validConfig, "test_mode = true", "test_mode = "+tc.token, 1)
		cfg, err := Parse([]byte(doc))
		if err != nil {
			t.Errorf("Parse with test_mode = %s: %v", tc.token, err)
			continue
		}
		if cfg.TestMode() != tc.want {
			t.Errorf("test_mode = %s: TestMode() = %v, want %v", tc.token, cfg.TestMode(), tc.want)
		}
	}
}

func TestParseInvalidBooleanToken(t *testing.T) {
	doc := strings.Replace(validConfig, "test_mode = true", `test_mode = "maybe"`, 1)
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("Parse should reject invalid boolean token")
	}
	if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("error code = %q, want CONFIG_INVALID", errors.GetCode(err))
	}
}

func TestParseMissingSection(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"no package", "[repository]\nurl = \"x\"\ntest_mode = true\n"},
		{"no repository", "[package]\nname = \"A\"\nversion = \"1\"\noutput_file = \"o\"\n"},
	}
	for _, tc := range cases {
		_, err := Parse([]byte(tc.doc))
		if err == nil {
			t.Errorf("%s: Parse should fail", tc.name)
			continue
		}
		if !errors.Is(err, errors.ErrCodeConfigInvalid) {
			t.Errorf("%s: error code = %q", tc.name, errors.GetCode(err))
		}
	}
}

func TestParseMissingField(t *testing.T) {
	for _, line := range []string{
		`name = "A"`,
		`version = "1.0.0"`,
		`output_file = "graph.svg"`,
		`url = "testdata/repo.txt"`,
		`test_mode = true`,
	} {
		doc := strings.Replace(validConfig, line, "", 1)
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse should fail without %q", line)
		}
	}
}

func TestParseEmptyRequiredValue(t *testing.T) {
	doc := strings.Replace(validConfig, `name = "A"`, `name = "  "`, 1)
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("Parse should reject blank required value")
	}
}

func TestParseTrimsValues(t *testing.T) {
	doc := strings.Replace(validConfig, `name = "A"`, `name = " A "`, 1)
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Package.Name != "A" {
		t.Errorf("Name = %q, want trimmed %q", cfg.Package.Name, "A")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load should fail for missing file")
	}
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Errorf("error code = %q, want CONFIG_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(validConfig), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Package.Name != "A" || !cfg.TestMode() {
		t.Errorf("Load returned unexpected config: %+v", cfg)
	}
}
