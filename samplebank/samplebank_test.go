package samplebank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

const xmlIndex = `<SampleBank Name="SampleBank_0">
    <Sample Name="Kick" Path="$(SFC_TEST_BUILD)/kick.aifc"/>
    <Pointer Index="1"/>
    <Blob Name="Blob_0" Path="/abs/blob.bin"/>
</SampleBank>
`

const yamlIndex = `name: SampleBank_1
samples:
  - name: Kick
    path: $(SFC_TEST_BUILD)/kick.aifc
  - name: Snare
    path: snare.wav
`

func TestLoadXml(t *testing.T) {
	t.Setenv("SFC_TEST_BUILD", "build")

	var dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bank.xml"), []byte(xmlIndex), 0644); err != nil {
		t.Fatal(err)
	}

	bank, err := Load(dir, "bank.xml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if bank.Name != "SampleBank_0" {
		t.Errorf("Name = %v, want %v", bank.Name, "SampleBank_0")
	}

	if path, ok := bank.PathForName("Kick"); !ok || path != filepath.Join(dir, "build", "kick.aifc") {
		t.Errorf("PathForName(Kick) = %v, %v", path, ok)
	}

	if path, ok := bank.PathForName("Blob_0"); !ok || path != "/abs/blob.bin" {
		t.Errorf("PathForName(Blob_0) = %v, %v", path, ok)
	}

	if _, ok := bank.PathForName("Missing"); ok {
		t.Error("PathForName(Missing) found a missing sample")
	}

	if names := bank.Names(); len(names) != 2 || names[0] != "Kick" || names[1] != "Blob_0" {
		t.Errorf("Names() = %v", names)
	}
}

func TestLoadYaml(t *testing.T) {
	t.Setenv("SFC_TEST_BUILD", "out")

	var dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bank.yaml"), []byte(yamlIndex), 0644); err != nil {
		t.Fatal(err)
	}

	bank, err := Load(dir, "bank.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if bank.Name != "SampleBank_1" {
		t.Errorf("Name = %v, want %v", bank.Name, "SampleBank_1")
	}

	if path, _ := bank.PathForName("Snare"); path != filepath.Join(dir, "snare.wav") {
		t.Errorf("PathForName(Snare) = %v, want %v", path, filepath.Join(dir, "snare.wav"))
	}
}

func TestLoadErrors(t *testing.T) {
	var dir = t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad root", "a.xml", `<Bank/>`},
		{"duplicate", "b.xml", `<SampleBank Name="x"><Sample Name="a" Path="p"/><Sample Name="a" Path="q"/></SampleBank>`},
		{"no path", "c.xml", `<SampleBank Name="x"><Sample Name="a"/></SampleBank>`},
		{"unknown element", "d.xml", `<SampleBank Name="x"><Sound Name="a" Path="p"/></SampleBank>`},
		{"unknown yaml field", "e.yaml", "name: x\nsounds: []\n"},
		{"unset variable", "f.xml", `<SampleBank Name="x"><Sample Name="a" Path="$(SFC_TEST_UNSET_VAR)/a"/></SampleBank>`},
	}

	os.Unsetenv("SFC_TEST_UNSET_VAR")

	for _, tt := range tests {
		if err := os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(dir, tt.file); err == nil {
			t.Errorf("Load(%v) expected error", tt.name)
		}
	}

	if _, err := Load(dir, "missing.xml"); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("SFC_TEST_A", "alpha")

	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"plain/path", "plain/path"},
		{"$(SFC_TEST_A)/x", "alpha/x"},
		{"$(SFC_TEST_A)$(SFC_TEST_A)", "alphaalpha"},
		{"~/banks", filepath.Join(home, "banks")},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.input)
		if err != nil {
			t.Errorf("ExpandPath(%v) error = %v", tt.input, err)
		} else if got != tt.want {
			t.Errorf("ExpandPath(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
