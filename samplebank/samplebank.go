// Package samplebank resolves sample names to waveform files using a sample
// bank index.
//
// An index is either XML:
//
//	<SampleBank Name="SampleBank_0">
//	    <Sample Name="Kick" Path="$(BUILD_DIR)/samples/kick.aifc"/>
//	    <Blob Name="Blob_0" Path="blob.bin"/>
//	    <Pointer Index="1"/>
//	</SampleBank>
//
// or YAML with the same content:
//
//	name: SampleBank_0
//	samples:
//	  - name: Kick
//	    path: $(BUILD_DIR)/samples/kick.aifc
package samplebank

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Thar0/mm/xmltree"
	"github.com/mitchellh/go-homedir"
	"github.com/ossrs/go-oryx-lib/errors"
	"gopkg.in/yaml.v2"
)

type Entry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type Bank struct {
	Name  string
	Path  string
	paths map[string]string
	order []string
}

type yamlBank struct {
	Name    string  `yaml:"name"`
	Samples []Entry `yaml:"samples"`
	Blobs   []Entry `yaml:"blobs"`
}

var varPattern = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_]*)\)`)

// ExpandPath substitutes $(VAR) references from the environment and a leading
// ~ with the home directory. Referencing an unset variable is an error.
func ExpandPath(path string) (string, error) {
	var missing []string

	var expanded = varPattern.ReplaceAllStringFunc(path, func(ref string) string {
		var name = varPattern.FindStringSubmatch(ref)[1]

		value, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}

		return value
	})

	if len(missing) != 0 {
		return "", errors.Errorf("unset variable %v in path %v", strings.Join(missing, ", "), path)
	}

	expanded, err := homedir.Expand(expanded)
	if err != nil {
		return "", errors.Wrapf(err, "expand %v", path)
	}

	return expanded, nil
}

// Resolve expands path and joins it to root when it is relative.
func Resolve(root string, path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	if root != "" && !filepath.IsAbs(expanded) {
		expanded = filepath.Join(root, expanded)
	}

	return expanded, nil
}

// Load reads the index at path. Relative paths, both of the index and of the
// entries it lists, are resolved against root.
func Load(root string, path string) (*Bank, error) {
	resolved, err := Resolve(root, path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, errors.Wrapf(err, "read sample bank %v", resolved)
	}

	var bank *Bank

	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		bank, err = parseYaml(data)
	default:
		bank, err = parseXml(data)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "parse sample bank %v", resolved)
	}

	bank.Path = resolved

	for name, entryPath := range bank.paths {
		if bank.paths[name], err = Resolve(root, entryPath); err != nil {
			return nil, errors.Wrapf(err, "sample %v", name)
		}
	}

	return bank, nil
}

func newBank(name string) *Bank {
	return &Bank{Name: name, paths: make(map[string]string)}
}

func (bank *Bank) add(entry Entry) error {
	if entry.Name == "" || entry.Path == "" {
		return errors.Errorf("entry %v needs a name and a path", entry)
	}

	if _, ok := bank.paths[entry.Name]; ok {
		return errors.Errorf("duplicate sample %v", entry.Name)
	}

	bank.paths[entry.Name] = entry.Path
	bank.order = append(bank.order, entry.Name)
	return nil
}

func parseXml(data []byte) (*Bank, error) {
	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	if root.Name != "SampleBank" {
		return nil, errors.Errorf("root element must be SampleBank, got %v", root.Name)
	}

	name, _ := root.Attr("Name")
	var bank = newBank(name)

	for _, child := range root.Children {
		switch child.Name {
		case "Sample", "Blob":
			var entry Entry
			entry.Name, _ = child.Attr("Name")
			entry.Path, _ = child.Attr("Path")

			if err := bank.add(entry); err != nil {
				return nil, errors.Wrapf(err, "line %v", child.Line)
			}
		case "Pointer":
			// pointer entries alias another bank and carry no file
		default:
			return nil, errors.Errorf("unexpected element %v in sample bank (line %v)", child.Name, child.Line)
		}
	}

	return bank, nil
}

func parseYaml(data []byte) (*Bank, error) {
	var index yamlBank

	if err := yaml.UnmarshalStrict(data, &index); err != nil {
		return nil, errors.Wrapf(err, "yaml")
	}

	var bank = newBank(index.Name)

	for _, entry := range append(index.Samples, index.Blobs...) {
		if err := bank.add(entry); err != nil {
			return nil, err
		}
	}

	return bank, nil
}

// PathForName returns the file of the named sample.
func (bank *Bank) PathForName(name string) (string, bool) {
	path, ok := bank.paths[name]
	return path, ok
}

// Names lists the entries in index order.
func (bank *Bank) Names() []string {
	return bank.order
}
