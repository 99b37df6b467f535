// Package loader reads parsed feature documents from disk. Documents
// are structured YAML or JSON renditions of a feature (JSON being a
// YAML subset, one decoder covers both); this tool never parses
// Gherkin text itself.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/featlint/featlint/internal/gherkin"
)

// supported lists the document extensions picked up when walking a
// directory. Explicit file arguments bypass the filter.
var supported = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// Load resolves each path to one or more feature documents. Directory
// paths are walked recursively for supported extensions; files are
// read as given. The result is ordered by file path so repeated runs
// see the same corpus order.
func Load(paths ...string) ([]gherkin.Feature, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supported[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}
	sort.Strings(files)

	var features []gherkin.Feature
	for _, file := range files {
		loaded, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		features = append(features, loaded...)
	}
	return features, nil
}

// LoadFile reads every document in one file.
func LoadFile(path string) ([]gherkin.Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	defer f.Close()

	features, err := Read(f, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return features, nil
}

// Read decodes a stream of YAML documents into features. A document
// may hold either a single feature or a list of them. Features that
// do not name their own source file inherit filename.
func Read(r io.Reader, filename string) ([]gherkin.Feature, error) {
	dec := yaml.NewDecoder(r)

	var features []gherkin.Feature
	for docIndex := 0; ; docIndex++ {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("document %d: %w", docIndex+1, err)
		}

		decoded, err := decodeDocument(&node)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", docIndex+1, err)
		}
		features = append(features, decoded...)
	}

	for i := range features {
		if features[i].Filename == "" {
			features[i].Filename = filename
		}
	}
	return features, nil
}

func decodeDocument(node *yaml.Node) ([]gherkin.Feature, error) {
	// The document node wraps the actual content node.
	content := node
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		content = node.Content[0]
	}

	if content.Kind == yaml.SequenceNode {
		var list []gherkin.Feature
		if err := content.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var single gherkin.Feature
	if err := content.Decode(&single); err != nil {
		return nil, err
	}
	if single.Name == "" && len(single.Scenarios) == 0 && len(single.Tags) == 0 {
		return nil, nil
	}
	return []gherkin.Feature{single}, nil
}
