// Package templates provides the embedded HTML page templates with user override support.
// Templates are loaded with resolution order:
// 1. User override: templatesDir/{name}.html
// 2. Embedded default: internal/templates/{name}.html
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.html
var fs embed.FS

// Load parses every embedded page, then replaces any page that has an
// override of the same file name in templatesDir.
func Load(templatesDir string, funcs template.FuncMap) (*template.Template, error) {
	root := template.New("pages").Funcs(funcs)

	names, err := ListEmbeddedTemplates()
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		data, err := readTemplate(name, templatesDir)
		if err != nil {
			return nil, err
		}
		if _, err := root.New(name + ".html").Parse(string(data)); err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
		}
	}

	return root, nil
}

func readTemplate(name, templatesDir string) ([]byte, error) {
	if templatesDir != "" {
		userPath := filepath.Join(templatesDir, name+".html")
		if data, err := os.ReadFile(userPath); err == nil {
			return data, nil
		}
	}

	data, err := fs.ReadFile(name + ".html")
	if err != nil {
		return nil, fmt.Errorf("template '%s' not found (checked user override and embedded)", name)
	}
	return data, nil
}

// ListEmbeddedTemplates returns names of all embedded templates, sorted
func ListEmbeddedTemplates() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), ".html"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
