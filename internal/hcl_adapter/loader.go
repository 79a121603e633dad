package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/fogtopo/internal/config"
	"github.com/specialistvlad/fogtopo/internal/ctxlog"
	"github.com/specialistvlad/fogtopo/internal/fogerr"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL topology loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads a topology description. A directory is loaded as the union of
// every .hcl file below it, in lexical order.
func (l *Loader) Load(ctx context.Context, path string) (*config.Topology, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := l.findAllHCLFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fogerr.Configf(path, fogerr.InvalidDescription, "no .hcl files found")
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Topology{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fogerr.WrapConfig(file, fogerr.InvalidDescription, diags)
		}
		if err := l.decodeInto(ctx, model, hclFile.Body); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "nodes", len(model.Nodes), "sensors", len(model.Sensors), "actuators", len(model.Actuators))
	return model, nil
}

// Parse decodes a single in-memory HCL document.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*config.Topology, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fogerr.WrapConfig(filename, fogerr.InvalidDescription, diags)
	}
	model := &config.Topology{}
	if err := l.decodeInto(ctx, model, hclFile.Body); err != nil {
		return nil, err
	}
	return model, nil
}

// findAllHCLFiles returns path itself, or every .hcl file below it when it
// is a directory.
func (l *Loader) findAllHCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".hcl" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
