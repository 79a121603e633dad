package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/fogtopo/internal/config"
	"github.com/specialistvlad/fogtopo/internal/hcl_adapter"
	"github.com/specialistvlad/fogtopo/internal/yaml_adapter"
)

// loaderFor picks a description loader from the path's extension. A
// directory is read as HCL.
func loaderFor(path string) (config.Loader, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return hcl_adapter.NewLoader(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl_adapter.NewLoader(), nil
	case ".yaml", ".yml":
		return yaml_adapter.NewLoader(), nil
	}
	return nil, fmt.Errorf("unsupported topology format %q: expected .hcl, .yaml or .yml", path)
}

// writerFor picks a description writer from the path's extension.
func writerFor(path string) (config.Writer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl_adapter.NewWriter(), nil
	case ".yaml", ".yml":
		return yaml_adapter.NewWriter(), nil
	}
	return nil, fmt.Errorf("unsupported export format %q: expected .hcl, .yaml or .yml", path)
}
