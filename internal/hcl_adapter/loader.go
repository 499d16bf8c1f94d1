package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/sysmlgo/internal/ctxlog"
	"github.com/specialistvlad/sysmlgo/internal/fsutil"
	"github.com/specialistvlad/sysmlgo/internal/sysml"
)

// Loader builds a sysml.Model from HCL model definitions.
type Loader struct{}

// NewLoader creates a new HCL model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges their model
// blocks into one Model. All model blocks must carry the same name.
// References and relationship endpoints are resolved once every file has
// been read, so they may point at elements declared in any file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*sysml.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var defs []*ModelDefinition
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		defs = append(defs, root.Models...)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no model block found in %d file(s)", len(files))
	}
	name := defs[0].Name
	for _, def := range defs[1:] {
		if def.Name != name {
			return nil, fmt.Errorf("%w: files declare different models %q and %q", sysml.ErrInvalidArgumentType, name, def.Name)
		}
	}

	b := &builder{
		ctx:   ctx,
		model: sysml.NewModel(name, sysml.WithLogger(logger)),
	}
	for _, def := range defs {
		if err := b.contents(&b.model.Package, (*PackageDefinition)(def)); err != nil {
			return nil, fmt.Errorf("model %q: %w", name, err)
		}
	}
	if err := b.resolve(); err != nil {
		return nil, fmt.Errorf("model %q: %w", name, err)
	}

	logger.Debug("HCL loading complete.", "model", name, "model_blocks", len(defs), "references", len(b.references), "relationships", len(b.relationships))
	return b.model, nil
}
