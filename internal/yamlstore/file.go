package yamlstore

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/sysmlgo/internal/ctxlog"
	"github.com/specialistvlad/sysmlgo/internal/sysml"
)

// SaveFile serializes m and writes it to path.
func SaveFile(ctx context.Context, path string, m *sysml.Model) error {
	logger := ctxlog.FromContext(ctx).With("path", path)

	data, err := Serialize(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	logger.Debug("Model saved.", "model", m.Name(), "bytes", len(data))
	return nil
}

// LoadFile reads and deserializes the model stored at path. The context's
// logger becomes the model's logger.
func LoadFile(ctx context.Context, path string) (*sysml.Model, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	m, err := Deserialize(data, sysml.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Debug("Model loaded.", "path", path, "model", m.Name(), "elements", m.Elements().Len())
	return m, nil
}
