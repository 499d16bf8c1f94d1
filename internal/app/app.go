package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/sysmlgo/internal/ctxlog"
	"github.com/specialistvlad/sysmlgo/internal/hcl_adapter"
	"github.com/specialistvlad/sysmlgo/internal/nodeid"
	"github.com/specialistvlad/sysmlgo/internal/sysml"
	"github.com/specialistvlad/sysmlgo/internal/yamlstore"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader *hcl_adapter.Loader
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: hcl_adapter.NewLoader(),
	}
}

// Load reads the configured model. Paths ending in .yaml or .yml are read as
// documents; anything else goes through the HCL loader.
func (a *App) Load(ctx context.Context) (*sysml.Model, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	path := a.config.ModelPath

	var (
		m   *sysml.Model
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = yamlstore.LoadFile(ctx, path)
	default:
		m, err = a.loader.Load(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	a.logger.Info("Model loaded.", "model", m.Name(), "path", path)
	return m, nil
}

// Validate loads the model and reports every requirement that lacks a
// satisfy or verify relationship.
func (a *App) Validate(ctx context.Context) (sysml.Report, error) {
	m, err := a.Load(ctx)
	if err != nil {
		return sysml.Report{}, err
	}

	report := m.IsValid()
	if report.Valid {
		fmt.Fprintf(a.outW, "Model %q is valid.\n", m.Name())
		return report, nil
	}
	fmt.Fprintf(a.outW, "Model %q has %d unmet requirement(s):\n", m.Name(), len(report.Unmet))
	for _, u := range report.Unmet {
		fmt.Fprintf(a.outW, "  %s\n", u.String())
	}
	return report, nil
}

// Export loads the model and writes it as YAML to the configured output path,
// or to the output writer when none is set.
func (a *App) Export(ctx context.Context) error {
	m, err := a.Load(ctx)
	if err != nil {
		return err
	}

	if a.config.OutputPath != "" {
		return yamlstore.SaveFile(ctxlog.WithLogger(ctx, a.logger), a.config.OutputPath, m)
	}
	data, err := yamlstore.Serialize(m)
	if err != nil {
		return err
	}
	_, err = a.outW.Write(data)
	return err
}

// Trace loads the model and prints its requirements traceability matrix.
func (a *App) Trace(ctx context.Context) error {
	m, err := a.Load(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REQUIREMENT\tID\tSATISFIED BY\tVERIFIED BY\tREFINED BY\tDERIVED FROM")
	for _, row := range m.TraceabilityMatrix() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Address.String(),
			row.Requirement.Identifier(),
			names(row.SatisfiedBy),
			names(row.VerifiedBy),
			names(row.RefinedBy),
			names(row.DerivedFrom),
		)
	}
	return tw.Flush()
}

// Tree loads the model and prints its containment hierarchy.
func (a *App) Tree(ctx context.Context) error {
	m, err := a.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "%s %s\n", sysml.Stereotype(m), m.Name())
	return m.Walk(func(addr nodeid.Address, e sysml.Element) error {
		indent := strings.Repeat("  ", len(addr.Path))
		line := fmt.Sprintf("%s%s %s", indent, sysml.Stereotype(e), e.Name())
		switch v := e.(type) {
		case *sysml.Block:
			if v.Multiplicity() != 1 {
				line += fmt.Sprintf(" [%d]", v.Multiplicity())
			}
		case *sysml.ValueType:
			line += " = " + v.Quantity().String()
		case *sysml.Dependency:
			line += fmt.Sprintf(" (%s -> %s)", v.Client().Name(), v.Supplier().Name())
		}
		_, err := fmt.Fprintln(a.outW, line)
		return err
	})
}

func names(elements []sysml.Element) string {
	if len(elements) == 0 {
		return "-"
	}
	out := make([]string, len(elements))
	for i, e := range elements {
		out[i] = e.Name()
	}
	return strings.Join(out, ", ")
}
