package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/sysmlgo/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// envPrefix scopes environment overrides, e.g. SYSML_LOG_LEVEL.
const envPrefix = "SYSML"

// Execute runs the command line with args. Command output goes to outW;
// usage text, errors and logs go to errW.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the `sysml` command tree. Every call returns an
// independent tree with its own viper instance.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "sysml",
		Short:         "Build, check and export SysML structural models",
		Long:          "sysml loads a model from .hcl definitions or a .yaml document and validates,\nexports, traces or prints it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile)
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log_format", flags.Lookup("log-format"))

	newApp := func(path string) (*app.App, error) {
		cfg, err := app.NewConfig(app.Config{
			ModelPath:  path,
			OutputPath: v.GetString("output"),
			LogLevel:   strings.ToLower(v.GetString("log_level")),
			LogFormat:  strings.ToLower(v.GetString("log_format")),
		})
		if err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		return app.NewApp(outW, errW, cfg), nil
	}

	validate := &cobra.Command{
		Use:   "validate PATH",
		Short: "Check that every requirement is satisfied and verified",
		Args:  exactlyOnePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(args[0])
			if err != nil {
				return err
			}
			report, err := a.Validate(cmd.Context())
			if err != nil {
				return err
			}
			if !report.Valid {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d requirement(s) unmet", len(report.Unmet))}
			}
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export PATH",
		Short: "Write the model as a YAML document",
		Args:  exactlyOnePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(args[0])
			if err != nil {
				return err
			}
			return a.Export(cmd.Context())
		},
	}
	export.Flags().StringP("output", "o", "", "destination file (default: stdout)")
	_ = v.BindPFlag("output", export.Flags().Lookup("output"))

	trace := &cobra.Command{
		Use:   "trace PATH",
		Short: "Print the requirements traceability matrix",
		Args:  exactlyOnePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(args[0])
			if err != nil {
				return err
			}
			return a.Trace(cmd.Context())
		},
	}

	tree := &cobra.Command{
		Use:   "tree PATH",
		Short: "Print the containment tree",
		Args:  exactlyOnePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(args[0])
			if err != nil {
				return err
			}
			return a.Tree(cmd.Context())
		},
	}

	root.AddCommand(validate, export, trace, tree)
	return root
}

// initConfig layers the config file and SYSML_* environment variables under
// the flags already bound to v.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return &ExitError{Code: 2, Message: fmt.Sprintf("config file %s not found", cfgFile)}
		}
		return &ExitError{Code: 2, Message: fmt.Sprintf("reading config file: %v", err)}
	}
	return nil
}

func exactlyOnePath(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &ExitError{Code: 2, Message: fmt.Sprintf("%s expects exactly one PATH argument, got %d", cmd.Name(), len(args))}
	}
	return nil
}
