package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pthm/hxcontent/internal/config"
)

const version = "0.1.0"

// app carries what every subcommand needs once flags and config are loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "hxcontent",
		Short: "Clone and normalize HTML templates",
		Long: `hxcontent normalizes HTML fragments for use as templates and expands
a container element into repeated clones with per-clone context.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml)")
	flags.Bool("debug", false, "enable debug logging on stderr")
	flags.String("key", "", "key used to sign or encrypt context snapshots")
	flags.Bool("sensitive", false, "encrypt context snapshots instead of signing them")
	flags.String("clone-attr", "", "attribute stamped on normalized elements")
	flags.String("id-prefix", "", "prefix of stamped clone ids")
	flags.String("context-attr", "", "attribute holding sealed clone contexts")

	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("key", flags.Lookup("key"))
	_ = a.v.BindPFlag("sensitive", flags.Lookup("sensitive"))
	_ = a.v.BindPFlag("clone_attr", flags.Lookup("clone-attr"))
	_ = a.v.BindPFlag("id_prefix", flags.Lookup("id-prefix"))
	_ = a.v.BindPFlag("context_attr", flags.Lookup("context-attr"))

	root.AddCommand(newNormalizeCmd(a), newExpandCmd(a), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hxcontent version %s\n", version)
			return err
		},
	}
}

// load resolves configuration (defaults < config file < env < flags) and
// builds the logger.
func (a *app) load() error {
	defaults := config.Defaults()
	a.v.SetDefault("clone_attr", defaults.CloneAttr)
	a.v.SetDefault("id_prefix", defaults.IDPrefix)
	a.v.SetDefault("context_attr", defaults.ContextAttr)

	a.v.SetEnvPrefix("HXCONTENT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	// Empty flag values must not shadow defaults.
	cfg := defaults
	if err := a.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if cfg.CloneAttr == "" {
		cfg.CloneAttr = defaults.CloneAttr
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = defaults.IDPrefix
	}
	if cfg.ContextAttr == "" {
		cfg.ContextAttr = defaults.ContextAttr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = logger
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return zcfg.Build()
}

// openInput returns the named file, or stdin when no file is given.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}
