// Command wellplot renders well-log snapshots to PNG.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/gogpu/welllog"
	"github.com/gogpu/welllog/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by all subcommands.
type app struct {
	configFile string
	v          *viper.Viper
	cfg        config.Config
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(),
		fang.WithVersion(welllog.Version),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "wellplot",
		Short: "Render well-log plots",
		Long: `wellplot draws depth-synchronized well-log plots: a depth scale,
curve tracks and formation markers, from YAML snapshots or a SQL store.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default ./wellplot.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("db", "", "Well store DSN (sqlite path or postgres URL)")

	rootCmd.AddCommand(renderCmd(a), ticksCmd(a), importCmd(a))
	return rootCmd
}

// setup resolves configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Load(a.v, a.configFile); err != nil {
		return err
	}
	if err := config.BindFlags(a.v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Resolve(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	welllog.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"debug":          "debug",
	"db":             "db",
	"render.dpr":     "dpr",
	"render.height":  "height",
	"render.out":     "out",
	"render.order":   "order",
	"watch.debounce": "debounce",
}
