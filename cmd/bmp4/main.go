// Command bmp4 builds, inspects and displays 16-level grayscale 4bpp BMP files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/flavioheleno/bmp4/internal/logging"
)

const version = "0.1.0"

// app holds what every subcommand shares.
type app struct {
	logLevel string
	log      hclog.Logger
	stderr   io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bmp4",
		Short:         "Build and inspect 4bpp grayscale BMP files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.stderr = cmd.ErrOrStderr()
			a.log = logging.NewLogger("bmp4", a.logLevel, a.stderr)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); defaults to $"+logging.EnvLevel)

	root.AddCommand(
		newEncodeCmd(a),
		newPatternCmd(a),
		newInspectCmd(a),
		newMirrorCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
