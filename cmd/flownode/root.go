package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/encoding"
	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/flownodes/cmd", "flownode")

// cli holds the global flags
type cli struct {
	format string
	debug  bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:           "flownode",
		Short:         "Run workflow sub-nodes outside of the workflow engine",
		Long:          "Describe the registered node types, resolve node parameters and chat with the supplied language models.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if c.debug {
				xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
				xlog.SetGlobalLogLevel(xlog.DEBUG)
			}
			_, err := encoding.New(c.format)
			return err
		},
	}
	rootCmd.PersistentFlags().StringVarP(&c.format, "format", "f", encoding.ModeYAML, "output format: json, yaml or toml")
	rootCmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "enable debug logs")

	rootCmd.AddCommand(newDescribeCmd(c))
	rootCmd.AddCommand(newSupplyCmd(c))
	rootCmd.AddCommand(newChatCmd(c))
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// print writes the value in the output format
func (c *cli) print(cmd *cobra.Command, v any) error {
	enc, err := encoding.New(c.format)
	if err != nil {
		return err
	}
	bs, err := enc.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", c.format)
	}
	out := cmd.OutOrStdout()
	if _, err = out.Write(bs); err != nil {
		return errors.WithStack(err)
	}
	if len(bs) > 0 && bs[len(bs)-1] != '\n' {
		_, err = out.Write([]byte{'\n'})
	}
	return errors.WithStack(err)
}
