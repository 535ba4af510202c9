package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/callbacks"
	"github.com/effective-security/flownodes/pkg/llms"
	"github.com/effective-security/flownodes/pkg/workflow"
	"github.com/effective-security/flownodes/pkg/workflow/memhost"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func newChatCmd(c *cli) *cobra.Command {
	f := &nodeFlags{}
	var (
		system  string
		stream  bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "chat prompt...",
		Short: "Send a prompt to the language model supplied by the node",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := f.supply(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			model, ok := s.data.Response.(llms.Model)
			if !ok {
				return errors.Newf("node %s does not supply a language model", s.node.Type)
			}

			var messages []llms.Message
			if system != "" {
				messages = append(messages, llms.MessageFromTextParts(llms.RoleSystem, system))
			}
			messages = append(messages, llms.MessageFromTextParts(llms.RoleHuman, strings.Join(args, " ")))

			out := cmd.OutOrStdout()
			var opts []llms.CallOption
			if verbose {
				opts = append(opts, llms.WithCallbacks(callbacks.NewPrinter(cmd.ErrOrStderr(), callbacks.ModeVerbose)))
			}
			if c.debug {
				opts = append(opts, llms.WithCallbacks(callbacks.NewPackageLogger(logger)))
			}
			if stream {
				opts = append(opts, llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
					_, err := out.Write(chunk)
					return err
				}))
			}

			resp, err := model.GenerateContent(ctx, messages, opts...)
			if err != nil {
				return err
			}
			if stream {
				fmt.Fprintln(out)
			} else {
				fmt.Fprintln(out, resp.Text())
			}

			printUsage(out, s.host)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	cmd.Flags().BoolVar(&stream, "stream", false, "stream the reply")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the model calls to stderr")
	return cmd
}

// printUsage prints the token usage traced by the last model call
func printUsage(w io.Writer, host *memhost.Host) {
	runs := host.Runs()
	for i := len(runs) - 1; i >= 0; i-- {
		run := runs[i]
		if run.Connection != workflow.ConnectionAILanguageModel || len(run.Output) == 0 || len(run.Output[0]) == 0 {
			continue
		}
		for _, key := range []string{"tokenUsage", "tokenUsageEstimate"} {
			usage, ok := run.Output[0][0][key].(map[string]any)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s: prompt %d, completion %d, total %d\n",
				key,
				cast.ToInt64(usage["promptTokens"]),
				cast.ToInt64(usage["completionTokens"]),
				cast.ToInt64(usage["totalTokens"]),
			)
			return
		}
	}
}
