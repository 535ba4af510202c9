package main

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/flownodes/encoding"
	"github.com/effective-security/flownodes/nodes"
	"github.com/effective-security/flownodes/pkg/llms/bedrock"
	"github.com/effective-security/flownodes/pkg/workflow"
	"github.com/effective-security/flownodes/pkg/workflow/memhost"
	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"
)

// nodeFlags select the node instance and the item to supply for
type nodeFlags struct {
	params string
	data   string
	item   int
	set    []string
}

func (f *nodeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.params, "params", "p", "", "node parameters file")
	cmd.Flags().StringVar(&f.data, "data", "", "input items file, json, yaml or toml with an items list")
	cmd.Flags().IntVarP(&f.item, "item", "i", 0, "index of the input item")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "override a parameter, e.g. options.temperature=0.2")
	_ = cmd.MarkFlagRequired("params")
}

// supplied is the result of SupplyData on the in-memory host
type supplied struct {
	host *memhost.Host
	node *workflow.Node
	data *workflow.SupplyData
}

func (s *supplied) Close() error {
	if s.data != nil && s.data.Close != nil {
		return s.data.Close()
	}
	return nil
}

func (f *nodeFlags) supply(ctx context.Context) (*supplied, error) {
	cfg, err := memhost.LoadConfig(f.params)
	if err != nil {
		return nil, err
	}
	if f.data != "" {
		var data struct {
			Items []map[string]any `json:"items"`
		}
		if err = encoding.DecodeFile(f.data, &data); err != nil {
			return nil, err
		}
		cfg.Items = data.Items
	}
	for _, kv := range f.set {
		path, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, errors.Newf("invalid --set value %q, expected path=value", kv)
		}
		if err = cfg.Set(strings.TrimSpace(path), value); err != nil {
			return nil, err
		}
	}

	reg, err := nodes.NewRegistry()
	if err != nil {
		return nil, err
	}
	host, nt, err := memhost.Load(reg, cfg)
	if err != nil {
		return nil, err
	}

	res, err := nt.SupplyData(ctx, host, f.item)
	if err != nil {
		return nil, err
	}
	node := host.GetNode()
	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "supplied",
		"node", node.Name,
		"type", node.Type,
		"item", f.item,
	)
	return &supplied{host: host, node: node, data: res}, nil
}

// supplyResult is printed by the supply command
type supplyResult struct {
	Node  *workflow.Node  `json:"node"`
	Model *bedrock.Config `json:"model,omitempty"`
}

func newSupplyCmd(c *cli) *cobra.Command {
	f := &nodeFlags{}
	cmd := &cobra.Command{
		Use:   "supply",
		Short: "Resolve the node parameters and print the supplied model configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := f.supply(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			res := supplyResult{Node: s.node}
			if m, ok := s.data.Response.(interface{ Options() bedrock.Config }); ok {
				cfg := m.Options()
				res.Model = &cfg
			}
			return c.print(cmd, res)
		},
	}
	f.register(cmd)
	return cmd
}
