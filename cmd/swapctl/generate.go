package main

import (
	"fmt"
	"io"
	"os"

	"github.com/arnavshah/troop-swap-api-go/pkg/config"
	"github.com/arnavshah/troop-swap-api-go/pkg/generator"
	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/arnavshah/troop-swap-api-go/pkg/sheet"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type generateOptions struct {
	rosterPath string
	ladderPath string
	outPath    string
	seed       int64
	summary    bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate swap orders from a roster CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.rosterPath, "roster", "r", "", "roster CSV (Username,Status,Marches_Available,Inf_Cav)")
	cmd.Flags().StringVarP(&opts.ladderPath, "ladder", "l", "", "YAML ladder overriding the default passes")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write orders CSV here instead of stdout")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "pin the shuffle (0 uses the clock)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a run summary to stderr")
	_ = cmd.MarkFlagRequired("roster")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	cfg := generator.DefaultConfig()
	if opts.ladderPath != "" {
		var err error
		if cfg, err = config.LoadLadder(opts.ladderPath); err != nil {
			return err
		}
	}

	f, err := os.Open(opts.rosterPath)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := sheet.ReadRoster(f)
	if err != nil {
		return err
	}
	roster, err := models.Entries(rows)
	if err != nil {
		return err
	}

	var genOpts []generator.Option
	if opts.seed != 0 {
		genOpts = append(genOpts, generator.WithSeed(opts.seed))
	}
	gen, err := generator.New(cfg, genOpts...)
	if err != nil {
		return err
	}
	orders, err := gen.Generate(roster)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.outPath != "" {
		file, err := os.Create(opts.outPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	if err := sheet.WriteOrders(out, orders); err != nil {
		return err
	}

	if opts.summary {
		s := cfg.Summarize(roster, orders)
		fmt.Fprintf(cmd.ErrOrStderr(), "players=%d sends=%d matched=%d unmatched=%d fairness=%.1f%%\n",
			s.Players, s.Sends, s.Matched, s.Unmatched, s.FairnessScore)
	}
	return nil
}

func newLadderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ladder",
		Short: "Print the default pass ladder as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(generator.DefaultConfig()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
