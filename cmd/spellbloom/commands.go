package main

import (
	"fmt"
	"io"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	bloom "github.com/vkuptcov/spellbloom"
	"github.com/vkuptcov/spellbloom/redisclients"
)

type rootOptions struct {
	filterPath string
	paramsPath string
	redisAddr  string
	redisKey   string
	quiet      bool
}

func (o *rootOptions) store() bloom.Store {
	if o.redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: o.redisAddr})
		return bloom.NewRedisStore(redisclients.NewGoRedisClient(client), o.redisKey)
	}
	return bloom.NewFileStore(o.filterPath, o.paramsPath)
}

func (o *rootOptions) builder(cmd *cobra.Command) *bloom.Builder {
	logger := bloom.NopLogger()
	if !o.quiet {
		out := cmd.ErrOrStderr()
		logger = func(v ...interface{}) {
			fmt.Fprintln(out, v...)
		}
	}
	return bloom.NewBuilder(bloom.WithLogger(logger))
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "spellbloom",
		Short:         "Spellcheck with a Bloom filter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.filterPath, "filter", bloom.DefaultFilterPath, "filter payload file")
	flags.StringVar(&opts.paramsPath, "config", bloom.DefaultParamsPath, "filter parameters file (.json or .yaml)")
	flags.StringVar(&opts.redisAddr, "redis-addr", "", "keep the filter in Redis at this address instead of files")
	flags.StringVar(&opts.redisKey, "redis-key", "spellbloom", "Redis key prefix of the filter")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print progress")

	root.AddCommand(newBuildCmd(opts), newCheckCmd(opts), newStatsCmd(opts))
	return root
}

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var buildOpts bloom.BuildOptions
	cmd := &cobra.Command{
		Use:   "build <word-file>",
		Short: "Build a filter from a file with one word per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := opts.builder(cmd)
			filter, err := builder.Build(cmd.Context(), bloom.FileWordSource{Path: args[0]}, buildOpts)
			if err != nil {
				return err
			}
			return builder.Save(cmd.Context(), opts.store(), filter)
		},
	}
	cmd.Flags().Float64Var(&buildOpts.FalsePositiveRate, "false-positive-rate", bloom.DefaultFalsePositiveRate, "desired false positive rate")
	cmd.Flags().Uint64Var(&buildOpts.ExpectedElements, "num-elements", 0, "number of elements expected in the filter (default: words in the file)")
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <word>...",
		Short: "Report words missing from the filter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.builder(cmd).Load(cmd.Context(), opts.store())
			if err != nil {
				return err
			}
			printMissing(cmd.OutOrStdout(), bloom.Missing(filter, args))
			return nil
		},
	}
}

func printMissing(out io.Writer, missing []string) {
	if len(missing) == 0 {
		fmt.Fprintln(out, "All words are correctly identified.")
		return
	}
	fmt.Fprintln(out, "These words are spelt wrong:")
	for _, w := range missing {
		fmt.Fprintln(out, w)
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print filter parameters and fill ratio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.builder(cmd).Load(cmd.Context(), opts.store())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bits: %d\n", filter.BitCount())
			fmt.Fprintf(out, "hash functions: %d\n", filter.HashRounds())
			fmt.Fprintf(out, "set bits: %d (%.2f%%)\n", filter.SetBits(), 100*float64(filter.SetBits())/float64(filter.BitCount()))
			fmt.Fprintf(out, "estimated false positive rate: %.6f\n", filter.EstimatedFalsePositiveRate())
			return nil
		},
	}
}
