// Package experiments wires the solver to the benchmark tasks behind a
// command line interface.
package experiments

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	rate       float64
	discount   float64
	tolerance  float64
	iterations int
	estimator  string
	rank       int
	shrinkage  float64
	workers    int
	seed       uint64
	saveDir    string
	cache      bool
	redisAddr  string
	configFile string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{Use: "svplan"}
	rootCommand.PersistentFlags().Float64VarP(&rate, "rate", "p", 1.0, "Observation rate of the sampled Bellman backups")
	rootCommand.PersistentFlags().Float64VarP(&discount, "discount", "g", 0.99, "Discount factor")
	rootCommand.PersistentFlags().Float64Var(&tolerance, "tolerance", 1e-4, "Convergence tolerance on the sup-norm delta")
	rootCommand.PersistentFlags().IntVarP(&iterations, "iterations", "i", 2000, "Iteration cap")
	rootCommand.PersistentFlags().StringVar(&estimator, "estimator", "softimp", "Matrix estimation engine (svt|softimp|nucnorm)")
	rootCommand.PersistentFlags().IntVar(&rank, "rank", 0, "Target rank for the svt engine (0 picks a default)")
	rootCommand.PersistentFlags().Float64Var(&shrinkage, "shrinkage", 0, "Singular value threshold for softimp (0 picks a default)")
	rootCommand.PersistentFlags().IntVar(&workers, "workers", 0, "Backup workers (0 uses all CPUs)")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 7, "Mask sampler seed")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save results in the specified folder")
	rootCommand.PersistentFlags().BoolVar(&cache, "cache", false, "Reuse a cached value table when present")
	rootCommand.PersistentFlags().StringVar(&redisAddr, "redis", "", "Cache tables in redis at this address instead of on disk")
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML experiment config overriding the flags")
	// adding the subcommands here
	rootCommand.AddCommand(DoubleIntegratorCommand())
	rootCommand.AddCommand(MountainCarCommand())
	rootCommand.AddCommand(CartPoleCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}

// signalContext cancels on interrupt so a solve stops cleanly between
// rounds.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}
