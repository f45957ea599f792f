// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command ddstat is a small driver around the bdd/zdd packages, in the
// spirit of the source's own example-driven style (example_test.go,
// nqueens_test.go): each subcommand builds one fixed toy diagram, reports
// factory stats, and can export a DOT rendering.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/powerofpi/HumbleBDD/bdd"
	"github.com/powerofpi/HumbleBDD/dd"
	"github.com/powerofpi/HumbleBDD/zdd"
)

var (
	varnum  int32
	dotPath string
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "ddstat",
		Short: "Build and inspect binary/zero-suppressed decision diagrams",
	}
	root.PersistentFlags().Int32Var(&varnum, "varnum", 4, "number of variables")
	root.PersistentFlags().StringVar(&dotPath, "dot", "", "write a DOT rendering to this path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(bddCmd(), zddCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, _ := zap.NewDevelopment()
	return l
}

func bddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bdd",
		Short: "Build v0 AND NOT v1 and report its number of satisfying assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bdd.New(varnum, dd.Logger(logger()))
			if err != nil {
				return err
			}
			v0, err := b.Ithvar(0)
			if err != nil {
				return err
			}
			v1, err := b.NIthvar(1)
			if err != nil {
				return err
			}
			f, err := b.And(v0, v1)
			if err != nil {
				return err
			}
			count, err := b.Count(f)
			if err != nil {
				return err
			}
			fmt.Printf("stats: %+v\n", b.Stats())
			fmt.Printf("satisfying assignments: %s\n", count.String())
			if dotPath != "" {
				return writeDOT(dotPath, func(w io.Writer) error {
					return b.ExportDOT(w, map[string]*bdd.Handle{"f": f})
				})
			}
			return nil
		},
	}
}

func zddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zdd",
		Short: "Build a small family of sets and report its cardinality",
		RunE: func(cmd *cobra.Command, args []string) error {
			z, err := zdd.New(varnum, dd.Logger(logger()))
			if err != nil {
				return err
			}
			f, err := z.Family([][]int32{{0}, {0, 1}, {0, 1, 2}})
			if err != nil {
				return err
			}
			count, err := z.Count(f)
			if err != nil {
				return err
			}
			fmt.Printf("stats: %+v\n", z.Stats())
			fmt.Printf("family cardinality: %s\n", count.String())
			if dotPath != "" {
				return writeDOT(dotPath, func(w io.Writer) error {
					return z.ExportDOT(w, map[string]*zdd.Handle{"f": f})
				})
			}
			return nil
		},
	}
}

func writeDOT(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
