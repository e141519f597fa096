// dsiunit - D-SI unit codec and result table CLI tool
//
// Usage:
//
//	dsiunit compile <expr>...              Human unit expression -> D-SI markup
//	dsiunit decompile <canonical>...       D-SI markup -> human notation
//	dsiunit normalize <expr>...            Any mix -> normalized human notation
//	dsiunit dims <expr>...                 SI scale and dimensions of an expression
//	dsiunit table [--json] [file]...       Result set YAML/JSON -> @tab table
//	dsiunit dict                           Print the unit dictionary
//	dsiunit version                        Print version info
//
// If no file is given to table, it reads from stdin.
package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

const libVersion = "0.1.0"

func main() {
	root := newRootCmd()
	err := root.Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dsiunit:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dsiunit",
		Short:         "D-SI unit codec and calibration result tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// glog registers its flags on the standard flag set.
	root.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	_ = goflag.Set("logtostderr", "true")

	root.AddCommand(
		newCompileCmd(),
		newDecompileCmd(),
		newNormalizeCmd(),
		newDimsCmd(),
		newTableCmd(),
		newDictCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dsiunit %s\n", libVersion)
		},
	}
}
