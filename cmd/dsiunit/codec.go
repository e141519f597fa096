package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Neumenon/dsiunit/dsi"
)

func newCompileCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "compile <expr>...",
		Short: "Convert human unit expressions to D-SI markup",
		Example: `  dsiunit compile kg.m/s2
  # Output: \kilogram\metre\second\tothe{-2}`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unresolved := 0
			for _, expr := range args {
				res := dsi.CompileResult(expr)
				fmt.Fprintln(cmd.OutOrStdout(), res.Canonical)
				for _, w := range res.Warnings {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
				}
				unresolved += len(res.Warnings)
			}
			if strict && unresolved > 0 {
				return fmt.Errorf("%d unit tokens could not be resolved", unresolved)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when a token is passed through unresolved")
	return cmd
}

func newDecompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompile <canonical>...",
		Short: "Convert D-SI markup to human notation",
		Example: `  dsiunit decompile '\kilogram\metre\second\tothe{-2}'
  # Output: kg*m*s^-2`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range args {
				fmt.Fprintln(cmd.OutOrStdout(), dsi.Decompile(s))
			}
		},
	}
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <expr>...",
		Short: "Normalize free-form or mixed unit strings",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range args {
				fmt.Fprintln(cmd.OutOrStdout(), dsi.Normalize(s))
			}
		},
	}
}

func newDimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dims <expr>...",
		Short: "Print the SI scale and dimensions of unit expressions",
		Example: `  dsiunit dims km/h
  # Output: km/h  0.2777777777777778  m s^-1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, expr := range args {
				u, err := dsi.Dimension(dsi.Compile(expr))
				if err != nil {
					return errors.Wrap(err, expr)
				}
				fmt.Fprintf(tw, "%s\t%g\t%v\n", expr, u.Value(), u.Dimensions())
			}
			return tw.Flush()
		},
	}
}

func newDictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dict",
		Short: "Print the unit dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tSYMBOL\tMACRO")
			for _, e := range dsi.Entries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Kind, e.Symbol, e.Macro)
			}
			return tw.Flush()
		},
	}
}
