// Command ncdump3 prints the structure of a NetCDF-3 classic or
// 64-bit-offset file: its dimensions, global attributes, and variables
// with their shapes and attributes.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/airshed/netcdf3"
)

var log = logrus.StandardLogger()

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "ncdump3 [file]",
		Short: "Print the structure of a NetCDF-3 file",
		Long: `ncdump3 opens a NetCDF-3 classic or 64-bit-offset file and prints its
dimensions, global attributes, and variables, in the style of the
upstream ncdump utility's header-only (-h) output.`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0])
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostic information, including out-of-order header sections")

	root.AddCommand(newVerifyCmd())
	return root
}

func openDataSet(path string) (*netcdf3.File, error) {
	log.Debugf("opening %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	nf, err := netcdf3.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ncdump3: %s: %w", path, err)
	}
	return nf, nil
}

func runDump(cmd *cobra.Command, path string) error {
	f, err := openDataSet(path)
	if err != nil {
		return err
	}
	ds := f.DataSet()
	log.Debugf("version: %v", f.Version())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "netcdf %s {\n", path)

	fmt.Fprintln(out, "dimensions:")
	for _, d := range ds.Dims() {
		if d.IsUnlimited() {
			fmt.Fprintf(out, "\t%s = UNLIMITED ; // (%d currently)\n", d.Name(), d.Size())
		} else {
			fmt.Fprintf(out, "\t%s = %d ;\n", d.Name(), d.Size())
		}
	}

	fmt.Fprintln(out, "variables:")
	for _, v := range ds.Vars() {
		dims := v.DimNames()
		shape := ""
		for i, n := range dims {
			if i > 0 {
				shape += ", "
			}
			shape += n
		}
		fmt.Fprintf(out, "\t%s %s(%s) ;\n", v.Type(), v.Name(), shape)
		for _, a := range v.Attrs() {
			fmt.Fprintf(out, "\t\t%s:%s\n", v.Name(), a.String())
		}
	}

	if ds.NumAttrs("") > 0 {
		fmt.Fprintln(out, "\n// global attributes:")
		for _, a := range ds.Attrs("") {
			fmt.Fprintf(out, "\t\t:%s\n", a.String())
		}
	}

	fmt.Fprintln(out, "}")
	return nil
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "verify [file]",
		Short:             "Check a file's data set for structural invariant violations",
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openDataSet(args[0])
			if err != nil {
				return err
			}
			errs := f.DataSet().Check()
			if len(errs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			for _, e := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return fmt.Errorf("ncdump3: %d invariant violation(s)", len(errs))
		},
	}
}
