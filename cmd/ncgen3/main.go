// Command ncgen3 builds a NetCDF-3 classic or 64-bit-offset file from a
// TOML dataset description, in the spirit of the upstream ncgen utility
// (minus its CDL text format, which this package does not parse).
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/airshed/netcdf3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var outPath string
	var versionFlag string

	cmd := &cobra.Command{
		Use:   "ncgen3 [config.toml]",
		Short: "Generate a NetCDF-3 file from a TOML dataset description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVersionFlag(versionFlag)
			if err != nil {
				return err
			}
			return runGen(args[0], outPath, v)
		},
		DisableAutoGenTag: true,
	}
	registerFlags(cmd.Flags(), &outPath, &versionFlag)
	return cmd
}

// registerFlags populates a command's flag set directly, mirroring
// inmaputil/cmd.go's pattern of building *pflag.FlagSet entries separately
// from the *cobra.Command that owns them.
func registerFlags(flags *pflag.FlagSet, outPath, versionFlag *string) {
	flags.StringVarP(outPath, "output", "o", "out.nc", "path of the file to create")
	flags.StringVar(versionFlag, "version", "auto", `on-disk format: "auto", "classic", or "64bit"`)
}

func parseVersionFlag(s string) (netcdf3.Version, error) {
	switch s {
	case "auto":
		return netcdf3.VersionAuto, nil
	case "classic":
		return netcdf3.VersionClassic, nil
	case "64bit":
		return netcdf3.VersionOffset64, nil
	}
	return 0, fmt.Errorf("ncgen3: invalid --version %q (want auto, classic, or 64bit)", s)
}

// config is the TOML schema ncgen3 reads, grounded on sr/sr_test.go's
// loadConfig (os.Open then toml.Decode into a config struct).
type config struct {
	Dimensions []struct {
		Name      string
		Size      int
		Unlimited bool
	}
	Attributes []attrConfig
	Variables  []struct {
		Name       string
		Type       string
		Dims       []string
		Attributes []attrConfig
	}
	Data map[string]interface{}
}

type attrConfig struct {
	Name  string
	Type  string
	Value interface{}
}

func parseType(s string) (netcdf3.Type, error) {
	switch s {
	case "i8":
		return netcdf3.Int8, nil
	case "char":
		return netcdf3.Char, nil
	case "i16":
		return netcdf3.Int16, nil
	case "i32":
		return netcdf3.Int32, nil
	case "f32":
		return netcdf3.Float32, nil
	case "f64":
		return netcdf3.Float64, nil
	}
	return 0, fmt.Errorf("ncgen3: invalid type %q (want i8, char, i16, i32, f32, or f64)", s)
}

func runGen(configPath, outPath string, version netcdf3.Version) error {
	f, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var cfg config
	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return fmt.Errorf("ncgen3: parsing %s: %w", configPath, err)
	}

	ds := netcdf3.NewDataSet()
	for _, d := range cfg.Dimensions {
		if d.Unlimited {
			if _, err := ds.SetUnlimitedDim(d.Name, 0); err != nil {
				return err
			}
			continue
		}
		if _, err := ds.AddFixedDim(d.Name, d.Size); err != nil {
			return err
		}
	}

	for _, a := range cfg.Attributes {
		if err := addAttr(ds, "", a); err != nil {
			return err
		}
	}

	for _, v := range cfg.Variables {
		typ, err := parseType(v.Type)
		if err != nil {
			return err
		}
		if _, err := ds.AddVar(v.Name, v.Dims, typ); err != nil {
			return err
		}
		for _, a := range v.Attributes {
			if err := addAttr(ds, v.Name, a); err != nil {
				return err
			}
		}
	}

	data, recordCount, err := buildWriteData(ds, cfg.Data)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := netcdf3.Write(out, ds, data, version); err != nil {
		return fmt.Errorf("ncgen3: writing %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s (%d records)\n", outPath, recordCount)
	return nil
}

func addAttr(ds *netcdf3.DataSet, owner string, a attrConfig) error {
	var typ netcdf3.Type
	var err error
	if a.Type != "" {
		typ, err = parseType(a.Type)
		if err != nil {
			return err
		}
	} else {
		typ = inferAttrType(a.Value)
	}

	values, err := tomlValueToTyped(a.Value, typ)
	if err != nil {
		return fmt.Errorf("ncgen3: attribute %q: %w", a.Name, err)
	}
	_, err = ds.AddAttr(owner, a.Name, values)
	return err
}

// inferAttrType guesses an attribute's on-disk type from the dynamic type
// BurntSushi/toml produced when decoding its value into interface{}: a
// plain string becomes Char (text); any numeric scalar or homogeneous
// numeric array defaults to Float64, the widest type that can hold either
// TOML integers or floats without narrowing.
func inferAttrType(v interface{}) netcdf3.Type {
	switch v.(type) {
	case string:
		return netcdf3.Char
	}
	return netcdf3.Float64
}

func tomlValueToTyped(v interface{}, typ netcdf3.Type) (interface{}, error) {
	if typ == netcdf3.Char {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("char attribute requires a string value, got %T", v)
		}
		return []uint8(s), nil
	}

	raw, ok := v.([]interface{})
	if !ok {
		raw = []interface{}{v} // allow a bare scalar for a length-1 attribute
	}
	return typedSliceFromToml(raw, typ)
}

func typedSliceFromToml(raw []interface{}, typ netcdf3.Type) (interface{}, error) {
	n := len(raw)
	switch typ {
	case netcdf3.Int8:
		out := make([]int8, n)
		for i, v := range raw {
			x, err := tomlInt(v)
			if err != nil {
				return nil, err
			}
			out[i] = int8(x)
		}
		return out, nil
	case netcdf3.Int16:
		out := make([]int16, n)
		for i, v := range raw {
			x, err := tomlInt(v)
			if err != nil {
				return nil, err
			}
			out[i] = int16(x)
		}
		return out, nil
	case netcdf3.Int32:
		out := make([]int32, n)
		for i, v := range raw {
			x, err := tomlInt(v)
			if err != nil {
				return nil, err
			}
			out[i] = int32(x)
		}
		return out, nil
	case netcdf3.Float32:
		out := make([]float32, n)
		for i, v := range raw {
			x, err := tomlFloat(v)
			if err != nil {
				return nil, err
			}
			out[i] = float32(x)
		}
		return out, nil
	case netcdf3.Float64:
		out := make([]float64, n)
		for i, v := range raw {
			x, err := tomlFloat(v)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type %v", typ)
}

func tomlInt(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func tomlFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

// buildWriteData translates the TOML [data] table into a *netcdf3.WriteData:
// one typed slice per fixed variable, and one typed slice per record per
// record variable. A record variable's data entry must be an array of
// per-record arrays (or, for a Char variable, an array of strings).
func buildWriteData(ds *netcdf3.DataSet, raw map[string]interface{}) (*netcdf3.WriteData, int, error) {
	data := &netcdf3.WriteData{
		Vars:    make(map[string]interface{}),
		Records: make(map[string][]interface{}),
	}
	recordCount := -1

	for _, v := range ds.Vars() {
		name := v.Name()
		entry, ok := raw[name]
		if !ok {
			return nil, 0, &netcdf3.VariableNotFoundError{Name: name}
		}

		if !v.IsRecordVariable() {
			values, err := tomlValueToTyped(entry, v.Type())
			if err != nil {
				return nil, 0, fmt.Errorf("ncgen3: variable %q: %w", name, err)
			}
			data.Vars[name] = values
			continue
		}

		records, ok := entry.([]interface{})
		if !ok {
			return nil, 0, fmt.Errorf("ncgen3: variable %q: record data must be an array of records", name)
		}
		if recordCount == -1 {
			recordCount = len(records)
		} else if len(records) != recordCount {
			return nil, 0, &netcdf3.RecordLengthMismatchError{Var: name, Want: recordCount, Got: len(records)}
		}
		typed := make([]interface{}, len(records))
		for i, rec := range records {
			values, err := tomlValueToTyped(rec, v.Type())
			if err != nil {
				return nil, 0, fmt.Errorf("ncgen3: variable %q: record %d: %w", name, i, err)
			}
			typed[i] = values
		}
		data.Records[name] = typed
	}

	if recordCount == -1 {
		recordCount = 0
	}
	return data, recordCount, nil
}
