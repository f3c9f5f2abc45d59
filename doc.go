// Package netcdf3 reads and writes NetCDF-3 files, in both the "classic"
// and "64-bit offset" on-disk encodings.
//
// A NetCDF-3 file holds a self-describing set of named, typed,
// multidimensional arrays ("variables") defined over named integer extents
// ("dimensions"), annotated with named typed attributes. At most one
// dimension may be "unlimited": variables built over it grow by appending
// whole records.
//
// To build a data set and write it:
//
//	ds := netcdf3.NewDataSet()
//	ds.AddFixedDim("x", 4)
//	ds.AddVar("temp", []string{"x"}, netcdf3.Float32)
//	data := &netcdf3.WriteData{Vars: map[string]interface{}{
//		"temp": []float32{1, 2, 3, 4},
//	}}
//	f, _ := os.Create("out.nc")
//	defer f.Close()
//	_ = netcdf3.Write(f, ds, data, netcdf3.VersionAuto)
//
// To read one back:
//
//	f, _ := os.Open("out.nc")
//	defer f.Close()
//	r, _ := netcdf3.Open(f)
//	vals, _ := r.ReadVar("temp") // []float32
//
// The data model and the two file encodings are documented by the "NetCDF
// Classic Format Specification":
// https://docs.unidata.ucar.edu/nug/current/file_format_specifications.html
package netcdf3
