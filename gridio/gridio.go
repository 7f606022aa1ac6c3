//Package gridio stores potential grids on disk. Files hold a fixed
//little-endian header followed by the channel payloads, and are
//compressed with a codec chosen from the file extension, so grids
//computed once can be shipped between runs or machines.
package gridio

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/stanislc/crimm"
	"github.com/stanislc/crimm/grid"
)

const (
	lzwLitwidth int = 8

	formatVersion uint32 = 1
)

var magic = [4]byte{'C', 'R', 'G', 'D'}

//header is the fixed part of a grid file. encoding/binary writes it
//packed, field by field, so the on-disk layout is exactly the order
//given here: magic, version, channel count, extents, spacing, origin.
//Each channel payload that follows is a flat row-major array of
//NX*NY*NZ float64 values.
type header struct {
	Magic     [4]byte
	Version   uint32
	NChannels uint32
	NX        uint32
	NY        uint32
	NZ        uint32
	Spacing   float64
	Origin    [3]float64
}

//Write stores the lattice geometry and the potential channels in the
//file name. The compressor is selected from the last letter of the
//filename: 'l' means LZW, 'z' gzip, 'r' DEFLATE, and anything else,
//including the canonical ".grd" extension, zstd. compressionLevel is
//only honored by gzip and DEFLATE.
func Write(name string, G *grid.Geometry, c *grid.Channels, compressionLevel ...int) error {
	if G == nil || c == nil {
		return Error{"Given nil geometry or channels", name, []string{"Write"}, true}
	}
	if G.Shape() != c.Shape() {
		return Error{"Geometry and channels don't have the same extents", name, []string{"Write"}, true}
	}
	var level int = 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	f, err := os.Create(name)
	if err != nil {
		return Error{"Unable to open file: " + err.Error(), name, []string{"Write"}, true}
	}
	defer f.Close()
	zwriter := func(a io.Writer) (io.WriteCloser, error) {
		r, err := flate.NewWriter(a, level)
		return r, err
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = gzipwriter
	case 'r':
		AnyNewWriter = zwriter
	default:
		AnyNewWriter = zstdwriter
	}
	h, err := AnyNewWriter(f)
	if err != nil {
		return Error{"Can't set up the compressor: " + err.Error(), name, []string{"Write"}, true}
	}
	s := c.Shape()
	ox, oy, oz := G.Origin()
	hdr := header{
		Magic:     magic,
		Version:   formatVersion,
		NChannels: uint32(c.NChannels()),
		NX:        uint32(s.NX),
		NY:        uint32(s.NY),
		NZ:        uint32(s.NZ),
		Spacing:   G.Spacing(),
		Origin:    [3]float64{ox, oy, oz},
	}
	if err := binary.Write(h, binary.LittleEndian, hdr); err != nil {
		return Error{"Can't write the header: " + err.Error(), name, []string{"Write"}, true}
	}
	for i := 0; i < c.NChannels(); i++ {
		if err := binary.Write(h, binary.LittleEndian, c.Grid(i).Data()); err != nil {
			return Error{fmt.Sprintf("Can't write channel %d: %s", i, err.Error()), name, []string{"Write"}, true}
		}
	}
	//The compressors buffer, so a failed Close means a truncated file,
	//not just a lost byte or two.
	if err := h.Close(); err != nil {
		return Error{"Can't flush the compressed payload: " + err.Error(), name, []string{"Write"}, true}
	}
	return nil
}

//*zstd.Decoder doesn't implement io.ReadCloser (its Close returns
//nothing) so it gets a little help here.
type stdql struct {
	closeql func()
	*zstd.Decoder
}

//Close Closes the object. It can not be used after this call.
func (s stdql) Close() error {
	s.closeql()
	return nil
}

//Read recovers a geometry and its potential channels from the file
//name, written by Write. The decompressor is selected from the last
//letter of the filename with the same rules Write uses.
func Read(name string) (*grid.Geometry, *grid.Channels, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	zreader := func(a io.Reader) (io.ReadCloser, error) {
		r := flate.NewReader(a)
		return r, nil
	}
	zstdreader := func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		var ql *stdql
		ql = &stdql{r.Close, r}
		return ql, err
	}
	gzreader := func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewReader = gzreader
	case 'r':
		AnyNewReader = zreader
	default:
		AnyNewReader = zstdreader
	}
	h, err := AnyNewReader(bufio.NewReader(f))
	if err != nil {
		return nil, nil, Error{"Can't set up the decompressor: " + err.Error(), name, []string{"Read"}, true}
	}
	defer h.Close()
	var hdr header
	if err := binary.Read(h, binary.LittleEndian, &hdr); err != nil {
		return nil, nil, Error{"Can't read the header: " + err.Error(), name, []string{"Read"}, true}
	}
	if hdr.Magic != magic {
		return nil, nil, Error{"Not a grid file", name, []string{"Read"}, true}
	}
	if hdr.Version != formatVersion {
		return nil, nil, Error{fmt.Sprintf("Unsupported format version %d", hdr.Version), name, []string{"Read"}, true}
	}
	if hdr.NChannels == 0 {
		return nil, nil, Error{"File contains no channels", name, []string{"Read"}, true}
	}
	s, err := grid.NewShape(int(hdr.NX), int(hdr.NY), int(hdr.NZ))
	if err != nil {
		return nil, nil, errDecorate(err, "Read")
	}
	G, err := grid.NewGeometry(s, hdr.Spacing, hdr.Origin[0], hdr.Origin[1], hdr.Origin[2])
	if err != nil {
		return nil, nil, errDecorate(err, "Read")
	}
	c := grid.NewChannels(s, int(hdr.NChannels))
	for i := 0; i < c.NChannels(); i++ {
		if err := binary.Read(h, binary.LittleEndian, c.Grid(i).Data()); err != nil {
			return nil, nil, Error{fmt.Sprintf("Can't read channel %d: %s", i, err.Error()), name, []string{"Read"}, true}
		}
	}
	return G, c, nil
}

//Errors

//errDecorate is a helper function that asserts that the error
//implements crimm.Error and decorates the error with the caller's name before returning it.
//if used with a non-crimm.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(crimm.Error) //I know that is the type returned by the grid package
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for grid file errors. It fullfills crimm.Error.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("grid file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing grid was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error
func (err Error) Format() string { return "crgd" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }
