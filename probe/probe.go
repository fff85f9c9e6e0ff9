// Package probe opens a media stream far enough to identify its container
// format, without decoding any of its content.
package probe

import "context"

// CodeUnavailable is reported when the probe capability itself could not run.
const CodeUnavailable = -1

// Format is container-level information about a probed stream.
type Format struct {
	Filename       string
	FormatName     string
	FormatLongName string
	NbStreams      int
	Duration       float64
	BitRate        int64
	ProbeScore     int
}

// Result is the outcome of a single probe. Code 0 means the stream was opened;
// any other value is an opaque failure code of the underlying media library.
type Result struct {
	Code   int
	Detail string
	Format *Format
}

// OK reports whether the stream was opened.
func (r *Result) OK() bool {
	return r != nil && r.Code == 0
}

// Prober opens a stream identified by url.
//
// A returned error explains why the probe could not be carried out or why its
// output could not be understood; it does not replace Result.Code.
type Prober interface {
	Probe(ctx context.Context, url string) (*Result, error)
}
