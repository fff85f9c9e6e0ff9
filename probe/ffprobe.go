package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dantin/mlixir/subprocess"
)

// DefaultFFprobe is the executable looked up in PATH when none is configured.
const DefaultFFprobe = "ffprobe"

// FFprobe probes streams by running ffprobe against them.
type FFprobe struct {
	path string
}

// NewFFprobe returns a prober running the ffprobe executable at path.
func NewFFprobe(path string) *FFprobe {
	if path == "" {
		path = DefaultFFprobe
	}
	return &FFprobe{path: path}
}

// Probe runs ffprobe once against url. The ffprobe exit status becomes Result.Code.
func (p *FFprobe) Probe(ctx context.Context, url string) (*Result, error) {
	sp := subprocess.NewSubprocess(ctx, p.path, []string{"AV_LOG_FORCE_NOCOLOR=1"},
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		url,
	)

	out, err := sp.Run()
	if err != nil {
		return &Result{Code: CodeUnavailable}, err
	}

	res := &Result{
		Code:   out.ExitCode,
		Detail: lastLine(out.Stderr),
	}
	if res.Code != 0 {
		return res, nil
	}

	format, err := ParseJSON(out.Stdout)
	if err != nil {
		return res, err
	}
	res.Format = format

	return res, nil
}

type ffprobeOutput struct {
	Format *ffprobeFormat `json:"format"`
}

type ffprobeFormat struct {
	Filename       string `json:"filename"`
	NbStreams      int    `json:"nb_streams"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	Duration       string `json:"duration"`
	BitRate        string `json:"bit_rate"`
	ProbeScore     int    `json:"probe_score"`
}

// ParseJSON decodes the format section of ffprobe JSON output.
// It returns nil when the output has no format section.
func ParseJSON(data []byte) (*Format, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe output, %w", err)
	}
	if raw.Format == nil {
		return nil, nil
	}

	f := raw.Format
	return &Format{
		Filename:       f.Filename,
		FormatName:     f.FormatName,
		FormatLongName: f.FormatLongName,
		NbStreams:      f.NbStreams,
		Duration:       parseFloat(f.Duration),
		BitRate:        parseInt64(f.BitRate),
		ProbeScore:     f.ProbeScore,
	}, nil
}

// ffprobe reports numbers as strings, "N/A" when unknown.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func lastLine(b []byte) string {
	b = bytes.TrimSpace(b)
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	}
	return string(bytes.TrimSpace(b))
}
