// =============================================================================
// Daily Sales - Export Sinks
// =============================================================================
//
// A sink receives the finished report text and delivers it somewhere the
// user can copy or share it from. Delivery is best effort: a failed export
// never touches the session.
//
// SINKS:
//   stdout : writes the text to an io.Writer (the terminal)
//   file   : writes a .txt file into the output directory
//   pdf    : renders the text into a one-column PDF in the output directory
//
// File-backed sinks name their files with the FileManager pattern, using the
// session day for the {date} placeholder.
//
// =============================================================================

package export

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ginjaninja78/daily-sales/pkg/utils"
)

// Sink kinds accepted by New.
const (
	KindStdout = "stdout"
	KindFile   = "file"
	KindPDF    = "pdf"
)

// ErrUnknownSink is returned by New for an unrecognised sink kind.
var ErrUnknownSink = errors.New("unknown export sink")

// Sink delivers a report.
type Sink interface {
	Send(report string) error
}

// Located is implemented by sinks that write a file. Path returns the file
// written by the last successful Send, or "" before that.
type Located interface {
	Path() string
}

// New returns the sink of the given kind. w is used by the stdout sink; fm and
// day by the file-backed ones.
func New(kind string, w io.Writer, fm *utils.FileManager, day string) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindStdout, "":
		return NewWriterSink(w), nil
	case KindFile:
		return NewFileSink(fm, day), nil
	case KindPDF:
		return NewPDFSink(fm, day), nil
	default:
		return nil, errors.Wrapf(ErrUnknownSink, "%q", kind)
	}
}

// =============================================================================
// WRITER SINK
// =============================================================================

// WriterSink writes the report to an io.Writer, followed by a newline when
// the report does not already end with one.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a WriterSink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Send writes report to the underlying writer.
func (s *WriterSink) Send(report string) error {
	if !strings.HasSuffix(report, "\n") {
		report += "\n"
	}
	if _, err := io.WriteString(s.w, report); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

// =============================================================================
// FILE SINK
// =============================================================================

// FileSink writes the report as a UTF-8 text file.
type FileSink struct {
	fm   *utils.FileManager
	day  string
	path string
}

// NewFileSink creates a FileSink writing into fm's output directory.
func NewFileSink(fm *utils.FileManager, day string) *FileSink {
	return &FileSink{fm: fm, day: day}
}

// Send writes report to a new .txt file.
func (s *FileSink) Send(report string) error {
	path, err := s.fm.WriteOutput(".txt", dayParams(s.day), []byte(report))
	if err != nil {
		return errors.Wrap(err, "export text report")
	}
	s.path = path
	return nil
}

// Path returns the file written by the last Send.
func (s *FileSink) Path() string {
	return s.path
}

// dayParams fills the {date} placeholder with the session day.
func dayParams(day string) map[string]string {
	if day == "" {
		return nil
	}
	return map[string]string{"date": day}
}
