// Package argfile turns the first line of a file into an argument vector, for
// fuzz engines that can only hand a harness a single file path.
package argfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
	"go.uber.org/zap"

	"github.com/baaaaaaaka/envcompat/internal/tracelog"
)

// MaxLine is the most bytes read from an argument file. Anything past it is
// dropped and reported through Result.Truncated.
const MaxLine = 1023

var (
	ErrOpen  = errors.New("open argument file")
	ErrEmpty = errors.New("argument file is empty")
)

// Result is a parsed argument file.
type Result struct {
	// Argv holds the program name followed by every token; argc is len(Argv).
	Argv       []string
	Truncated  bool
	Compressed bool
}

// Adapter parses argument files. The zero value parses without tracing.
type Adapter struct {
	Log   *zap.Logger
	Trace *tracelog.File
}

// Parse reads the argument file at path with no tracing. prog becomes Argv[0].
func Parse(path, prog string) (Result, error) {
	return (&Adapter{}).Parse(path, prog)
}

func (a *Adapter) Parse(path, prog string) (Result, error) {
	log := a.Log
	if log == nil {
		log = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		log.Debug("open argument file failed", zap.String("path", path), zap.Error(err))
		return Result{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	r, compressed, err := maybeDecompress(f)
	if err != nil {
		return Result{}, fmt.Errorf("decompress argument file: %w", err)
	}

	line, truncated, err := ReadLine(r)
	if err != nil {
		return Result{}, fmt.Errorf("read argument file: %w", err)
	}
	if len(line) == 0 {
		log.Debug("argument file is empty", zap.String("path", path))
		return Result{}, ErrEmpty
	}

	res := Result{
		Argv:       Split(prog, TrimEOL(line)),
		Truncated:  truncated,
		Compressed: compressed,
	}
	if truncated {
		log.Warn("argument line truncated", zap.String("path", path), zap.Int("limit", MaxLine))
	}
	log.Debug("parsed argument file",
		zap.String("path", path),
		zap.Int("argc", len(res.Argv)),
		zap.Strings("argv", res.Argv),
		zap.Bool("compressed", compressed),
	)
	if a.Trace != nil {
		if err := a.Trace.RecordArgs(res.Argv); err != nil {
			log.Debug("trace log unavailable", zap.String("path", a.Trace.Path()), zap.Error(err))
		}
	}
	return res, nil
}

func maybeDecompress(r io.Reader) (io.Reader, bool, error) {
	br := bufio.NewReader(r)
	hdr, err := br.Peek(xz.HeaderLen)
	if err != nil || !xz.ValidHeader(hdr) {
		return br, false, nil
	}
	zr, err := xz.NewReader(br)
	if err != nil {
		return nil, false, err
	}
	return zr, true, nil
}

// ReadLine reads up to MaxLine bytes from r, stopping after the first
// newline, which is kept. truncated reports that the cap was hit while more
// of the line remained.
func ReadLine(r io.Reader) (line []byte, truncated bool, err error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line = make([]byte, 0, 64)
	for len(line) < MaxLine {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return line, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		line = append(line, c)
		if c == '\n' {
			return line, false, nil
		}
	}

	next, err := br.ReadByte()
	switch {
	case errors.Is(err, io.EOF):
		return line, false, nil
	case err != nil:
		return nil, false, err
	}
	return line, next != '\n', nil
}

// TrimEOL removes one trailing "\n" and then one trailing "\r".
func TrimEOL(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
