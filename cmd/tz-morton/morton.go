package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"

	"github.com/gojuno/morton/pkg/cmd"
	"github.com/gojuno/morton/pkg/config"
	"github.com/gojuno/morton/pkg/morton"
)

// transcoder turns one input line into one output line.
type transcoder struct {
	codec  *morton.Morton64
	signed bool
	decode bool
}

func (tc *transcoder) encode(line string) (string, error) {
	fields := strings.Split(line, ",")
	var code uint64
	var err error
	if tc.signed {
		values := make([]int64, len(fields))
		for i, f := range fields {
			values[i], err = strconv.ParseInt(strings.TrimSpace(f), 10, 64)
			if err != nil {
				return "", err
			}
		}
		code, err = tc.codec.SPack(values...)
	} else {
		values := make([]uint64, len(fields))
		for i, f := range fields {
			values[i], err = strconv.ParseUint(strings.TrimSpace(f), 10, 64)
			if err != nil {
				return "", err
			}
		}
		code, err = tc.codec.Pack(values...)
	}
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(code, 10), nil
}

func (tc *transcoder) decodeCode(line string) (string, error) {
	code, err := strconv.ParseUint(strings.TrimSpace(line), 0, 64)
	if err != nil {
		return "", err
	}
	var fields []string
	if tc.signed {
		for _, v := range tc.codec.SUnpack(code) {
			fields = append(fields, strconv.FormatInt(v, 10))
		}
	} else {
		for _, v := range tc.codec.Unpack(code) {
			fields = append(fields, strconv.FormatUint(v, 10))
		}
	}
	return strings.Join(fields, ","), nil
}

func (tc *transcoder) line(line string) (string, error) {
	if tc.decode {
		return tc.decodeCode(line)
	}
	return tc.encode(line)
}

type stats struct {
	lines    uint64
	failed   uint64
	bytesIn  uint64
	bytesOut uint64
}

func (s stats) String() string {
	return fmt.Sprintf("%s lines, %s failed, %s read, %s written",
		humanize.Comma(int64(s.lines)), humanize.Comma(int64(s.failed)),
		humanize.Bytes(s.bytesIn), humanize.Bytes(s.bytesOut))
}

// run transcodes every non-empty line of in. Lines that fail are reported on
// errOut and skipped, so one bad record doesn't lose the rest of the batch.
func run(in io.Reader, out io.Writer, errOut io.Writer, tc *transcoder) (stats, error) {
	var s stats
	buf := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		s.bytesIn += uint64(len(line)) + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.lines++
		result, err := tc.line(line)
		if err != nil {
			s.failed++
			fmt.Fprintf(errOut, "line %d: %#v: %s\n", lineNo, line, err)
			continue
		}
		n, err := buf.WriteString(result + "\n")
		s.bytesOut += uint64(n)
		if err != nil {
			return s, err
		}
	}
	if err := scanner.Err(); err != nil {
		return s, err
	}
	return s, buf.Flush()
}

func main() {
	var yamlPath string
	var layoutName string
	var decode bool
	var compressOutput bool

	flag.StringVar(&yamlPath, "yaml", "", "path to yaml file of codec layouts")
	flag.StringVar(&layoutName, "layout", "", "name of the layout to use")
	flag.BoolVar(&decode, "decode", false, "decode codes into comma separated values instead of encoding")
	flag.BoolVar(&compressOutput, "gzip", false, "If set, compress the output with gzip.")
	flag.Parse()

	if yamlPath == "" || layoutName == "" {
		cmd.DieWithUsage()
	}

	cfg, err := config.LoadFile(yamlPath)
	if err != nil {
		cmd.DieWithMessage("Invalid yaml file %s: %s", yamlPath, err)
	}
	layout, ok := cfg.Layout(layoutName)
	if !ok {
		cmd.DieWithMessage("Unknown layout %#v", layoutName)
	}
	codec, err := layout.Codec()
	if err != nil {
		log.Fatalf("error: %s\n", err)
	}

	var output io.WriteCloser = os.Stdout
	if compressOutput {
		output = gzip.NewWriter(output)
	}

	s, err := run(os.Stdin, output, os.Stderr, &transcoder{codec: codec, signed: layout.Signed, decode: decode})
	if compressOutput && err == nil {
		err = output.Close()
	}
	if err != nil {
		log.Fatalf("error: %s\n", err)
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", codec, s)
	if s.failed > 0 {
		os.Exit(2)
	}
}
