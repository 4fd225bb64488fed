package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"

	"github.com/gojuno/morton/pkg/cmd"
	"github.com/gojuno/morton/pkg/coord"
	"github.com/gojuno/morton/pkg/coord/gen"
	tzs3 "github.com/gojuno/morton/pkg/s3"
	"github.com/gojuno/morton/pkg/util"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

func listObjects(keysChan chan<- string, svc *s3.S3, bucket string, datePrefix string) {
	err := svc.ListObjectsPages(&s3.ListObjectsInput{
		Bucket: &bucket,
		Prefix: &datePrefix,
	}, func(output *s3.ListObjectsOutput, lastPage bool) bool {
		for _, obj := range output.Contents {
			keysChan <- *obj.Key
		}
		return true
	})
	if err != nil {
		panic(err)
	}
	close(keysChan)
}

func readKey(keysChan <-chan string, coordsChan chan<- []coord.Coord, svc *s3.S3, bucket string, concurrency uint) {
	util.Concurrently(concurrency, func(uint) {
		for key := range keysChan {
			obj, err := svc.GetObject(&s3.GetObjectInput{
				Bucket: &bucket,
				Key:    &key,
			})
			if err != nil {
				panic(err)
			}
			coords, err := decodeCoords(obj.Body, key)
			if closeErr := obj.Body.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				panic(err)
			}
			coordsChan <- coords
		}
	})
	close(coordsChan)
}

// decodeCoords reads one coordinate per line, either z/x/y or a
// <z>/<morton hex>.zip key. Lines that don't parse are reported and skipped.
func decodeCoords(r io.Reader, key string) ([]coord.Coord, error) {
	var coords []coord.Coord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		c, err := coord.Decode(line)
		if err != nil {
			if mc, mortonErr := tzs3.ParseMortonKey(line); mortonErr == nil {
				coords = append(coords, *mc)
				continue
			}
			fmt.Fprintf(os.Stderr, "Failed to parse tile coordinate from key=%#v line=%#v: %s\n", key, line, err)
			continue
		}
		coords = append(coords, *c)
	}
	return coords, scanner.Err()
}

const (
	COORD_BATCH_SIZE = 1024
)

// findCoords collects every coordinate read into a z-order bitset and then
// emits, zoom by zoom in z-order, the ones found (present) or the ones in
// the zoom range that weren't (missing).
func findCoords(coordsChan <-chan []coord.Coord, outputChan chan<- []coord.Coord, min_zoom, max_zoom uint, present bool) {
	cs := coord.NewCoordSet()
	for coordArray := range coordsChan {
		for _, c := range coordArray {
			if c.Z >= min_zoom && c.Z <= max_zoom {
				cs.Set(c, true)
			}
		}
	}

	coords := make([]coord.Coord, 0, COORD_BATCH_SIZE)
	emit := func(c coord.Coord) bool {
		if cap(coords) == len(coords) {
			outputChan <- coords
			coords = make([]coord.Coord, 0, COORD_BATCH_SIZE)
		}
		coords = append(coords, c)
		return true
	}

	if present {
		for z := min_zoom; z <= max_zoom; z++ {
			cs.Each(z, emit)
		}
	} else {
		listGen := gen.NewMortonRange(min_zoom, max_zoom)
		for c := listGen.Next(); c != nil; c = listGen.Next() {
			if !cs.Get(*c) {
				emit(*c)
			}
		}
	}
	if len(coords) > 0 {
		outputChan <- coords
	}
	close(outputChan)
}

func printCoords(coordsChan <-chan []coord.Coord, doneChan chan<- error, output io.WriteCloser, compressOutput bool) {
	var err error
	var count int64

	if compressOutput {
		output = gzip.NewWriter(output)
	}

	// buffer output so we make fewer system calls.
	buf := bufio.NewWriter(output)
	for coordArray := range coordsChan {
		count += int64(len(coordArray))
		for _, coord := range coordArray {
			// don't immediately exit when we get an error - instead we want to train the coordsChan, so keep reading until the range is done, just don't write anything to the buffer.
			if err == nil {
				_, err = buf.WriteString(coord.String())
			}
			if err == nil {
				_, err = buf.WriteString("\n")
			}
		}
	}
	if flushErr := buf.Flush(); err == nil {
		err = flushErr
	}
	if compressOutput && err == nil {
		// note: can't defer this, as then it would execute after the doneChan write. because the doneChan write unblocks the main thread, which will then exit, this thread might not execute anything further. (this only happens on the compressed Writer because stdout doesn't need to be closed)
		err = output.Close()
	}
	if err == nil {
		fmt.Fprintf(os.Stderr, "%s coordinates written\n", humanize.Comma(count))
	}
	doneChan <- err
}

func main() {
	var bucket string
	var datePrefix string
	var concurrency, min_zoom, max_zoom uint
	var region string
	var present, compressOutput bool

	flag.StringVar(&bucket, "bucket", "", "s3 bucket containing tile listing from missing-meta-tiles-write command")
	flag.StringVar(&datePrefix, "date-prefix", "", "date prefix")
	flag.UintVar(&concurrency, "concurrency", 16, "number of goroutines listing bucket per hash prefix")
	flag.StringVar(&region, "region", "us-east-1", "region")
	flag.BoolVar(&present, "present", false, "If set, return tiles which are present rather than missing. Either way only tiles within the zoom range are returned, in z-order.")
	flag.UintVar(&min_zoom, "min-zoom", 0, "Minimum zoom to check for missing tiles (inclusive). (default 0)")
	flag.UintVar(&max_zoom, "max-zoom", 14, "Maximum zoom to check for missing tiles (inclusive, at most 16).")
	flag.BoolVar(&compressOutput, "compress-output", false, "If set, compress the output file with gzip.")

	flag.Parse()

	if bucket == "" || datePrefix == "" || concurrency == 0 {
		cmd.DieWithUsage()
	}

	if max_zoom < min_zoom {
		cmd.DieWithMessage("Max zoom must be >= min zoom.")
	}
	if max_zoom > coord.MaxCoordSetZoom {
		cmd.DieWithMessage("Max zoom must be <= %d.", coord.MaxCoordSetZoom)
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region:     &region,
		MaxRetries: aws.Int(10),
	}))
	svc := s3.New(sess)

	keysChan := make(chan string, concurrency)
	coordsChan := make(chan []coord.Coord, concurrency)
	doneChan := make(chan error)

	outputChan := make(chan []coord.Coord, concurrency)

	go listObjects(keysChan, svc, bucket, datePrefix)
	go readKey(keysChan, coordsChan, svc, bucket, concurrency)
	go findCoords(coordsChan, outputChan, min_zoom, max_zoom, present)
	go printCoords(outputChan, doneChan, os.Stdout, compressOutput)

	err := <-doneChan
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}
