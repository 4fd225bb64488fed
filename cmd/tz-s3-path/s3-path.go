package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gojuno/morton/pkg/cmd"
	"github.com/gojuno/morton/pkg/coord"
	"github.com/gojuno/morton/pkg/s3"
)

func main() {
	var bucket string
	var prefix string
	var rawr bool
	var mortonPath bool
	var tileStr string

	flag.StringVar(&bucket, "bucket", "", "s3 bucket")
	flag.StringVar(&prefix, "prefix", "", "s3 bucket prefix")
	flag.StringVar(&tileStr, "tile", "", "tile coordinate")
	flag.BoolVar(&rawr, "rawr", false, "generate rawr path")
	flag.BoolVar(&mortonPath, "morton", false, "generate unhashed path keyed by the tile's z-order key")

	flag.Parse()

	if prefix == "" || tileStr == "" {
		cmd.DieWithUsage()
	}

	c, err := coord.Decode(tileStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid tile %s: %s\n", tileStr, err)
		cmd.DieWithUsage()
	}

	if rawr && mortonPath {
		cmd.DieWithMessage("-rawr and -morton are exclusive")
	}

	var path string
	if mortonPath {
		path = s3.MortonPathForCoord(prefix, *c)
	} else if rawr {
		path = s3.RawrTileHashPathForCoord(prefix, *c)
	} else {
		path = s3.MetaTileHashPathForCoord(prefix, *c)
	}

	if bucket != "" {
		fmt.Printf("s3://%s/%s\n", bucket, path)
	} else {
		fmt.Printf("%s\n", path)
	}
}
