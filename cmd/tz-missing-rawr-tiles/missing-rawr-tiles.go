package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/gojuno/morton/pkg/cmd"
	tzc "github.com/gojuno/morton/pkg/coord"
	"github.com/gojuno/morton/pkg/coord/cmp"
	"github.com/gojuno/morton/pkg/coord/gen"
	tzs3 "github.com/gojuno/morton/pkg/s3"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	rawrZoom   = 10
	parentZoom = 7
)

// parseRawrKey understands both the z-order layout written by
// MortonPathForCoord and the hashed z/x/y layout. The z-order layout is tried
// first, as an all-digit key of it would also parse as z/x/y.
func parseRawrKey(key string) *tzc.Coord {
	if c, err := tzs3.ParseMortonKey(key); err == nil {
		return c
	}
	if c, err := tzs3.ParseCoordFromKey(key); err == nil {
		return c
	}
	return nil
}

// missingByParent finds the rawr tiles absent from found and groups them by
// their parent tile. Parents come back in z-order, as do the children of each.
func missingByParent(found []tzc.Coord) ([]tzc.Coord, map[tzc.Coord][]tzc.Coord) {
	sort.Sort(tzc.ByMorton(found))

	expGen := gen.NewMortonRange(rawrZoom, rawrZoom)
	actGen := gen.NewSlice(found)
	missing := cmp.FindMissingTilesBy(expGen, actGen, tzc.Coord.LessMorton)

	var parents []tzc.Coord
	children := make(map[tzc.Coord][]tzc.Coord)
	for _, c := range missing {
		parent := c.ZoomTo(parentZoom)
		if _, ok := children[parent]; !ok {
			parents = append(parents, parent)
		}
		children[parent] = append(children[parent], c)
	}
	return parents, children
}

func main() {
	var bucket string
	var datePrefix string
	var region string
	var printZ10 bool

	flag.StringVar(&bucket, "bucket", "", "s3 bucket")
	flag.StringVar(&datePrefix, "date-prefix", "", "date prefix")
	flag.StringVar(&region, "region", "us-east-1", "region")
	flag.BoolVar(&printZ10, "z10", false, "print z10 coordinates that are missing")

	flag.Parse()

	if bucket == "" || datePrefix == "" {
		cmd.DieWithUsage()
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region:     &region,
		MaxRetries: aws.Int(3),
	}))
	svc := s3.New(sess)
	input := s3.ListObjectsInput{
		Bucket: &bucket,
		Prefix: &datePrefix,
	}
	var rawrCoords []tzc.Coord
	err := svc.ListObjectsPages(&input, func(output *s3.ListObjectsOutput, lastPage bool) bool {
		for _, obj := range output.Contents {
			if c := parseRawrKey(*obj.Key); c != nil && c.Z == rawrZoom {
				rawrCoords = append(rawrCoords, *c)
			}
		}
		return true
	})
	if err != nil {
		panic(err)
	}
	if len(rawrCoords) == 0 {
		fmt.Fprintf(os.Stderr, "No rawr tiles found!\n")
		os.Exit(2)
	}

	parents, children := missingByParent(rawrCoords)
	fmt.Fprintf(os.Stderr, "%s rawr tiles found, %s z%d parents with missing tiles\n",
		humanize.Comma(int64(len(rawrCoords))), humanize.Comma(int64(len(parents))), parentZoom)
	for _, parent := range parents {
		fmt.Println(parent)
		if printZ10 {
			for _, c := range children[parent] {
				fmt.Printf("  %s\n", c)
			}
		}
	}
}
