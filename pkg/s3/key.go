package s3

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tzc "github.com/gojuno/morton/pkg/coord"
)

// specific logic around s3, eg understanding our tile paths and
// prefixes for different types of buckets

// ParseCoordFromKey parses a coordinate from an s3 path.
func ParseCoordFromKey(key string) (*tzc.Coord, error) {
	// this can probably be made more general if needed, but right
	// now just making it work for our known cases

	// sanity check to see if it's even possible
	if len(key) < 4 {
		return nil, errors.New("Too few characters")
	}
	// assume that we have an extension that we're trimming off
	extIdx := strings.LastIndexByte(key, '.')
	if extIdx < 0 {
		return nil, errors.New("Missing extension")
	}

	var slashCount uint
	var idx int
	for idx = extIdx - 1; idx >= 0; idx-- {
		if key[idx] == '/' {
			slashCount++
			if slashCount == 3 {
				break
			}
		}
	}
	if slashCount == 3 || (slashCount == 2 && idx == -1) {
		coordStr := key[idx+1 : extIdx]
		return tzc.Decode(coordStr)
	}
	return nil, errors.New("Missing fields")
}

// HashString returns the first 5 characters of the md5 hash.
// This is what gets used as s3 path prefixes.
func HashString(s string) string {
	// returns the 5 char hash for a particular string
	md5Hash := md5.Sum([]byte(s))
	if len(md5Hash) < 3 {
		panic(errors.New("Invalid md5 hash"))
	}
	hex := fmt.Sprintf("%x", md5Hash)
	hash := hex[:5]
	return hash
}

func hashPathForCoord(datePrefix string, coord tzc.Coord) string {
	pathToHash := fmt.Sprintf("%d/%d/%d.zip", coord.Z, coord.X, coord.Y)
	hash := HashString(pathToHash)
	return fmt.Sprintf("%s/%s/%s", hash, datePrefix, pathToHash)
}

// MetaTileHashPathForCoord returns the hashed s3 path for metatiles.
func MetaTileHashPathForCoord(datePrefix string, coord tzc.Coord) string {
	return hashPathForCoord(datePrefix, coord)
}

// RawrTileHashPathForCoord returns the hashed s3 path for rawr tiles.
// Rawr and meta tiles currently share a layout.
func RawrTileHashPathForCoord(datePrefix string, coord tzc.Coord) string {
	return hashPathForCoord(datePrefix, coord)
}

// MortonPathForCoord returns an unhashed path keyed by the tile's Z-order
// key: <prefix>/<z>/<16 hex digits>.zip. A lexical listing of one zoom walks
// its tiles in Z-order, so spatially close tiles list together.
func MortonPathForCoord(prefix string, coord tzc.Coord) string {
	return prefix + "/" + MortonKeyForCoord(coord)
}

// MortonKeyForCoord returns the prefix-free part of MortonPathForCoord,
// <z>/<16 hex digits>.zip.
func MortonKeyForCoord(coord tzc.Coord) string {
	return fmt.Sprintf("%d/%016x.zip", coord.Z, coord.Morton())
}

// ParseMortonKey parses a coordinate from a path made by MortonPathForCoord.
func ParseMortonKey(key string) (*tzc.Coord, error) {
	extIdx := strings.LastIndexByte(key, '.')
	if extIdx < 0 {
		return nil, errors.New("Missing extension")
	}
	keyIdx := strings.LastIndexByte(key[:extIdx], '/')
	if keyIdx < 0 {
		return nil, errors.New("Missing fields")
	}
	zoomIdx := strings.LastIndexByte(key[:keyIdx], '/')
	zoomStr := key[zoomIdx+1 : keyIdx]
	hexStr := key[keyIdx+1 : extIdx]
	if len(hexStr) != 16 {
		return nil, fmt.Errorf("Invalid morton key: %#v", hexStr)
	}
	z, err := strconv.ParseUint(zoomStr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("Invalid z: %#v %s", zoomStr, err)
	}
	if z > 32 {
		return nil, fmt.Errorf("Invalid z: %d > 32", z)
	}
	mortonKey, err := strconv.ParseUint(hexStr, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid morton key: %#v %s", hexStr, err)
	}
	if z < 32 && mortonKey>>(2*z) != 0 {
		return nil, fmt.Errorf("Morton key %s is outside zoom %d", hexStr, z)
	}
	c := tzc.FromMorton(uint(z), mortonKey)
	return &c, nil
}
