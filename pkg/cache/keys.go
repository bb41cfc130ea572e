package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a negotiated layout of some data.
	LayoutKey(dataHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides data that change a layout.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
	// Options is a canonical encoding of the remaining negotiation options.
	Options    string
	StartIndex int
}

// ArtifactKeyOpts are the render inputs besides the layout.
type ArtifactKeyOpts struct {
	Format string
	Title  string
	Marks  bool
}

// DefaultKeyer hashes key inputs with SHA-256. Prefix scopes the keys, so
// several charts or tenants can share one backend.
type DefaultKeyer struct {
	Prefix string
}

// NewDefaultKeyer creates an unscoped keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// NewPrefixKeyer creates a keyer whose keys all start with prefix.
func NewPrefixKeyer(prefix string) Keyer { return DefaultKeyer{Prefix: prefix} }

// LayoutKey implements Keyer.
func (k DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	h := sha256.New()
	writeFields(h,
		dataHash,
		strconv.FormatFloat(opts.Width, 'g', -1, 64),
		strconv.FormatFloat(opts.Height, 'g', -1, 64),
		strconv.Itoa(opts.StartIndex),
		opts.Options,
	)
	return k.key("layout", h)
}

// ArtifactKey implements Keyer.
func (k DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	h := sha256.New()
	writeFields(h, layoutHash, opts.Format, opts.Title, strconv.FormatBool(opts.Marks))
	return k.key("artifact", h)
}

func (k DefaultKeyer) key(kind string, h hash.Hash) string {
	return k.Prefix + kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// writeFields writes length-prefixed fields so that no two field lists
// encode the same.
func writeFields(h hash.Hash, fields ...string) {
	for _, f := range fields {
		fmt.Fprintf(h, "%d:%s;", len(f), f)
	}
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
