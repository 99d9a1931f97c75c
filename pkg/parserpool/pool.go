// Package parserpool provides a pool of gnparser instances for
// concurrent name parsing. This is a pure package - parsing is
// computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Pool provides a pool of gnparser instances used to recover a genus
// from a scientific name when the provider record lacks one.
type Pool interface {
	// Genus parses a scientific name string and returns its genus,
	// or an empty string when the name cannot be parsed to a genus.
	// This method is safe for concurrent use.
	Genus(name string) string

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// poolImpl implements the Pool interface using gnparser.NewPool.
// Harvests target plant families, so parsers use the botanical code.
type poolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// New creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func New(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Botanical),
	)
	ch := gnparser.NewPool(cfg, poolSize)

	return &poolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

// Genus parses the name with a pooled parser and extracts the genus as
// the first word of the simple canonical form. Uninomials above genus
// rank yield an empty string.
func (p *poolImpl) Genus(name string) string {
	if name == "" {
		return ""
	}

	// Get a parser from the pool (blocks if all parsers are busy)
	parser := <-p.ch
	res := parser.ParseName(name)
	p.ch <- parser

	if !res.Parsed || res.Canonical == nil {
		return ""
	}
	// A cardinality of 1 means a bare uninomial, which may be any
	// rank; only multi-word names identify a genus reliably.
	if res.Cardinality < 2 {
		return ""
	}
	genus, _, _ := strings.Cut(res.Canonical.Simple, " ")
	return genus
}

// Close shuts down the parser pool and drains remaining parsers.
func (p *poolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
