// Package ids generates entity identities.
//
// Identities are prefix-<suffix>. Prefixes keep them readable in CLI output:
// ch-..., sec-..., blk-..., lib-..., cond-....
package ids

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixChapter      = "ch"
	PrefixSection      = "sec"
	PrefixBlock        = "blk"
	PrefixComponent    = "lib"
	PrefixPreCondition = "cond"
)

// Generator hands out identities that are unique for the life of the process.
type Generator interface {
	New(prefix string) string
}

// UUID returns random (v4) identities.
type UUID struct{}

func (UUID) New(prefix string) string {
	return join(prefix, uuid.NewString())
}

// Sequence returns <unixms>_<n> identities from a monotonically increasing counter.
// The counter alone guarantees uniqueness; the timestamp only aids reading logs.
type Sequence struct {
	n   atomic.Uint64
	now func() time.Time
}

// NewSequence returns a Sequence using now for timestamps (time.Now when nil).
func NewSequence(now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{now: now}
}

func (s *Sequence) New(prefix string) string {
	n := s.n.Add(1)
	ms := s.now().UTC().UnixMilli()
	return join(prefix, strconv.FormatInt(ms, 10)+"_"+strconv.FormatUint(n, 10))
}

func join(prefix, suffix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return suffix
	}
	return prefix + "-" + suffix
}

var (
	defaultMu  sync.RWMutex
	defaultGen Generator = UUID{}
)

// Default returns the process-wide generator.
func Default() Generator {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultGen
}

// SetDefault replaces the process-wide generator. Nil restores UUID.
func SetDefault(g Generator) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if g == nil {
		g = UUID{}
	}
	defaultGen = g
}

// New returns an identity from the process-wide generator.
func New(prefix string) string {
	return Default().New(prefix)
}
