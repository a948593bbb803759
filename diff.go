package shapediff

import (
	"fmt"

	"github.com/npillmayer/shapediff/glyph"
)

// GlyphDiff is a glyph position at which the runs of both shapers differ.
// A or B is nil if the respective run is shorter.
type GlyphDiff struct {
	Index int
	A, B  *glyph.Record
}

func (d GlyphDiff) String() string {
	rec := func(r *glyph.Record) string {
		if r == nil {
			return "-"
		}
		return r.String()
	}
	return fmt.Sprintf("glyph[%d]: %s ≠ %s", d.Index, rec(d.A), rec(d.B))
}

// Fields names the record fields which differ: gid, cluster, advance, offset.
func (d GlyphDiff) Fields() []string {
	if d.A == nil || d.B == nil {
		return []string{"missing"}
	}
	var f []string
	if d.A.GID != d.B.GID {
		f = append(f, "gid")
	}
	if d.A.Cluster != d.B.Cluster {
		f = append(f, "cluster")
	}
	if d.A.XAdvance != d.B.XAdvance || d.A.YAdvance != d.B.YAdvance {
		f = append(f, "advance")
	}
	if d.A.XOffset != d.B.XOffset || d.A.YOffset != d.B.YOffset {
		f = append(f, "offset")
	}
	return f
}

// Diff compares both runs index by index.
func (r *Result) Diff() []GlyphDiff {
	return DiffRuns(r.RunA, r.RunB)
}

// Identical is true if both shapers produced the same glyph run.
func (r *Result) Identical() bool {
	return len(r.Diff()) == 0
}

// DiffRuns compares two glyph runs index by index. No alignment is
// attempted: after an inserted or dropped glyph all later positions differ.
func DiffRuns(a, b []glyph.Record) []GlyphDiff {
	var diffs []GlyphDiff
	for i := 0; i < max(len(a), len(b)); i++ {
		d := GlyphDiff{Index: i}
		if i < len(a) {
			d.A = &a[i]
		}
		if i < len(b) {
			d.B = &b[i]
		}
		if d.A != nil && d.B != nil && *d.A == *d.B {
			continue
		}
		diffs = append(diffs, d)
	}
	return diffs
}
