// Package placement derives where an object sits in a rack from the rack
// units and faces it occupies.
package placement

import (
	"context"
	"sync"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

type Depth int

const (
	DepthFull Depth = 1
	DepthHalf Depth = 2
)

type Mount string

const (
	MountFront Mount = "front"
	MountRear  Mount = "rear"
)

// Placement is the 0-based starting unit, the height in units, the depth and
// the face an object is mounted on.
type Placement struct {
	Floor  int
	Height int
	Depth  Depth
	Mount  Mount
}

// Compute classifies rack space rows by occupied faces. ok is false when the
// rows are empty or the face combination does not describe a mountable
// object (only interior, or front and rear without interior).
func Compute(rows []source.RackSpace) (Placement, bool) {
	if len(rows) == 0 {
		return Placement{}, false
	}

	var front, interior, rear int
	floor := rows[0].UnitNo
	for _, r := range rows {
		if r.UnitNo < floor {
			floor = r.UnitNo
		}
		switch r.Atom {
		case source.AtomFront:
			front++
		case source.AtomInterior:
			interior++
		case source.AtomRear:
			rear++
		}
	}

	p := Placement{Floor: floor - 1, Depth: DepthHalf, Mount: MountFront}
	switch {
	case front > 0 && interior > 0 && rear > 0:
		p.Depth = DepthFull
		p.Height = front
	case front > 0 && interior > 0:
		p.Height = front
	case interior > 0 && rear > 0 && front == 0:
		p.Height = rear
		p.Mount = MountRear
	case front > 0 && interior == 0 && rear == 0:
		p.Height = front
	case rear > 0 && interior == 0 && front == 0:
		p.Height = rear
		p.Mount = MountRear
	default:
		return Placement{}, false
	}
	return p, true
}

// Source reads the rack space rows of one object.
type Source interface {
	RackSpace(ctx context.Context, objectID int64) ([]source.RackSpace, error)
}

type result struct {
	placement Placement
	ok        bool
}

// Resolver computes placements on demand and caches them per object for the
// lifetime of a run.
type Resolver struct {
	src Source

	mu    sync.Mutex
	cache map[int64]result
}

func NewResolver(src Source) *Resolver {
	return &Resolver{src: src, cache: map[int64]result{}}
}

func (r *Resolver) Resolve(ctx context.Context, objectID int64) (Placement, bool, error) {
	r.mu.Lock()
	if res, found := r.cache[objectID]; found {
		r.mu.Unlock()
		return res.placement, res.ok, nil
	}
	r.mu.Unlock()

	rows, err := r.src.RackSpace(ctx, objectID)
	if err != nil {
		return Placement{}, false, err
	}
	p, ok := Compute(rows)

	r.mu.Lock()
	r.cache[objectID] = result{placement: p, ok: ok}
	r.mu.Unlock()
	return p, ok, nil
}
