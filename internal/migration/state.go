package migration

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/placement"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/resolver"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

// Source is the read side of a run. *source.Reader implements it.
type Source interface {
	Locations(ctx context.Context) ([]source.Location, error)
	Racks(ctx context.Context) ([]source.Rack, error)
	HardwareObjects(ctx context.Context) ([]source.HardwareObject, error)
	Objects(ctx context.Context) ([]source.Object, error)
	ObjectsByType(ctx context.Context, typeID int64) ([]source.NamedObject, error)
	ContainerLinks(ctx context.Context) ([]source.ContainerLink, error)
	RackSpace(ctx context.Context, objectID int64) ([]source.RackSpace, error)
	ZeroURack(ctx context.Context, objectID int64) (int64, bool, error)
	Ports(ctx context.Context) ([]source.Port, error)
	Links(ctx context.Context) ([]source.Link, error)
	Networks(ctx context.Context) ([]source.Network, error)
	Addresses(ctx context.Context) ([]source.Address, error)
	Allocations(ctx context.Context) ([]source.Allocation, error)
	PDUs(ctx context.Context) ([]source.PDU, error)
	PatchPanels(ctx context.Context) ([]source.PatchPanel, error)
}

type Options struct {
	Hierarchy resolver.Options
	// CreateAvailableIPs uploads every address of every subnet.
	CreateAvailableIPs bool
	ZeroU              mapper.ZeroUMount
}

// State is shared by the stages of one run.
type State struct {
	source     Source
	sink       d42.Sink
	opts       Options
	refs       *resolver.Context
	placements *placement.Resolver
	tracker    *Tracker
	log        *zap.SugaredLogger

	// loaded once, used by several stages
	racks   []source.Rack
	objects []source.Object
	ports   []source.Port
	layout  *resolver.Hierarchy
	catalog *mapper.HardwareCatalog
}

func NewState(src Source, sink d42.Sink, opts Options) *State {
	return &State{
		source:     src,
		sink:       sink,
		opts:       opts,
		refs:       resolver.NewContext(),
		placements: placement.NewResolver(src),
		tracker:    NewTracker(),
		log:        zap.S().Named("migration"),
	}
}

// Refs exposes the identifiers collected so far.
func (s *State) Refs() *resolver.Context {
	return s.refs
}

func (s *State) loadRacks(ctx context.Context) ([]source.Rack, error) {
	if s.racks != nil {
		return s.racks, nil
	}
	racks, err := s.source.Racks(ctx)
	if err != nil {
		return nil, err
	}
	s.racks = racks
	return racks, nil
}

func (s *State) loadObjects(ctx context.Context) ([]source.Object, error) {
	if s.objects != nil {
		return s.objects, nil
	}
	objects, err := s.source.Objects(ctx)
	if err != nil {
		return nil, err
	}
	s.objects = objects
	return objects, nil
}

func (s *State) loadPorts(ctx context.Context) ([]source.Port, error) {
	if s.ports != nil {
		return s.ports, nil
	}
	ports, err := s.source.Ports(ctx)
	if err != nil {
		return nil, err
	}
	s.ports = ports
	return ports, nil
}

type sendFunc func(ctx context.Context, p d42.Payload) (*d42.Response, error)

// upload sends one payload and records its outcome.
func (s *State) upload(ctx context.Context, o Outcome, send sendFunc, p d42.Payload) (*d42.Response, bool) {
	return s.send(ctx, o, send, p, false)
}

// uploadForID is upload for entities whose identifier is referenced later.
// A response without an identifier counts as a failure.
func (s *State) uploadForID(ctx context.Context, o Outcome, send sendFunc, p d42.Payload) (int64, bool) {
	resp, ok := s.send(ctx, o, send, p, true)
	if !ok {
		return 0, false
	}
	return resp.ID, true
}

func (s *State) send(ctx context.Context, o Outcome, send sendFunc, p d42.Payload, needID bool) (*d42.Response, bool) {
	resp, err := send(ctx, p)
	if err == nil && needID && !resp.HasID() {
		err = d42.NewErrMissingID(o.Entity)
	}
	if err != nil {
		o.Status = StatusFailed
		o.Reason = err.Error()
		s.log.Errorw("upload failed", "entity", o.Entity, "source_id", o.SourceID, "name", o.Name, "payload", p.String(), "error", err)
		s.tracker.Add(o)
		return nil, false
	}

	o.Status = StatusSuccess
	o.RemoteID = resp.ID
	o.Reason = resp.Message()
	s.log.Debugw("uploaded", "entity", o.Entity, "source_id", o.SourceID, "name", o.Name, "id", resp.ID)
	s.tracker.Add(o)
	return resp, true
}

// skip records a record that was not uploaded.
func (s *State) skip(o Outcome, reason string) {
	o.Status = StatusSkipped
	o.Reason = reason
	s.log.Warnw("skipped", "entity", o.Entity, "source_id", o.SourceID, "name", o.Name, "reason", reason)
	s.tracker.Add(o)
}

// skipErr records a record that could not be mapped. Missing fields are
// expected in RackTables data and count as skipped; anything else fails.
func (s *State) skipErr(o Outcome, err error) {
	var missing *mapper.ErrMissingField
	if errors.As(err, &missing) {
		s.skip(o, err.Error())
		return
	}
	o.Status = StatusFailed
	o.Reason = err.Error()
	s.log.Errorw("mapping failed", "entity", o.Entity, "source_id", o.SourceID, "error", err)
	s.tracker.Add(o)
}
