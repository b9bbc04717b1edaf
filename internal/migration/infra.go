package migration

import (
	"context"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/resolver"
)

// buildingsStage uploads buildings and rooms. Buildings that already exist
// in Device42 are left alone.
type buildingsStage struct{}

func (buildingsStage) Name() string { return StageBuildings }

func (buildingsStage) Run(ctx context.Context, s *State) error {
	h, err := s.hierarchy(ctx)
	if err != nil {
		return err
	}

	existing, err := s.sink.Buildings(ctx)
	if err != nil {
		s.log.Warnf("cannot list existing buildings, uploading all: %v", err)
	}
	for _, b := range existing {
		s.refs.MarkBuilding(b.Name)
	}

	for _, name := range h.Buildings() {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StageBuildings, Entity: d42.EntityBuilding, Name: name}
		if s.refs.HasBuilding(name) {
			s.skip(o, "building exists in Device42")
			continue
		}
		if _, ok := s.upload(ctx, o, s.sink.PostBuilding, mapper.BuildingPayload(name)); ok {
			s.refs.MarkBuilding(name)
		}
	}

	for _, room := range h.Rooms() {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StageBuildings, Entity: d42.EntityRoom, Name: room.Building + "/" + room.Name}
		s.upload(ctx, o, s.sink.PostRoom, mapper.RoomPayload(room))
	}
	return nil
}

// racksStage uploads racks and fills the rack map. Racks that already exist
// in Device42 under the same name are updated in place.
type racksStage struct{}

func (racksStage) Name() string { return StageRacks }

func (racksStage) Run(ctx context.Context, s *State) error {
	h, err := s.hierarchy(ctx)
	if err != nil {
		return err
	}

	existing, err := s.sink.Racks(ctx)
	if err != nil {
		s.log.Warnf("cannot list existing racks, creating all: %v", err)
	}
	for _, r := range existing {
		s.refs.SeedExistingRack(r.Name, r.ID)
	}

	racks, err := s.loadRacks(ctx)
	if err != nil {
		return err
	}
	for _, rack := range racks {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StageRacks, Entity: d42.EntityRack, SourceID: rack.ID, Name: rack.Name}

		existingID, _ := s.refs.ExistingRack(rack.Name)
		p, err := mapper.RackPayload(rack, h.Locate(rack), existingID)
		if err != nil {
			s.skipErr(o, err)
			continue
		}
		if id, ok := s.uploadForID(ctx, o, s.sink.PostRack, p); ok {
			s.refs.SetRack(rack.ID, id)
		}
	}
	return nil
}

// hierarchy builds the building and room layout from locations and racks.
func (s *State) hierarchy(ctx context.Context) (*resolver.Hierarchy, error) {
	if s.layout != nil {
		return s.layout, nil
	}
	locations, err := s.source.Locations(ctx)
	if err != nil {
		return nil, err
	}
	racks, err := s.loadRacks(ctx)
	if err != nil {
		return nil, err
	}

	h := resolver.NewHierarchy(s.opts.Hierarchy, locations)
	h.AddRows(racks)
	s.layout = h
	return h, nil
}
