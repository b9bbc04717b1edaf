package migration

import (
	"context"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

// hardwareStage uploads one hardware model per model name found on placed
// objects. The model height is the smallest height any of its devices
// occupies.
type hardwareStage struct{}

func (hardwareStage) Name() string { return StageHardware }

func (hardwareStage) Run(ctx context.Context, s *State) error {
	catalog, err := s.hardwareCatalog(ctx, StageHardware)
	if err != nil {
		return err
	}

	for _, m := range catalog.Models() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.uploadHardware(ctx, StageHardware, m)
	}
	return nil
}

// hardwareCatalog collects the models of every placed object, from the
// hardware type attribute and from the device attributes the devices stage
// reads its model from. It is built once per run.
func (s *State) hardwareCatalog(ctx context.Context, stage string) (*mapper.HardwareCatalog, error) {
	if s.catalog != nil {
		return s.catalog, nil
	}

	hardware, err := s.source.HardwareObjects(ctx)
	if err != nil {
		return nil, err
	}
	objects, err := s.loadObjects(ctx)
	if err != nil {
		return nil, err
	}

	catalog := mapper.NewHardwareCatalog()
	seen := make(map[int64]bool, len(hardware))
	add := func(id int64, hwType, notes string) error {
		if seen[id] {
			return nil
		}
		seen[id] = true

		pl, ok, err := s.placements.Resolve(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			o := Outcome{Stage: stage, Entity: d42.EntityHardware, SourceID: id}
			s.skipErr(o, err)
			return nil
		}
		if !ok {
			return nil
		}
		if _, ok := catalog.Add(hwType, notes, pl); !ok {
			s.log.Debugf("object %d: hardware type %q has no model name", id, hwType)
		}
		return nil
	}

	for _, hw := range hardware {
		notes := ""
		if hw.Description != nil {
			notes = *hw.Description
		}
		if err := add(hw.ID, hw.Type, notes); err != nil {
			return nil, err
		}
	}
	for _, obj := range objects {
		if obj.TypeID == source.TypeVM || obj.RackID == nil {
			continue
		}
		hwType, ok := obj.Attribute(source.AttrServerHW, source.AttrHWType)
		if !ok {
			continue
		}
		if err := add(obj.ID, hwType, ""); err != nil {
			return nil, err
		}
	}
	s.log.Infof("%d hardware models from %d objects", catalog.Len(), len(seen))

	s.catalog = catalog
	return catalog, nil
}

func (s *State) uploadHardware(ctx context.Context, stage string, m mapper.HardwareModel) bool {
	o := Outcome{Stage: stage, Entity: d42.EntityHardware, Name: m.Name}
	if _, ok := s.upload(ctx, o, s.sink.PostHardware, m.Payload()); !ok {
		return false
	}
	s.refs.MarkHardware(m.Name)
	return true
}
