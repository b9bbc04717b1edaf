package migration

import (
	"context"
	"fmt"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/placement"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

// devicesStage uploads devices and mounts the placed ones in their racks.
// A placed device whose hardware model was not uploaded by the hardware
// stage gets its model uploaded first, at the height the catalog settled on;
// one without any hardware type is mounted with a generic model of its
// height.
type devicesStage struct{}

func (devicesStage) Name() string { return StageDevices }

func (devicesStage) Run(ctx context.Context, s *State) error {
	objects, err := s.loadObjects(ctx)
	if err != nil {
		return err
	}
	catalog, err := s.hardwareCatalog(ctx, StageDevices)
	if err != nil {
		return err
	}

	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.migrateDevice(ctx, obj, catalog)
	}
	return nil
}

func (s *State) migrateDevice(ctx context.Context, obj source.Object, catalog *mapper.HardwareCatalog) {
	o := Outcome{Stage: StageDevices, Entity: d42.EntityDevice, SourceID: obj.ID}
	d, err := mapper.NewDevice(obj, s.refs)
	if err != nil {
		s.skipErr(o, err)
		return
	}
	o.Name = d.Name
	mo := Outcome{Stage: StageDevices, Entity: d42.EntityDeviceToRack, SourceID: obj.ID, Name: d.Name}

	var (
		rackID   int64
		pl       placement.Placement
		mounted  bool
		reason   string
		mountErr error
	)
	if d.Racked() {
		var rackOK, placed bool
		rackID, rackOK = s.refs.Rack(*d.RackID)
		pl, placed, mountErr = s.placements.Resolve(ctx, d.ID)
		switch {
		case mountErr != nil:
		case !rackOK:
			reason = fmt.Sprintf("rack %d was not migrated", *d.RackID)
		case !placed:
			reason = "rack units do not describe a mountable position"
		default:
			mounted = true
		}
	}

	if mounted {
		s.ensureHardware(ctx, obj, &d, pl, catalog)
	}

	if _, ok := s.upload(ctx, o, s.sink.PostDevice, d.Payload(s.refs, mounted)); !ok {
		return
	}

	switch {
	case mounted:
		s.upload(ctx, mo, s.sink.PostDeviceToRack, d.RackPayload(rackID, d.Hardware, pl))
	case mountErr != nil:
		s.skipErr(mo, fmt.Errorf("reading rack units: %w", mountErr))
	case reason != "":
		s.skip(mo, reason)
	}
}

// ensureHardware uploads the model a mounted device refers to when no
// earlier upload did.
func (s *State) ensureHardware(ctx context.Context, obj source.Object, d *mapper.Device, pl placement.Placement, catalog *mapper.HardwareCatalog) {
	if d.Hardware == "" {
		d.Hardware = mapper.GenericHardwareName(pl.Height)
	}
	if s.refs.HasHardware(d.Hardware) {
		return
	}
	if m, ok := catalog.Get(d.Hardware); ok {
		s.uploadHardware(ctx, StageDevices, m)
		return
	}

	vendor := ""
	if hwType, ok := obj.Attribute(source.AttrServerHW, source.AttrHWType); ok {
		vendor, _ = mapper.ParseModel(hwType)
	}
	s.uploadHardware(ctx, StageDevices, mapper.HardwareModel{
		Name:         d.Hardware,
		Manufacturer: vendor,
		Height:       pl.Height,
		Depth:        pl.Depth,
	})
}
