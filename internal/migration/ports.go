package migration

import (
	"context"
	"strings"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/links"
)

// portsStage uploads the switchports of networked devices. Each cable is
// uploaded once from each end; the cable id is attached to every switchport
// record that carries one.
type portsStage struct{}

func (portsStage) Name() string { return StagePorts }

func (portsStage) Run(ctx context.Context, s *State) error {
	ports, err := s.loadPorts(ctx)
	if err != nil {
		return err
	}
	cables, err := s.source.Links(ctx)
	if err != nil {
		return err
	}
	objects, err := s.loadObjects(ctx)
	if err != nil {
		return err
	}

	engine := links.NewEngine(ports, cables)
	for _, obj := range objects {
		if !links.Networked(obj.TypeID) || obj.Name == nil {
			continue
		}
		name := strings.TrimSpace(*obj.Name)
		if name == "" {
			continue
		}
		for _, r := range engine.Records(obj.ID, name) {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.uploadSwitchport(ctx, r)
		}
	}
	return nil
}

func (s *State) uploadSwitchport(ctx context.Context, r links.Record) {
	o := Outcome{Stage: StagePorts, Entity: d42.EntitySwitchport, SourceID: r.PortID, Name: r.Switch + "/" + r.Port}
	if r.Cable == "" {
		s.upload(ctx, o, s.sink.PostSwitchport, r.Payload())
		return
	}

	id, ok := s.uploadForID(ctx, o, s.sink.PostSwitchport, r.Payload())
	if !ok {
		return
	}
	co := Outcome{Stage: StagePorts, Entity: d42.EntitySwitchportCF, SourceID: r.PortID, Name: r.Cable}
	s.upload(ctx, co, s.sink.PutSwitchportCustomField, links.CablePayload(id, r.Cable))
}
