package migration

import (
	"context"
	"strings"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

// containersStage records which object contains which and uploads the
// chassis and VM hosts so that blades and virtual machines can reference
// them by name.
type containersStage struct{}

func (containersStage) Name() string { return StageContainers }

func (containersStage) Run(ctx context.Context, s *State) error {
	links, err := s.source.ContainerLinks(ctx)
	if err != nil {
		return err
	}
	for _, l := range links {
		s.refs.SetContainer(l.ChildID, l.ParentID)
	}

	chassis, err := s.source.ObjectsByType(ctx, source.TypeChassis)
	if err != nil {
		return err
	}
	for _, c := range chassis {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StageContainers, Entity: d42.EntityDevice, SourceID: c.ID}
		name := hostName(c)
		if name == "" {
			s.skipErr(o, mapper.NewErrMissingField("chassis", c.ID, "name"))
			continue
		}
		o.Name = name
		s.refs.SetChassis(c.ID, name)
		s.upload(ctx, o, s.sink.PostDevice, mapper.ChassisPayload(name))
	}

	hosts, err := s.source.ObjectsByType(ctx, source.TypeVMHost)
	if err != nil {
		return err
	}
	for _, h := range hosts {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StageContainers, Entity: d42.EntityDevice, SourceID: h.ID}
		name := hostName(h)
		if name == "" {
			s.skipErr(o, mapper.NewErrMissingField("virtual host", h.ID, "name"))
			continue
		}
		o.Name = name
		s.refs.SetVMHost(h.ID, name)
		s.upload(ctx, o, s.sink.PostDevice, mapper.VMHostPayload(name))
	}
	return nil
}

func hostName(o source.NamedObject) string {
	if o.Name == nil {
		return ""
	}
	return strings.TrimSpace(*o.Name)
}
