package migration

import (
	"context"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

// patchPanelsStage uploads patch panels. The module models of a modular
// panel are uploaded before the panel itself.
type patchPanelsStage struct{}

func (patchPanelsStage) Name() string { return StagePatchPanels }

func (patchPanelsStage) Run(ctx context.Context, s *State) error {
	panels, err := s.source.PatchPanels(ctx)
	if err != nil {
		return err
	}
	ports, err := s.loadPorts(ctx)
	if err != nil {
		return err
	}

	byOwner := map[int64][]source.Port{}
	for _, p := range ports {
		byOwner[p.ObjectID] = append(byOwner[p.ObjectID], p)
	}

	for _, panel := range panels {
		if err := ctx.Err(); err != nil {
			return err
		}
		layout := mapper.ClassifyPanel(panel, byOwner[panel.ID])

		o := Outcome{Stage: StagePatchPanels, Entity: d42.EntityPatchPanel, SourceID: panel.ID}
		p, err := mapper.PatchPanelPayload(panel, layout)
		if err != nil {
			s.skipErr(o, err)
			continue
		}
		o.Name = p.Get("name")

		for _, m := range layout.Modules {
			if !s.refs.MarkModuleModel(m.Name) {
				continue
			}
			mo := Outcome{Stage: StagePatchPanels, Entity: d42.EntityPatchPanelModule, SourceID: panel.ID, Name: m.Name}
			s.upload(ctx, mo, s.sink.PostPatchPanelModuleModel, m.Payload())
		}

		s.upload(ctx, o, s.sink.PostPatchPanel, p)
	}
	return nil
}
