package migration

import (
	"context"
	"fmt"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/placement"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

type pduEntry struct {
	pdu       source.PDU
	model     string
	placement placement.Placement
	placed    bool
	err       error
}

// pdusStage uploads PDU models, then PDUs, then mounts every PDU either at
// its rack units or, for zero-U PDUs, on the side of its rack.
type pdusStage struct{}

func (pdusStage) Name() string { return StagePDUs }

func (pdusStage) Run(ctx context.Context, s *State) error {
	pdus, err := s.source.PDUs(ctx)
	if err != nil {
		return err
	}

	entries := make([]pduEntry, 0, len(pdus))
	var models []*mapper.PDUModel
	byName := map[string]*mapper.PDUModel{}

	for _, pdu := range pdus {
		e := pduEntry{pdu: pdu, model: mapper.PDUModelName(pdu.Type)}
		if pdu.RackMounted() {
			e.placement, e.placed, e.err = s.placements.Resolve(ctx, pdu.ID)
			if e.err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
		entries = append(entries, e)

		if e.model == "" {
			continue
		}
		m, seen := byName[e.model]
		if !seen {
			m = &mapper.PDUModel{Name: e.model}
			byName[e.model] = m
			models = append(models, m)
		}
		if e.placed && m.Placement == nil {
			pl := e.placement
			m.Placement = &pl
		}
	}

	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.refs.MarkPDUModel(m.Name) {
			continue
		}
		o := Outcome{Stage: StagePDUs, Entity: d42.EntityPDUModel, Name: m.Name}
		s.upload(ctx, o, s.sink.PostPDUModel, m.Payload())
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StagePDUs, Entity: d42.EntityPDU, SourceID: e.pdu.ID}
		p, err := mapper.PDUPayload(e.pdu)
		if err != nil {
			s.skipErr(o, err)
			continue
		}
		o.Name = p.Get("name")

		id, ok := s.uploadForID(ctx, o, s.sink.PostPDU, p)
		if !ok {
			continue
		}
		s.refs.SetPDU(e.pdu.ID, id)

		s.mountPDU(ctx, e, o.Name)
	}
	return nil
}

// mountPDU mounts an uploaded PDU. A PDU whose rack units or zero-U rack
// cannot be read fails its mount only.
func (s *State) mountPDU(ctx context.Context, e pduEntry, name string) {
	o := Outcome{Stage: StagePDUs, Entity: d42.EntityPDUToRack, SourceID: e.pdu.ID, Name: name}
	pduID, ok := s.refs.PDU(e.pdu.ID)
	if !ok {
		return
	}

	switch {
	case e.err != nil:
		s.skipErr(o, fmt.Errorf("reading rack units: %w", e.err))
		return
	case e.placed:
		rackID, ok := s.refs.Rack(*e.pdu.RackID)
		if !ok {
			s.skip(o, fmt.Sprintf("rack %d was not migrated", *e.pdu.RackID))
			return
		}
		s.upload(ctx, o, s.sink.PostPDUToRack, mapper.PDURackPayload(pduID, rackID, e.model, e.placement))
		return
	}

	rtRack, ok, err := s.source.ZeroURack(ctx, e.pdu.ID)
	if err != nil {
		s.skipErr(o, fmt.Errorf("reading zero-U rack: %w", err))
		return
	}
	if !ok {
		return
	}
	rackID, ok := s.refs.Rack(rtRack)
	if !ok {
		s.skip(o, fmt.Sprintf("rack %d was not migrated", rtRack))
		return
	}
	s.upload(ctx, o, s.sink.PostPDUToRack, mapper.PDUZeroUPayload(pduID, rackID, e.model, s.opts.ZeroU))
}
