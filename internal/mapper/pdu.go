package mapper

import (
	"strings"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/placement"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

const (
	WhereMounted = "mounted"
	WhereLeft    = "left"
	WhereRight   = "right"
	WhereAbove   = "above"
	WhereBelow   = "below"

	OrientationFront = "front"
	OrientationBack  = "back"
)

// ZeroUMount is where zero-U PDUs are attached to their rack.
type ZeroUMount struct {
	Where       string
	Orientation string
}

// NewZeroUMount normalizes configured values, falling back to left/front.
func NewZeroUMount(where, orientation string) ZeroUMount {
	m := ZeroUMount{Where: WhereLeft, Orientation: OrientationFront}
	switch w := strings.ToLower(strings.TrimSpace(where)); w {
	case WhereLeft, WhereRight, WhereAbove, WhereBelow:
		m.Where = w
	}
	switch o := strings.ToLower(strings.TrimSpace(orientation)); o {
	case OrientationFront, OrientationBack:
		m.Orientation = o
	}
	return m
}

// PDUModelName cleans a PDU type into a model name.
func PDUModelName(pduType string) string {
	return Truncate(strings.TrimSpace(strings.ReplaceAll(pduType, tokenPass, " ")), MaxPDUModelName)
}

// PDUModel is a PDU model with the geometry of its first rack-mounted
// instance, if any.
type PDUModel struct {
	Name      string
	Placement *placement.Placement
}

func (m PDUModel) Payload() d42.Payload {
	p := d42.NewPayload().Set("name", m.Name).Set("pdu_model", m.Name)
	if m.Placement != nil {
		p.SetInt("size", m.Placement.Height)
		p.SetInt("depth", int(m.Placement.Depth))
	}
	return p
}

func PDUPayload(pdu source.PDU) (d42.Payload, error) {
	name := deref(pdu.Name)
	if name == "" {
		return nil, NewErrMissingField("pdu", pdu.ID, "name")
	}
	p := d42.NewPayload().Set("name", name)
	p.SetIfNotEmpty("notes", CleanNotes(deref(pdu.Comment)))
	p.SetIfNotEmpty("pdu_model", PDUModelName(pdu.Type))
	return p, nil
}

// PDURackPayload mounts a rack-mounted PDU at its placement.
func PDURackPayload(pduID, rackID int64, model string, pl placement.Placement) d42.Payload {
	p := d42.NewPayload().
		SetInt64("pdu_id", pduID).
		SetInt64("rack_id", rackID).
		Set("where", WhereMounted).
		SetInt("start_at", pl.Floor).
		Set("orientation", orientation(pl.Mount))
	p.SetIfNotEmpty("pdu_model", model)
	return p
}

// PDUZeroUPayload attaches a zero-U PDU to the side of its rack.
func PDUZeroUPayload(pduID, rackID int64, model string, m ZeroUMount) d42.Payload {
	p := d42.NewPayload().
		SetInt64("pdu_id", pduID).
		SetInt64("rack_id", rackID).
		Set("where", m.Where).
		Set("orientation", m.Orientation)
	p.SetIfNotEmpty("pdu_model", model)
	return p
}

func orientation(m placement.Mount) string {
	if m == placement.MountRear {
		return OrientationBack
	}
	return OrientationFront
}
