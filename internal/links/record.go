package links

import (
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
)

const cableFieldKey = "cable_id"

// Record is one switchport as seen from the device that owns it.
type Record struct {
	PortID       int64
	Port         string
	Switch       string
	Label        string
	MAC          string
	RemoteDevice string
	RemotePort   string
	Cable        string
	// Mirrored is set on the record emitted from the partner's side.
	Mirrored bool
}

func (r Record) Linked() bool {
	return r.RemoteDevice != ""
}

func (r Record) Payload() d42.Payload {
	p := d42.NewPayload().
		Set("port", r.Port).
		Set("switch", r.Switch)
	p.SetIfNotEmpty("label", r.Label)
	p.SetIfNotEmpty("hwaddress", r.MAC)
	if r.Linked() {
		p.Set("device", r.RemoteDevice)
		p.Set("remote_device", r.RemoteDevice)
		p.SetIfNotEmpty("remote_port", r.RemotePort)
	}
	return p
}

// CablePayload attaches the cable id to an uploaded switchport.
func CablePayload(switchportID int64, cable string) d42.Payload {
	return d42.NewPayload().
		SetInt64("id", switchportID).
		Set("key", cableFieldKey).
		Set("value", cable)
}
