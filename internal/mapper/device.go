package mapper

import (
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/placement"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

type Role string

const (
	RoleSwitch  Role = "switch"
	RoleChassis Role = "chassis"
	RoleBlade   Role = "blade"
	RoleVirtual Role = "virtual"
	RoleGeneric Role = "generic"
)

const yes = "yes"

// Hosts resolves the containers of blades and virtual machines.
type Hosts interface {
	BladeHost(objectID int64) (string, bool)
	VirtualHost(objectID int64) (string, bool)
	IsVMHost(objectID int64) bool
}

// Classify derives the device role from the RackTables object type. A server
// is a blade only when its container is a known chassis.
func Classify(o source.Object, hosts Hosts) Role {
	switch o.TypeID {
	case source.TypeSwitch:
		return RoleSwitch
	case source.TypeChassis:
		return RoleChassis
	case source.TypeVM:
		return RoleVirtual
	case source.TypeServer:
		if _, ok := hosts.BladeHost(o.ID); ok {
			return RoleBlade
		}
	}
	return RoleGeneric
}

// Device is a RackTables object reduced to the fields Device42 accepts.
type Device struct {
	ID       int64
	TypeID   int64
	Name     string
	Role     Role
	SerialNo string
	OS       string
	Hardware string
	Notes    string
	RackID   *int64
}

// NewDevice extracts the device fields from o. Objects without a name cannot
// be migrated.
func NewDevice(o source.Object, hosts Hosts) (Device, error) {
	name := deref(o.Name)
	if name == "" {
		return Device{}, NewErrMissingField("device", o.ID, "name")
	}

	d := Device{
		ID:       o.ID,
		TypeID:   o.TypeID,
		Name:     name,
		Role:     Classify(o, hosts),
		SerialNo: deref(o.AssetNo),
		Notes:    CleanNotes(deref(o.Comment)),
		RackID:   o.RackID,
	}
	if v, ok := o.Attribute(source.AttrOS, source.AttrSWType); ok {
		d.OS = StripPlaceholders(v)
	}
	if d.Role != RoleVirtual {
		if v, ok := o.Attribute(source.AttrServerHW, source.AttrHWType); ok {
			_, d.Hardware = ParseModel(v)
		}
	}
	return d, nil
}

// Racked reports whether the device can be mounted in a rack at all.
func (d Device) Racked() bool {
	return d.Role != RoleVirtual && d.RackID != nil
}

// Payload builds the device record. mounted is true when the device will be
// mounted in a resolved rack; it defaults the type to physical.
func (d Device) Payload(hosts Hosts, mounted bool) d42.Payload {
	p := d42.NewPayload().Set("name", d.Name)
	p.SetIfNotEmpty("serial_no", d.SerialNo)
	p.SetIfNotEmpty("os", d.OS)
	p.SetIfNotEmpty("notes", d.Notes)
	if d.Hardware != "" {
		p.Set("hardware", Truncate(d.Hardware, MaxModelName))
	}
	if hosts.IsVMHost(d.ID) {
		p.Set("is_it_virtual_host", yes)
	}

	switch d.Role {
	case RoleSwitch:
		p.Set("is_it_switch", yes)
	case RoleChassis:
		p.Set("is_it_blade_host", yes)
	case RoleBlade:
		if host, ok := hosts.BladeHost(d.ID); ok {
			p.Set("type", "blade")
			p.Set("blade_host", host)
		}
	case RoleVirtual:
		p.Set("type", "virtual")
		p.Delete("hardware")
		if host, ok := hosts.VirtualHost(d.ID); ok {
			p.Set("virtual_host", host)
		}
	}

	if !p.Has("type") && mounted {
		p.Set("type", "physical")
	}
	return p
}

// RackPayload mounts the device at the 0-based floor of pl.
func (d Device) RackPayload(rackID int64, hardware string, pl placement.Placement) d42.Payload {
	p := d42.NewPayload().
		Set("device", d.Name).
		SetInt64("rack_id", rackID).
		SetInt("start_at", pl.Floor)
	if hardware != "" {
		p.Set("hw_model", Truncate(hardware, MaxModelName))
	}
	return p
}

// ChassisPayload is the record uploaded for a blade chassis before any blade
// references it.
func ChassisPayload(name string) d42.Payload {
	return d42.NewPayload().Set("name", name).Set("is_it_blade_host", yes)
}

func VMHostPayload(name string) d42.Payload {
	return d42.NewPayload().Set("name", name).Set("is_it_virtual_host", yes)
}
