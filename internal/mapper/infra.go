package mapper

import (
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/resolver"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

func BuildingPayload(name string) d42.Payload {
	return d42.NewPayload().Set("name", name)
}

func RoomPayload(room resolver.Room) d42.Payload {
	return d42.NewPayload().Set("name", room.Name).Set("building", room.Building)
}

// RackPayload builds the rack record. existingID is the id of a rack that
// already exists in Device42 under the same name, or 0; sending it updates
// that rack instead of creating a duplicate.
func RackPayload(rack source.Rack, loc resolver.RackLocation, existingID int64) (d42.Payload, error) {
	if rack.Name == "" {
		return nil, NewErrMissingField("rack", rack.ID, "name")
	}
	p := d42.NewPayload().
		Set("name", rack.Name).
		SetInt("size", rack.Height)
	if existingID > 0 {
		p.SetInt64("rack_id", existingID)
	}
	p.SetIfNotEmpty("building", loc.Building)
	p.SetIfNotEmpty("room", loc.Room)
	p.SetIfNotEmpty("row", Truncate(loc.Row, MaxRowName))
	return p, nil
}
