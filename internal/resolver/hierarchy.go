package resolver

import (
	"strings"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

// Options selects how RackTables locations and rows map onto Device42
// buildings and rooms.
type Options struct {
	// RowAsRoom maps rack rows to rooms instead of the rack row field.
	RowAsRoom bool
	// ChildAsBuilding maps every location, parented or not, to a building.
	ChildAsBuilding bool
}

type Room struct {
	Name     string
	Building string
}

// RackLocation is where a rack lives in the Device42 hierarchy. Row is only
// set when rows are not mapped to rooms.
type RackLocation struct {
	Building string
	Room     string
	Row      string
}

// Hierarchy reconciles RackTables locations and rows into Device42 buildings
// and rooms.
type Hierarchy struct {
	opts Options

	buildings []string
	rooms     []Room

	// location name -> enclosing building, for locations that became rooms
	roomBuilding map[string]string
	seenBuilding map[string]struct{}
	seenRoom     map[Room]struct{}
}

func NewHierarchy(opts Options, locations []source.Location) *Hierarchy {
	h := &Hierarchy{
		opts:         opts,
		roomBuilding: map[string]string{},
		seenBuilding: map[string]struct{}{},
		seenRoom:     map[Room]struct{}{},
	}

	for _, l := range locations {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}
		if opts.ChildAsBuilding || !l.HasParent() {
			h.addBuilding(name)
			continue
		}
		parent := strings.TrimSpace(*l.ParentName)
		h.roomBuilding[name] = parent
		h.addRoom(Room{Name: name, Building: parent})
	}
	return h
}

// AddRows registers rack rows as rooms. It is a no-op unless rows are mapped
// to rooms.
func (h *Hierarchy) AddRows(racks []source.Rack) {
	if !h.opts.RowAsRoom {
		return
	}
	for _, r := range racks {
		loc := h.Locate(r)
		if loc.Room == "" || loc.Building == "" {
			continue
		}
		h.addRoom(Room{Name: loc.Room, Building: loc.Building})
	}
}

func (h *Hierarchy) Buildings() []string {
	return append([]string(nil), h.buildings...)
}

// Rooms returns location rooms first, then row rooms, in discovery order.
func (h *Hierarchy) Rooms() []Room {
	return append([]Room(nil), h.rooms...)
}

// Locate returns the building, room and row a rack is uploaded under.
func (h *Hierarchy) Locate(r source.Rack) RackLocation {
	location := ""
	if r.LocationName != nil {
		location = strings.TrimSpace(*r.LocationName)
	}
	row := strings.TrimSpace(r.RowName)

	building := location
	parent, isRoom := h.roomBuilding[location]
	if isRoom {
		building = parent
	}

	if h.opts.RowAsRoom {
		return RackLocation{Building: building, Room: row}
	}
	if isRoom {
		return RackLocation{Building: building, Room: location, Row: row}
	}
	return RackLocation{Building: building, Row: row}
}

func (h *Hierarchy) addBuilding(name string) {
	if _, ok := h.seenBuilding[name]; ok {
		return
	}
	h.seenBuilding[name] = struct{}{}
	h.buildings = append(h.buildings, name)
}

func (h *Hierarchy) addRoom(r Room) {
	if _, ok := h.seenRoom[r]; ok {
		return
	}
	h.seenRoom[r] = struct{}{}
	h.rooms = append(h.rooms, r)
}
