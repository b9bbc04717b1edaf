// Package links rebuilds cable connections between ports and turns them into
// Device42 switchport records.
package links

import (
	"strings"

	"github.com/thoas/go-funk"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

// Networked reports whether ports of the given object type are migrated.
func Networked(typeID int64) bool {
	return funk.ContainsInt64(source.NetworkedTypes, typeID)
}

type linkKey struct {
	low, high int64
}

func keyOf(l source.Link) linkKey {
	if l.PortA < l.PortB {
		return linkKey{l.PortA, l.PortB}
	}
	return linkKey{l.PortB, l.PortA}
}

// Engine indexes ports and links. Links are stored undirected in RackTables,
// so a port is looked up on both ends.
type Engine struct {
	ports   map[int64]source.Port
	byOwner map[int64][]source.Port
	asB     map[int64]source.Link
	asA     map[int64]source.Link
	emitted map[linkKey]struct{}
}

func NewEngine(ports []source.Port, links []source.Link) *Engine {
	e := &Engine{
		ports:   make(map[int64]source.Port, len(ports)),
		byOwner: map[int64][]source.Port{},
		asB:     map[int64]source.Link{},
		asA:     map[int64]source.Link{},
		emitted: map[linkKey]struct{}{},
	}
	for _, p := range ports {
		e.ports[p.ID] = p
		e.byOwner[p.ObjectID] = append(e.byOwner[p.ObjectID], p)
	}
	// first row wins when a port appears in several links
	for _, l := range links {
		if _, ok := e.asB[l.PortB]; !ok {
			e.asB[l.PortB] = l
		}
		if _, ok := e.asA[l.PortA]; !ok {
			e.asA[l.PortA] = l
		}
	}
	return e
}

func (e *Engine) Ports(objectID int64) []source.Port {
	return e.byOwner[objectID]
}

// Partner returns the port at the other end of portID's link. The port is
// looked up as portb first, then as porta.
func (e *Engine) Partner(portID int64) (source.Port, source.Link, bool) {
	var partnerID int64
	l, ok := e.asB[portID]
	if ok {
		partnerID = l.PortA
	} else if l, ok = e.asA[portID]; ok {
		partnerID = l.PortB
	} else {
		return source.Port{}, source.Link{}, false
	}

	partner, ok := e.ports[partnerID]
	if !ok {
		return source.Port{}, source.Link{}, false
	}
	return partner, l, true
}

// Records returns the switchport records for the ports of one device. A
// linked port yields a forward and a mirrored record the first time its link
// is seen; a port whose link was already emitted from the other end yields
// nothing. An unlinked port yields a single record with local fields only.
func (e *Engine) Records(objectID int64, deviceName string) []Record {
	var out []Record
	for _, p := range e.byOwner[objectID] {
		local := Record{
			PortID: p.ID,
			Port:   p.Name,
			Switch: deviceName,
			Label:  p.Label,
			MAC:    p.L2Address,
		}

		partner, link, ok := e.Partner(p.ID)
		remote := ""
		if ok && partner.ObjectName != nil {
			remote = strings.TrimSpace(*partner.ObjectName)
		}
		if remote == "" {
			out = append(out, local)
			continue
		}

		key := keyOf(link)
		if _, done := e.emitted[key]; done {
			continue
		}
		e.emitted[key] = struct{}{}

		cable := ""
		if link.Cable != nil {
			cable = strings.TrimSpace(*link.Cable)
		}

		local.RemoteDevice = remote
		local.RemotePort = partner.Name
		local.Cable = cable

		out = append(out, local, Record{
			PortID:       partner.ID,
			Port:         partner.Name,
			Switch:       remote,
			Label:        partner.Label,
			MAC:          partner.L2Address,
			RemoteDevice: deviceName,
			RemotePort:   p.Name,
			Cable:        cable,
			Mirrored:     true,
		})
	}
	return out
}
