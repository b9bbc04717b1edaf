package mapper

import (
	"fmt"
	"strings"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/placement"
)

// hardwareTypeRack is the Device42 hardware type for rackable hardware.
const hardwareTypeRack = 1

// ParseModel splits a RackTables hardware type into vendor and model.
// "Acme%GPASS%Server1" gives Acme/Server1, "Dell PowerEdge R630" gives
// Dell/PowerEdge R630 and a single word is both vendor and model.
func ParseModel(s string) (vendor, model string) {
	if v, m, found := strings.Cut(s, tokenPass); found {
		vendor, model = CleanHardware(v), CleanHardware(m)
	} else {
		fields := strings.Fields(CleanHardware(s))
		switch len(fields) {
		case 0:
		case 1:
			vendor, model = fields[0], fields[0]
		default:
			vendor, model = fields[0], strings.Join(fields[1:], " ")
		}
	}

	switch {
	case vendor == "" && model == "":
		return "", ""
	case vendor == "":
		vendor = model
	case model == "":
		model = vendor
	}
	return vendor, Truncate(model, MaxModelName)
}

// GenericHardwareName names the placeholder model used for racked devices
// that carry no hardware type.
func GenericHardwareName(height int) string {
	return fmt.Sprintf("generic%dU", height)
}

type HardwareModel struct {
	Name         string
	Manufacturer string
	Notes        string
	Height       int
	Depth        placement.Depth
}

func (h HardwareModel) Payload() d42.Payload {
	p := d42.NewPayload().
		Set("name", Truncate(h.Name, MaxModelName)).
		SetInt("type", hardwareTypeRack)
	if h.Height > 0 {
		p.SetInt("size", h.Height)
	}
	if h.Depth > 0 {
		p.SetInt("depth", int(h.Depth))
	}
	p.SetIfNotEmpty("manufacturer", h.Manufacturer)
	p.SetIfNotEmpty("notes", h.Notes)
	return p
}

// HardwareCatalog collects hardware models keyed by model name. RackTables
// lets devices of the same model occupy different heights; the catalog keeps
// the smallest.
type HardwareCatalog struct {
	order  []string
	models map[string]*HardwareModel
}

func NewHardwareCatalog() *HardwareCatalog {
	return &HardwareCatalog{models: map[string]*HardwareModel{}}
}

// Add records one placed device of the given hardware type. It returns the
// model name, or false when the type does not parse to a model.
func (c *HardwareCatalog) Add(hwType, notes string, p placement.Placement) (string, bool) {
	vendor, model := ParseModel(hwType)
	if model == "" {
		return "", false
	}

	if m, ok := c.models[model]; ok {
		if p.Height > 0 && (m.Height == 0 || p.Height < m.Height) {
			m.Height = p.Height
		}
		return model, true
	}

	c.order = append(c.order, model)
	c.models[model] = &HardwareModel{
		Name:         model,
		Manufacturer: vendor,
		Notes:        CleanNotes(notes),
		Height:       p.Height,
		Depth:        p.Depth,
	}
	return model, true
}

// Models returns the collected models in first-seen order.
func (c *HardwareCatalog) Models() []HardwareModel {
	out := make([]HardwareModel, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.models[name])
	}
	return out
}

// Get returns the model collected under name.
func (c *HardwareCatalog) Get(name string) (HardwareModel, bool) {
	m, ok := c.models[name]
	if !ok {
		return HardwareModel{}, false
	}
	return *m, true
}

func (c *HardwareCatalog) Len() int {
	return len(c.order)
}
