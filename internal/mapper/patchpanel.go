package mapper

import (
	"fmt"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

const (
	PanelSingular = "singular"
	PanelModular  = "modular"
)

// ModuleModel is one group of same-type ports on a modular panel.
type ModuleModel struct {
	Name     string
	PortType string
	Ports    int
}

func (m ModuleModel) Payload() d42.Payload {
	return d42.NewPayload().
		Set("name", m.Name).
		Set("port_type", m.PortType).
		SetInt("number_of_ports", m.Ports).
		SetInt("number_of_ports_in_row", m.Ports)
}

type PanelLayout struct {
	Type     string
	PortType string
	Ports    int
	Modules  []ModuleModel
}

// ClassifyPanel groups the panel ports by the 12 character prefix of their
// outer interface. One group makes a singular panel, several a modular one
// with a module model per group.
func ClassifyPanel(panel source.PatchPanel, ports []source.Port) PanelLayout {
	layout := PanelLayout{Type: PanelSingular, Ports: len(ports)}
	if panel.PortCount != nil && *panel.PortCount > 0 {
		layout.Ports = int(*panel.PortCount)
	}
	if len(ports) == 0 {
		return layout
	}

	var order []string
	counts := map[string]int{}
	for _, p := range ports {
		t := Truncate(p.OuterInterface, MaxPortType)
		if _, ok := counts[t]; !ok {
			order = append(order, t)
		}
		counts[t]++
	}

	if len(order) == 1 {
		layout.PortType = order[0]
		return layout
	}

	layout.Type = PanelModular
	for _, t := range order {
		layout.Modules = append(layout.Modules, ModuleModel{
			Name:     ModuleModelName(t, counts[t]),
			PortType: t,
			Ports:    counts[t],
		})
	}
	return layout
}

func ModuleModelName(portType string, ports int) string {
	return fmt.Sprintf("%s x%d", portType, ports)
}

func PatchPanelPayload(panel source.PatchPanel, layout PanelLayout) (d42.Payload, error) {
	name := deref(panel.Name)
	if name == "" {
		return nil, NewErrMissingField("patch panel", panel.ID, "name")
	}
	p := d42.NewPayload().
		Set("name", name).
		Set("type", layout.Type).
		SetInt("number_of_ports", layout.Ports).
		SetInt("number_of_ports_in_row", layout.Ports)
	if layout.Type == PanelSingular {
		p.SetIfNotEmpty("port_type", layout.PortType)
	}
	return p, nil
}
