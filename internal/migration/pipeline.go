package migration

import (
	"fmt"

	"github.com/thoas/go-funk"
)

const (
	StageSubnets     = "subnets"
	StageAddresses   = "addresses"
	StageBuildings   = "buildings"
	StageRacks       = "racks"
	StageHardware    = "hardware"
	StageContainers  = "containers"
	StagePDUs        = "pdus"
	StagePatchPanels = "patch-panels"
	StageDevices     = "devices"
	StagePorts       = "ports"
	StageAllocations = "allocations"
)

// StageNames lists every stage in the order it runs. Later stages reference
// identifiers created by earlier ones.
var StageNames = []string{
	StageSubnets,
	StageAddresses,
	StageBuildings,
	StageRacks,
	StageHardware,
	StageContainers,
	StagePDUs,
	StagePatchPanels,
	StageDevices,
	StagePorts,
	StageAllocations,
}

func newStage(name string) Stage {
	switch name {
	case StageSubnets:
		return subnetsStage{}
	case StageAddresses:
		return addressesStage{}
	case StageBuildings:
		return buildingsStage{}
	case StageRacks:
		return racksStage{}
	case StageHardware:
		return hardwareStage{}
	case StageContainers:
		return containersStage{}
	case StagePDUs:
		return pdusStage{}
	case StagePatchPanels:
		return patchPanelsStage{}
	case StageDevices:
		return devicesStage{}
	case StagePorts:
		return portsStage{}
	case StageAllocations:
		return allocationsStage{}
	}
	return nil
}

// NewPipeline registers the selected stages in dependency order, whatever
// order they were given in. No selection means every stage.
func NewPipeline(only ...string) (*Engine, error) {
	for _, name := range only {
		if !funk.ContainsString(StageNames, name) {
			return nil, fmt.Errorf("unknown stage %q", name)
		}
	}

	e := NewEngine()
	for _, name := range StageNames {
		if len(only) > 0 && !funk.ContainsString(only, name) {
			continue
		}
		e.Register(newStage(name))
	}
	return e, nil
}
