package source

import "strings"

// RackTables object type codes (Dictionary keys of chapter "ObjectType").
const (
	TypePDU        int64 = 2
	TypeServer     int64 = 4
	TypeRouter     int64 = 7
	TypeSwitch     int64 = 8
	TypePatchPanel int64 = 9
	TypeChassis    int64 = 1502
	TypeVM         int64 = 1504
	TypeVMHost     int64 = 1505
)

// Attribute ids used by the migration.
const (
	AttrHardwareType int64 = 2
	AttrPortCount    int64 = 6
)

// Attribute names consulted for devices.
const (
	AttrOS       = "Operating System"
	AttrSWType   = "SW type"
	AttrServerHW = "Server Hardware"
	AttrHWType   = "HW type"
)

// excludedDeviceTypes are object types that are not migrated as devices:
// PDUs and patch panels have their own stages, VM clusters are uploaded as
// virtual hosts, the rest are racks, rows and locations.
var excludedDeviceTypes = []int64{TypePDU, TypePatchPanel, TypeVMHost, 1560, 1561, 1562, 50275}

// NetworkedTypes are the object types whose ports are migrated as switchports.
var NetworkedTypes = []int64{TypeSwitch, TypeRouter, TypeServer, 445, 1055, 1644, TypeChassis}

type Atom string

const (
	AtomFront    Atom = "front"
	AtomInterior Atom = "interior"
	AtomRear     Atom = "rear"
)

type Location struct {
	ID         int64   `db:"id"`
	Name       string  `db:"name"`
	ParentID   *int64  `db:"parent_id"`
	ParentName *string `db:"parent_name"`
}

func (l Location) HasParent() bool {
	return l.ParentName != nil && strings.TrimSpace(*l.ParentName) != ""
}

type Rack struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Height       int     `db:"height"`
	RowID        *int64  `db:"row_id"`
	RowName      string  `db:"row_name"`
	LocationID   *int64  `db:"location_id"`
	LocationName *string `db:"location_name"`
}

// HardwareObject is an object carrying a hardware type attribute.
type HardwareObject struct {
	ID          int64   `db:"id"`
	TypeID      int64   `db:"objtype_id"`
	Description *string `db:"description"`
	Label       *string `db:"label"`
	AssetNo     *string `db:"asset_no"`
	Type        string  `db:"hw_type"`
}

// Object is a migratable device. Attributes maps attribute name to its
// resolved value (dictionary value for dictionary attributes).
type Object struct {
	ID         int64             `db:"id"`
	TypeID     int64             `db:"objtype_id"`
	Name       *string           `db:"name"`
	Label      *string           `db:"label"`
	AssetNo    *string           `db:"asset_no"`
	Comment    *string           `db:"comment"`
	RackID     *int64            `db:"rack_id"`
	Attributes map[string]string `db:"-"`
}

// Attribute returns the first non-empty value among names.
func (o Object) Attribute(names ...string) (string, bool) {
	for _, n := range names {
		if v, ok := o.Attributes[n]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

type attributeRow struct {
	ObjectID int64  `db:"object_id"`
	Name     string `db:"attr_name"`
	Value    string `db:"attr_value"`
}

// NamedObject is an (id, name) pair used for chassis and virtual hosts.
type NamedObject struct {
	ID   int64   `db:"id"`
	Name *string `db:"name"`
}

type ContainerLink struct {
	ParentID int64 `db:"parent_id"`
	ChildID  int64 `db:"child_id"`
}

type RackSpace struct {
	ObjectID int64 `db:"object_id"`
	RackID   int64 `db:"rack_id"`
	UnitNo   int   `db:"unit_no"`
	Atom     Atom  `db:"atom"`
}

type Port struct {
	ID             int64   `db:"id"`
	Name           string  `db:"name"`
	Label          string  `db:"label"`
	OuterInterface string  `db:"oif_name"`
	ObjectID       int64   `db:"object_id"`
	ObjectName     *string `db:"object_name"`
	L2Address      string  `db:"l2address"`
}

// Link is an undirected cable between two ports.
type Link struct {
	PortA int64   `db:"porta"`
	PortB int64   `db:"portb"`
	Cable *string `db:"cable"`
}

// Network is an IPv4 network; IP is the network address as a 32-bit integer
// in network byte order.
type Network struct {
	ID   int64  `db:"id"`
	IP   uint32 `db:"ip"`
	Mask int    `db:"mask"`
	Name string `db:"name"`
}

type Address struct {
	IP      uint32 `db:"ip"`
	Name    string `db:"name"`
	Comment string `db:"comment"`
}

// Allocation binds an address to an object interface.
type Allocation struct {
	IP       uint32  `db:"ip"`
	ObjectID int64   `db:"object_id"`
	Name     string  `db:"name"`
	Hostname *string `db:"hostname"`
}

type PDU struct {
	ID      int64   `db:"id"`
	Name    *string `db:"name"`
	AssetNo *string `db:"asset_no"`
	Comment *string `db:"comment"`
	Type    string  `db:"pdu_type"`
	Atom    *string `db:"atom"`
	RackID  *int64  `db:"rack_id"`
}

// RackMounted is true when the PDU occupies rack units.
func (p PDU) RackMounted() bool {
	return p.Atom != nil && *p.Atom != "" && p.RackID != nil
}

type PatchPanel struct {
	ID        int64   `db:"id"`
	Name      *string `db:"name"`
	PortCount *int64  `db:"port_count"`
}
