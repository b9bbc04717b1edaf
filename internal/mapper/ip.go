package mapper

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

// IPv4 converts a 32-bit network-order integer to dotted-quad form.
func IPv4(v uint32) string {
	return addr(v).String()
}

func addr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

func SubnetPayload(n source.Network) d42.Payload {
	p := d42.NewPayload().
		Set("network", IPv4(n.IP)).
		SetInt("mask_bits", n.Mask)
	p.SetIfNotEmpty("name", n.Name)
	return p
}

// EachAddress calls fn with every address of the network, network and
// broadcast addresses included. It stops at the first error fn returns.
func EachAddress(n source.Network, fn func(ip string) error) error {
	prefix, err := addr(n.IP).Prefix(n.Mask)
	if err != nil {
		return fmt.Errorf("network %d: %w", n.ID, err)
	}
	for a := prefix.Addr(); a.IsValid() && prefix.Contains(a); a = a.Next() {
		if err := fn(a.String()); err != nil {
			return err
		}
	}
	return nil
}

// AvailableIPPayload is the record for a generated address of a subnet.
func AvailableIPPayload(ip string, n source.Network) d42.Payload {
	p := d42.NewPayload().Set("ipaddress", ip)
	p.SetIfNotEmpty("subnet", n.Name)
	return p
}

func AddressPayload(a source.Address) d42.Payload {
	p := d42.NewPayload().Set("ipaddress", IPv4(a.IP))
	p.SetIfNotEmpty("tag", a.Name)
	return p
}

// AllocationPayload binds an address to its device. The device field is
// omitted when the owning object has no name.
func AllocationPayload(a source.Allocation) d42.Payload {
	p := d42.NewPayload().Set("ipaddress", IPv4(a.IP))
	p.SetIfNotEmpty("device", deref(a.Hostname))
	p.SetIfNotEmpty("tag", a.Name)
	return p
}
