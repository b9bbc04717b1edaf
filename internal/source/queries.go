package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// Locations returns every location with its parent, if any.
func (r *Reader) Locations(ctx context.Context) ([]Location, error) {
	var results []Location
	if err := r.selectAll(ctx, &results, r.builder.LocationsQuery); err != nil {
		return nil, fmt.Errorf("scanning locations: %w", err)
	}
	return results, nil
}

func (r *Reader) Racks(ctx context.Context) ([]Rack, error) {
	var results []Rack
	if err := r.selectAll(ctx, &results, r.builder.RacksQuery); err != nil {
		return nil, fmt.Errorf("scanning racks: %w", err)
	}
	return results, nil
}

// HardwareObjects returns the migratable objects that carry a hardware type.
func (r *Reader) HardwareObjects(ctx context.Context) ([]HardwareObject, error) {
	var results []HardwareObject
	if err := r.selectAll(ctx, &results, r.builder.HardwareQuery); err != nil {
		return nil, fmt.Errorf("scanning hardware: %w", err)
	}
	return results, nil
}

// Objects returns the migratable devices with their attributes resolved by
// attribute name.
func (r *Reader) Objects(ctx context.Context) ([]Object, error) {
	var objects []Object
	if err := r.selectAll(ctx, &objects, r.builder.ObjectsQuery); err != nil {
		return nil, fmt.Errorf("scanning objects: %w", err)
	}

	var attrs []attributeRow
	if err := r.selectAll(ctx, &attrs, r.builder.ObjectAttributesQuery); err != nil {
		return nil, fmt.Errorf("scanning object attributes: %w", err)
	}

	byObject := make(map[int64]map[string]string, len(objects))
	for _, a := range attrs {
		m, ok := byObject[a.ObjectID]
		if !ok {
			m = map[string]string{}
			byObject[a.ObjectID] = m
		}
		if _, seen := m[a.Name]; !seen {
			m[a.Name] = a.Value
		}
	}

	for i := range objects {
		if m, ok := byObject[objects[i].ID]; ok {
			objects[i].Attributes = m
		} else {
			objects[i].Attributes = map[string]string{}
		}
	}
	return objects, nil
}

func (r *Reader) ObjectsByType(ctx context.Context, typeID int64) ([]NamedObject, error) {
	var results []NamedObject
	if err := r.selectAll(ctx, &results, r.builder.ObjectsByTypeQuery, typeID); err != nil {
		return nil, fmt.Errorf("scanning objects of type %d: %w", typeID, err)
	}
	return results, nil
}

// ContainerLinks returns object to object containment (blade in chassis,
// VM in host).
func (r *Reader) ContainerLinks(ctx context.Context) ([]ContainerLink, error) {
	var results []ContainerLink
	if err := r.selectAll(ctx, &results, r.builder.ContainerLinksQuery); err != nil {
		return nil, fmt.Errorf("scanning container links: %w", err)
	}
	return results, nil
}

func (r *Reader) RackSpace(ctx context.Context, objectID int64) ([]RackSpace, error) {
	var results []RackSpace
	if err := r.selectAll(ctx, &results, r.builder.RackSpaceQuery, objectID); err != nil {
		return nil, fmt.Errorf("scanning rack space of object %d: %w", objectID, err)
	}
	return results, nil
}

// ZeroURack returns the rack a zero-U object is attached to.
func (r *Reader) ZeroURack(ctx context.Context, objectID int64) (int64, bool, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, false, err
	}
	q, err := r.builder.ZeroURackQuery()
	if err != nil {
		return 0, false, fmt.Errorf("building zero-U query: %w", err)
	}

	var rackID int64
	err = db.QueryRowContext(ctx, q, objectID).Scan(&rackID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("scanning zero-U rack of object %d: %w", objectID, err)
	}
	return rackID, true, nil
}

func (r *Reader) Ports(ctx context.Context) ([]Port, error) {
	var results []Port
	if err := r.selectAll(ctx, &results, r.builder.PortsQuery); err != nil {
		return nil, fmt.Errorf("scanning ports: %w", err)
	}
	return results, nil
}

func (r *Reader) Links(ctx context.Context) ([]Link, error) {
	var results []Link
	if err := r.selectAll(ctx, &results, r.builder.LinksQuery); err != nil {
		return nil, fmt.Errorf("scanning links: %w", err)
	}
	return results, nil
}

func (r *Reader) Networks(ctx context.Context) ([]Network, error) {
	var results []Network
	if err := r.selectAll(ctx, &results, r.builder.NetworksQuery); err != nil {
		return nil, fmt.Errorf("scanning networks: %w", err)
	}
	return results, nil
}

// Addresses returns the named IPv4 addresses.
func (r *Reader) Addresses(ctx context.Context) ([]Address, error) {
	var results []Address
	if err := r.selectAll(ctx, &results, r.builder.AddressesQuery); err != nil {
		return nil, fmt.Errorf("scanning addresses: %w", err)
	}
	return results, nil
}

func (r *Reader) Allocations(ctx context.Context) ([]Allocation, error) {
	var results []Allocation
	if err := r.selectAll(ctx, &results, r.builder.AllocationsQuery); err != nil {
		return nil, fmt.Errorf("scanning allocations: %w", err)
	}
	return results, nil
}

func (r *Reader) PDUs(ctx context.Context) ([]PDU, error) {
	var results []PDU
	if err := r.selectAll(ctx, &results, r.builder.PDUsQuery); err != nil {
		return nil, fmt.Errorf("scanning pdus: %w", err)
	}
	return results, nil
}

func (r *Reader) PatchPanels(ctx context.Context) ([]PatchPanel, error) {
	var results []PatchPanel
	if err := r.selectAll(ctx, &results, r.builder.PatchPanelsQuery); err != nil {
		return nil, fmt.Errorf("scanning patch panels: %w", err)
	}
	return results, nil
}

func (r *Reader) selectAll(ctx context.Context, dst any, build func() (string, error), args ...any) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	q, err := build()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}
	return sqlscan.Select(ctx, db, dst, q, args...)
}
