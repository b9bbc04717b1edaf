package source

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func getTemplate(name string) (string, error) {
	content, err := templateFS.ReadFile("templates/" + name + ".sql.tmpl")
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	return string(content), nil
}

// QueryBuilder renders the RackTables queries from the embedded templates.
// Values that vary per call are bound as ? placeholders; templates only
// carry the fixed type and attribute codes.
type QueryBuilder struct {
	cache map[string]string
}

func NewBuilder() *QueryBuilder {
	return &QueryBuilder{cache: map[string]string{}}
}

type queryParams struct {
	ExcludedTypes []int64
	TypeID        int64
	AttrID        int64
}

func (b *QueryBuilder) LocationsQuery() (string, error) {
	return b.build("locations", nil)
}

func (b *QueryBuilder) RacksQuery() (string, error) {
	return b.build("racks", nil)
}

func (b *QueryBuilder) HardwareQuery() (string, error) {
	return b.build("hardware", queryParams{ExcludedTypes: excludedDeviceTypes, AttrID: AttrHardwareType})
}

func (b *QueryBuilder) ObjectsQuery() (string, error) {
	return b.build("objects", queryParams{ExcludedTypes: excludedDeviceTypes})
}

func (b *QueryBuilder) ObjectAttributesQuery() (string, error) {
	return b.build("object_attributes", nil)
}

// ObjectsByTypeQuery takes the object type as its only argument.
func (b *QueryBuilder) ObjectsByTypeQuery() (string, error) {
	return b.build("objects_by_type", nil)
}

func (b *QueryBuilder) ContainerLinksQuery() (string, error) {
	return b.build("container_links", nil)
}

// RackSpaceQuery takes the object id as its only argument.
func (b *QueryBuilder) RackSpaceQuery() (string, error) {
	return b.build("rack_space", nil)
}

// ZeroURackQuery takes the object id as its only argument.
func (b *QueryBuilder) ZeroURackQuery() (string, error) {
	return b.build("zero_u_rack", nil)
}

func (b *QueryBuilder) PortsQuery() (string, error) {
	return b.build("ports", nil)
}

func (b *QueryBuilder) LinksQuery() (string, error) {
	return b.build("links", nil)
}

func (b *QueryBuilder) NetworksQuery() (string, error) {
	return b.build("networks", nil)
}

func (b *QueryBuilder) AddressesQuery() (string, error) {
	return b.build("addresses", nil)
}

func (b *QueryBuilder) AllocationsQuery() (string, error) {
	return b.build("allocations", nil)
}

func (b *QueryBuilder) PDUsQuery() (string, error) {
	return b.build("pdus", queryParams{TypeID: TypePDU, AttrID: AttrHardwareType})
}

func (b *QueryBuilder) PatchPanelsQuery() (string, error) {
	return b.build("patch_panels", queryParams{TypeID: TypePatchPanel, AttrID: AttrPortCount})
}

func (b *QueryBuilder) build(name string, params any) (string, error) {
	if q, ok := b.cache[name]; ok {
		return q, nil
	}

	content, err := getTemplate(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(template.FuncMap{"join": joinInts}).Parse(content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", err
	}

	q := strings.TrimSpace(buf.String())
	b.cache[name] = q
	return q, nil
}

func joinInts(values []int64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	return strings.Join(parts, ",")
}
