package mapper_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/placement"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/resolver"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

func portsOf(types ...string) []source.Port {
	out := make([]source.Port, 0, len(types))
	for i, t := range types {
		out = append(out, source.Port{ID: int64(i + 1), Name: "p", OuterInterface: t})
	}
	return out
}

var _ = Describe("patch panels", func() {
	panel := source.PatchPanel{ID: 1, Name: ptr("pp01")}

	It("is singular when every port shares a type", func() {
		layout := mapper.ClassifyPanel(panel, portsOf("RJ45", "RJ45", "RJ45"))

		Expect(layout.Type).To(Equal(mapper.PanelSingular))
		Expect(layout.PortType).To(Equal("RJ45"))
		Expect(layout.Modules).To(BeEmpty())

		p, err := mapper.PatchPanelPayload(panel, layout)
		Expect(err).To(BeNil())
		Expect(p.Get("type")).To(Equal("singular"))
		Expect(p.Get("port_type")).To(Equal("RJ45"))
		Expect(p.Get("number_of_ports")).To(Equal("3"))
	})

	It("is modular with a module per port type", func() {
		layout := mapper.ClassifyPanel(panel, portsOf("RJ45", "LC"))

		Expect(layout.Type).To(Equal(mapper.PanelModular))
		Expect(layout.Modules).To(Equal([]mapper.ModuleModel{
			{Name: "RJ45 x1", PortType: "RJ45", Ports: 1},
			{Name: "LC x1", PortType: "LC", Ports: 1},
		}))

		p, err := mapper.PatchPanelPayload(panel, layout)
		Expect(err).To(BeNil())
		Expect(p.Get("type")).To(Equal("modular"))
		Expect(p.Has("port_type")).To(BeFalse())
	})

	It("compares only the first 12 characters of the interface", func() {
		layout := mapper.ClassifyPanel(panel, portsOf("1000Base-T (A)", "1000Base-T (B)"))
		Expect(layout.Type).To(Equal(mapper.PanelSingular))
		Expect(layout.PortType).To(Equal("1000Base-T ("))
	})

	It("prefers the port count attribute", func() {
		withCount := source.PatchPanel{ID: 2, Name: ptr("pp02"), PortCount: ptr(int64(24))}
		layout := mapper.ClassifyPanel(withCount, portsOf("RJ45"))
		Expect(layout.Ports).To(Equal(24))
	})

	It("requires a name", func() {
		_, err := mapper.PatchPanelPayload(source.PatchPanel{ID: 3}, mapper.PanelLayout{Type: mapper.PanelSingular})
		Expect(err).NotTo(BeNil())
	})
})

var _ = Describe("pdus", func() {
	It("cleans and truncates the model name", func() {
		Expect(mapper.PDUModelName("APC%GPASS%AP7941")).To(Equal("APC AP7941"))
		Expect(mapper.PDUModelName(strings.Repeat("p", 70))).To(HaveLen(64))
	})

	It("builds pdu and model records", func() {
		p, err := mapper.PDUPayload(source.PDU{ID: 1, Name: ptr("pdu01"), Comment: ptr("a\nb"), Type: "APC AP7941"})
		Expect(err).To(BeNil())
		Expect(p.Get("pdu_model")).To(Equal("APC AP7941"))
		Expect(p.Get("notes")).To(Equal("a b"))

		m := mapper.PDUModel{Name: "APC AP7941", Placement: &placement.Placement{Height: 1, Depth: placement.DepthHalf}}.Payload()
		Expect(m.Get("pdu_model")).To(Equal("APC AP7941"))
		Expect(m.Get("size")).To(Equal("1"))
		Expect(m.Get("depth")).To(Equal("2"))

		zero := mapper.PDUModel{Name: "Strip"}.Payload()
		Expect(zero.Has("size")).To(BeFalse())
	})

	It("requires a name", func() {
		_, err := mapper.PDUPayload(source.PDU{ID: 1})
		Expect(err).NotTo(BeNil())
	})

	It("mounts rear mounted pdus facing back", func() {
		p := mapper.PDURackPayload(3, 17, "APC", placement.Placement{Floor: 0, Height: 1, Mount: placement.MountRear})
		Expect(p.Get("where")).To(Equal("mounted"))
		Expect(p.Get("start_at")).To(Equal("0"))
		Expect(p.Get("orientation")).To(Equal("back"))
	})

	DescribeTable("zero-U mount configuration",
		func(where, orientation, wantWhere, wantOrientation string) {
			m := mapper.NewZeroUMount(where, orientation)
			Expect(m.Where).To(Equal(wantWhere))
			Expect(m.Orientation).To(Equal(wantOrientation))
		},
		Entry("valid values", "Right", "back", "right", "back"),
		Entry("invalid values fall back", "sideways", "up", "left", "front"),
		Entry("empty values fall back", "", "", "left", "front"),
	)

	It("attaches zero-U pdus without a start unit", func() {
		p := mapper.PDUZeroUPayload(3, 17, "", mapper.NewZeroUMount("above", "front"))
		Expect(p.Get("where")).To(Equal("above"))
		Expect(p.Has("start_at")).To(BeFalse())
		Expect(p.Has("pdu_model")).To(BeFalse())
	})
})

var _ = Describe("infrastructure", func() {
	It("builds the rack for DC1/R1", func() {
		rack := source.Rack{ID: 1, Name: "R1", Height: 42, LocationName: ptr("DC1")}
		h := resolver.NewHierarchy(resolver.Options{}, []source.Location{{ID: 1, Name: "DC1"}})

		p, err := mapper.RackPayload(rack, h.Locate(rack), 0)
		Expect(err).To(BeNil())
		Expect(p.Get("name")).To(Equal("R1"))
		Expect(p.Get("size")).To(Equal("42"))
		Expect(p.Get("building")).To(Equal("DC1"))
		Expect(p.Has("rack_id")).To(BeFalse())
		Expect(p.Has("row")).To(BeFalse())
	})

	It("truncates rows and updates existing racks", func() {
		rack := source.Rack{ID: 1, Name: "R1", Height: 42, RowName: "Row-Alpha-Long"}
		p, err := mapper.RackPayload(rack, resolver.RackLocation{Building: "DC1", Row: rack.RowName}, 9)
		Expect(err).To(BeNil())
		Expect(p.Get("row")).To(Equal("Row-Alpha-"))
		Expect(p.Get("rack_id")).To(Equal("9"))
	})

	It("builds rooms", func() {
		p := mapper.RoomPayload(resolver.Room{Name: "Hall A", Building: "DC1"})
		Expect(p.Get("building")).To(Equal("DC1"))
	})
})

var _ = Describe("ip space", func() {
	It("converts network order integers", func() {
		Expect(mapper.IPv4(167772161)).To(Equal("10.0.0.1"))
		Expect(mapper.IPv4(3232235777)).To(Equal("192.168.1.1"))
		Expect(mapper.IPv4(0)).To(Equal("0.0.0.0"))
	})

	It("enumerates every address of a subnet", func() {
		var got []string
		err := mapper.EachAddress(source.Network{ID: 1, IP: 167772160, Mask: 30}, func(ip string) error {
			got = append(got, ip)
			return nil
		})
		Expect(err).To(BeNil())
		Expect(got).To(Equal([]string{"10.0.0.0", "10.0.0.1", "10.0.0.2", "10.0.0.3"}))
	})

	It("stops at the broadcast of the last network", func() {
		count := 0
		err := mapper.EachAddress(source.Network{ID: 2, IP: 4294967294, Mask: 31}, func(string) error {
			count++
			return nil
		})
		Expect(err).To(BeNil())
		Expect(count).To(Equal(2))
	})

	It("rejects invalid masks", func() {
		err := mapper.EachAddress(source.Network{ID: 3, IP: 0, Mask: 40}, func(string) error { return nil })
		Expect(err).NotTo(BeNil())
	})

	It("builds subnet, address and allocation records", func() {
		s := mapper.SubnetPayload(source.Network{IP: 167772160, Mask: 24, Name: "mgmt"})
		Expect(s.Get("network")).To(Equal("10.0.0.0"))
		Expect(s.Get("mask_bits")).To(Equal("24"))
		Expect(s.Get("name")).To(Equal("mgmt"))

		a := mapper.AddressPayload(source.Address{IP: 167772161, Name: "gateway"})
		Expect(a.Get("tag")).To(Equal("gateway"))

		g := mapper.AvailableIPPayload("10.0.0.7", source.Network{Name: "mgmt"})
		Expect(g.Get("subnet")).To(Equal("mgmt"))

		al := mapper.AllocationPayload(source.Allocation{IP: 167772162, Name: "eth0", Hostname: ptr("web01")})
		Expect(al.Get("device")).To(Equal("web01"))
		Expect(al.Get("tag")).To(Equal("eth0"))

		orphan := mapper.AllocationPayload(source.Allocation{IP: 167772162})
		Expect(orphan.Has("device")).To(BeFalse())
		Expect(orphan.Has("tag")).To(BeFalse())
	})
})
