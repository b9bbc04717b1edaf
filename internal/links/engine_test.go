package links_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/links"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

func name(s string) *string { return &s }

var _ = Describe("pairing engine", func() {
	var ports []source.Port
	cable := "C-100"

	BeforeEach(func() {
		ports = []source.Port{
			{ID: 5, Name: "Gi0/1", Label: "uplink", ObjectID: 1, ObjectName: name("sw01"), L2Address: "001122334455"},
			{ID: 9, Name: "eth0", ObjectID: 2, ObjectName: name("web01"), L2Address: "AABBCCDDEEFF"},
			{ID: 12, Name: "Te1/1", ObjectID: 1, ObjectName: name("sw01")},
			{ID: 20, Name: "eth1", ObjectID: 2, ObjectName: name("web01")},
			{ID: 21, Name: "mgmt", ObjectID: 3, ObjectName: name("db01")},
		}
	})

	It("resolves a link from the portb side", func() {
		e := links.NewEngine(ports, []source.Link{{PortA: 5, PortB: 9, Cable: &cable}})

		partner, link, ok := e.Partner(9)
		Expect(ok).To(BeTrue())
		Expect(partner.ID).To(Equal(int64(5)))
		Expect(*link.Cable).To(Equal("C-100"))

		partner, _, ok = e.Partner(5)
		Expect(ok).To(BeTrue())
		Expect(partner.ID).To(Equal(int64(9)))

		_, _, ok = e.Partner(12)
		Expect(ok).To(BeFalse())
	})

	It("takes the first link when a port has several", func() {
		e := links.NewEngine(ports, []source.Link{
			{PortA: 5, PortB: 20},
			{PortA: 21, PortB: 20},
		})

		partner, _, ok := e.Partner(20)
		Expect(ok).To(BeTrue())
		Expect(partner.ID).To(Equal(int64(5)))
	})

	It("prefers the link where the port is portb", func() {
		e := links.NewEngine(ports, []source.Link{
			{PortA: 20, PortB: 21},
			{PortA: 5, PortB: 20},
		})

		partner, _, ok := e.Partner(20)
		Expect(ok).To(BeTrue())
		Expect(partner.ID).To(Equal(int64(5)))
	})

	It("emits a forward and a mirrored record per link", func() {
		e := links.NewEngine(ports, []source.Link{{PortA: 5, PortB: 9, Cable: &cable}})

		records := e.Records(1, "sw01")
		Expect(records).To(HaveLen(3))

		forward, reverse, unlinked := records[0], records[1], records[2]
		Expect(forward).To(Equal(links.Record{
			PortID: 5, Port: "Gi0/1", Switch: "sw01", Label: "uplink", MAC: "001122334455",
			RemoteDevice: "web01", RemotePort: "eth0", Cable: "C-100",
		}))
		Expect(reverse).To(Equal(links.Record{
			PortID: 9, Port: "eth0", Switch: "web01", MAC: "AABBCCDDEEFF",
			RemoteDevice: "sw01", RemotePort: "Gi0/1", Cable: "C-100", Mirrored: true,
		}))
		Expect(unlinked.Linked()).To(BeFalse())
		Expect(unlinked.Port).To(Equal("Te1/1"))
	})

	It("does not emit a link twice when both ends are processed", func() {
		e := links.NewEngine(ports, []source.Link{{PortA: 5, PortB: 9}})

		first := e.Records(1, "sw01")
		second := e.Records(2, "web01")

		Expect(first).To(HaveLen(3))
		Expect(second).To(HaveLen(1))
		Expect(second[0].Port).To(Equal("eth1"))
	})

	It("resolves the reverse direction when the portb owner comes first", func() {
		e := links.NewEngine(ports, []source.Link{{PortA: 5, PortB: 9}})

		records := e.Records(2, "web01")
		Expect(records[0].RemoteDevice).To(Equal("sw01"))
		Expect(records[0].RemotePort).To(Equal("Gi0/1"))
		Expect(records[1].Switch).To(Equal("sw01"))
		Expect(records[1].Mirrored).To(BeTrue())
	})

	It("treats a partner without an owner name as unlinked", func() {
		ports[1].ObjectName = nil
		e := links.NewEngine(ports, []source.Link{{PortA: 5, PortB: 9}})

		records := e.Records(1, "sw01")
		Expect(records).To(HaveLen(2))
		Expect(records[0].Linked()).To(BeFalse())
	})

	It("only migrates ports of networked object types", func() {
		Expect(links.Networked(source.TypeSwitch)).To(BeTrue())
		Expect(links.Networked(source.TypeServer)).To(BeTrue())
		Expect(links.Networked(source.TypeChassis)).To(BeTrue())
		Expect(links.Networked(source.TypeVM)).To(BeFalse())
		Expect(links.Networked(source.TypePatchPanel)).To(BeFalse())
	})
})

var _ = Describe("switchport payloads", func() {
	It("sets remote fields only for linked records", func() {
		linked := links.Record{Port: "Gi0/1", Switch: "sw01", MAC: "0011", RemoteDevice: "web01", RemotePort: "eth0"}.Payload()
		Expect(linked.Get("device")).To(Equal("web01"))
		Expect(linked.Get("remote_device")).To(Equal("web01"))
		Expect(linked.Get("remote_port")).To(Equal("eth0"))
		Expect(linked.Get("hwaddress")).To(Equal("0011"))

		single := links.Record{Port: "Te1/1", Switch: "sw01"}.Payload()
		Expect(single.Has("device")).To(BeFalse())
		Expect(single.Has("hwaddress")).To(BeFalse())
		Expect(single.Has("label")).To(BeFalse())
	})

	It("builds the cable custom field", func() {
		p := links.CablePayload(42, "C-100")
		Expect(p.Get("id")).To(Equal("42"))
		Expect(p.Get("key")).To(Equal("cable_id"))
		Expect(p.Get("value")).To(Equal("C-100"))
	})
})
