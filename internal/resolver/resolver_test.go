package resolver_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/resolver"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("context", func() {
	var rc *resolver.Context

	BeforeEach(func() {
		rc = resolver.NewContext()
	})

	It("returns the rack id set by the racks stage", func() {
		rc.SetRack(10, 17)

		id, ok := rc.Rack(10)
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(int64(17)))

		_, ok = rc.Rack(11)
		Expect(ok).To(BeFalse())
	})

	It("returns the PDU id set by the PDU stage", func() {
		rc.SetPDU(40, 400)

		id, ok := rc.PDU(40)
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(int64(400)))

		_, ok = rc.PDU(41)
		Expect(ok).To(BeFalse())
	})

	It("resolves a blade host through the container map", func() {
		rc.SetChassis(1502, "chassis01")
		rc.SetContainer(20, 1502)

		name, ok := rc.BladeHost(20)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("chassis01"))
	})

	It("misses when the container was never uploaded", func() {
		rc.SetContainer(20, 999)

		_, ok := rc.BladeHost(20)
		Expect(ok).To(BeFalse())
		_, ok = rc.VirtualHost(20)
		Expect(ok).To(BeFalse())
		_, ok = rc.VirtualHost(21)
		Expect(ok).To(BeFalse())
	})

	It("resolves a virtual host", func() {
		rc.SetVMHost(5, "cluster01")
		rc.SetContainer(6, 5)

		name, ok := rc.VirtualHost(6)
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("cluster01"))
		Expect(rc.IsVMHost(5)).To(BeTrue())
		Expect(rc.IsVMHost(6)).To(BeFalse())
	})

	It("marks names once", func() {
		Expect(rc.MarkHardware("PowerEdge R630")).To(BeTrue())
		Expect(rc.MarkHardware("PowerEdge R630")).To(BeFalse())
		Expect(rc.HasHardware("PowerEdge R630")).To(BeTrue())
		Expect(rc.HasHardware("generic1U")).To(BeFalse())
	})
})

var _ = Describe("hierarchy", func() {
	locations := []source.Location{
		{ID: 1, Name: "DC1"},
		{ID: 2, Name: "Hall A", ParentID: ptr(int64(1)), ParentName: ptr("DC1")},
		{ID: 3, Name: "DC2"},
	}

	Context("default mode", func() {
		It("makes parentless locations buildings and children rooms", func() {
			h := resolver.NewHierarchy(resolver.Options{}, locations)

			Expect(h.Buildings()).To(Equal([]string{"DC1", "DC2"}))
			Expect(h.Rooms()).To(Equal([]resolver.Room{{Name: "Hall A", Building: "DC1"}}))
		})

		It("places a rack in a room when its location is a room", func() {
			h := resolver.NewHierarchy(resolver.Options{}, locations)

			loc := h.Locate(source.Rack{Name: "R2", RowName: "B", LocationName: ptr("Hall A")})
			Expect(loc).To(Equal(resolver.RackLocation{Building: "DC1", Room: "Hall A", Row: "B"}))
		})

		It("places a rack in a building otherwise", func() {
			h := resolver.NewHierarchy(resolver.Options{}, locations)
			h.AddRows([]source.Rack{{Name: "R1", RowName: "A", LocationName: ptr("DC1")}})

			loc := h.Locate(source.Rack{Name: "R1", RowName: "A", LocationName: ptr("DC1")})
			Expect(loc).To(Equal(resolver.RackLocation{Building: "DC1", Row: "A"}))
			Expect(h.Rooms()).To(HaveLen(1))
		})
	})

	Context("child as building", func() {
		It("makes every location a building", func() {
			h := resolver.NewHierarchy(resolver.Options{ChildAsBuilding: true}, locations)

			Expect(h.Buildings()).To(Equal([]string{"DC1", "Hall A", "DC2"}))
			Expect(h.Rooms()).To(BeEmpty())

			loc := h.Locate(source.Rack{RowName: "B", LocationName: ptr("Hall A")})
			Expect(loc).To(Equal(resolver.RackLocation{Building: "Hall A", Row: "B"}))
		})
	})

	Context("row as room", func() {
		It("nests rows as rooms under their building", func() {
			h := resolver.NewHierarchy(resolver.Options{RowAsRoom: true}, locations)
			racks := []source.Rack{
				{Name: "R1", RowName: "Row1", LocationName: ptr("DC1")},
				{Name: "R2", RowName: "Row1", LocationName: ptr("DC1")},
				{Name: "R3", RowName: "Row9", LocationName: ptr("DC2")},
			}
			h.AddRows(racks)

			Expect(h.Rooms()).To(Equal([]resolver.Room{
				{Name: "Hall A", Building: "DC1"},
				{Name: "Row1", Building: "DC1"},
				{Name: "Row9", Building: "DC2"},
			}))
			Expect(h.Locate(racks[0])).To(Equal(resolver.RackLocation{Building: "DC1", Room: "Row1"}))
		})

		It("files rows of a child location under the parent building", func() {
			h := resolver.NewHierarchy(resolver.Options{RowAsRoom: true}, locations)
			rack := source.Rack{Name: "R4", RowName: "Row2", LocationName: ptr("Hall A")}
			h.AddRows([]source.Rack{rack})

			Expect(h.Buildings()).To(Equal([]string{"DC1", "DC2"}))
			Expect(h.Locate(rack)).To(Equal(resolver.RackLocation{Building: "DC1", Room: "Row2"}))
		})

		It("files rows under the child building when children are buildings", func() {
			h := resolver.NewHierarchy(resolver.Options{RowAsRoom: true, ChildAsBuilding: true}, locations)
			rack := source.Rack{Name: "R4", RowName: "Row2", LocationName: ptr("Hall A")}
			h.AddRows([]source.Rack{rack})

			Expect(h.Rooms()).To(Equal([]resolver.Room{{Name: "Row2", Building: "Hall A"}}))
			Expect(h.Locate(rack)).To(Equal(resolver.RackLocation{Building: "Hall A", Room: "Row2"}))
		})
	})

	It("skips racks without a location", func() {
		h := resolver.NewHierarchy(resolver.Options{RowAsRoom: true}, nil)
		h.AddRows([]source.Rack{{Name: "R1", RowName: "Row1"}})

		Expect(h.Rooms()).To(BeEmpty())
	})
})
