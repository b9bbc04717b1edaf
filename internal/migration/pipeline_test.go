package migration_test

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/migration"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/resolver"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

func fixtureReader() (*source.Reader, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	Expect(err).To(BeNil())
	db.SetMaxOpenConns(1)

	for _, f := range []string{"../source/testdata/schema.sql", "../source/testdata/fixture.sql"} {
		content, err := os.ReadFile(f)
		Expect(err).To(BeNil())
		_, err = db.Exec(string(content))
		Expect(err).To(BeNil(), f)
	}
	return source.NewFromDB(db), func() { _ = db.Close() }
}

var _ = Describe("pipeline", func() {
	var (
		reader  *source.Reader
		cleanup func()
		rec     *d42.Recorder
	)

	BeforeEach(func() {
		reader, cleanup = fixtureReader()
		rec = d42.NewRecorder()
	})

	AfterEach(func() {
		cleanup()
	})

	run := func(opts migration.Options, only ...string) (*migration.State, migration.Summary) {
		engine, err := migration.NewPipeline(only...)
		Expect(err).To(BeNil())
		state := migration.NewState(reader, rec, opts)
		return state, engine.Run(context.Background(), state)
	}

	It("migrates the fixture inventory in dependency order", func() {
		_, summary := run(migration.Options{ZeroU: mapper.NewZeroUMount("", "")})

		Expect(rec.Entities()).To(Equal([]d42.Entity{
			d42.EntitySubnet,
			d42.EntityIP,
			d42.EntityBuilding,
			d42.EntityRoom,
			d42.EntityRack, d42.EntityRack,
			d42.EntityHardware, d42.EntityHardware,
			d42.EntityDevice, d42.EntityDevice,
			d42.EntityPDUModel,
			d42.EntityPDU, d42.EntityPDUToRack,
			d42.EntityPDU, d42.EntityPDUToRack,
			d42.EntityPatchPanel,
			d42.EntityDevice, d42.EntityDeviceToRack,
			d42.EntityDevice, d42.EntityDeviceToRack,
			d42.EntityDevice,
			d42.EntityDevice,
			d42.EntitySwitchport, d42.EntitySwitchportCF,
			d42.EntitySwitchport, d42.EntitySwitchportCF,
			d42.EntitySwitchport,
			d42.EntityIP,
		}))

		totals := summary.Totals()
		Expect(totals.Failed).To(Equal(0))
		// the unnamed blade
		Expect(totals.Skipped).To(Equal(1))
		Expect(summary.Stages).To(HaveLen(len(migration.StageNames)))
	})

	It("creates building DC1 and rack R1 in it", func() {
		run(migration.Options{}, migration.StageBuildings, migration.StageRacks)

		buildings := rec.CallsFor(d42.EntityBuilding)
		Expect(buildings).To(HaveLen(1))
		Expect(buildings[0].Get("name")).To(Equal("DC1"))

		racks := rec.CallsFor(d42.EntityRack)
		Expect(racks).To(HaveLen(2))
		Expect(racks[0].Get("name")).To(Equal("R1"))
		Expect(racks[0].Get("size")).To(Equal("42"))
		Expect(racks[0].Get("building")).To(Equal("DC1"))
		Expect(racks[0].Get("row")).To(Equal("Row-Alpha-"))

		Expect(racks[1].Get("building")).To(Equal("DC1"))
		Expect(racks[1].Get("room")).To(Equal("Hall A"))
	})

	It("maps rows to rooms of the enclosing building", func() {
		run(migration.Options{Hierarchy: resolver.Options{RowAsRoom: true}}, migration.StageBuildings, migration.StageRacks)

		rooms := rec.CallsFor(d42.EntityRoom)
		Expect(rooms).To(HaveLen(3))
		Expect(rooms[1].Get("name")).To(Equal("Row-Alpha-Long"))
		Expect(rooms[2].Get("name")).To(Equal("B"))
		Expect(rooms[2].Get("building")).To(Equal("DC1"))

		racks := rec.CallsFor(d42.EntityRack)
		Expect(racks[0].Get("room")).To(Equal("Row-Alpha-Long"))
		Expect(racks[0].Has("row")).To(BeFalse())
	})

	It("updates racks and skips buildings that already exist", func() {
		rec.WithRacks(d42.Rack{ID: 77, Name: "R1"}).WithBuildings(d42.Building{ID: 3, Name: "DC1"})

		state, summary := run(migration.Options{}, migration.StageBuildings, migration.StageRacks)

		Expect(rec.CallsFor(d42.EntityBuilding)).To(BeEmpty())
		racks := rec.CallsFor(d42.EntityRack)
		Expect(racks[0].Get("rack_id")).To(Equal("77"))
		Expect(racks[1].Has("rack_id")).To(BeFalse())

		id, ok := state.Refs().Rack(10)
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(rec.Calls()[1].ID))
		Expect(summary.Totals().Skipped).To(Equal(1))
	})

	It("uploads hardware models with their smallest height", func() {
		run(migration.Options{}, migration.StageHardware)

		hw := rec.CallsFor(d42.EntityHardware)
		Expect(hw).To(HaveLen(2))
		Expect(hw[0].Get("name")).To(Equal("PowerEdge R630"))
		Expect(hw[0].Get("manufacturer")).To(Equal("Dell"))
		Expect(hw[0].Get("size")).To(Equal("2"))
		Expect(hw[0].Get("depth")).To(Equal("1"))
		Expect(hw[1].Get("name")).To(Equal("Catalyst 2960"))
		Expect(hw[1].Get("depth")).To(Equal("2"))
	})

	It("mounts devices at their 0-based floor", func() {
		run(migration.Options{})

		devices := rec.CallsFor(d42.EntityDevice)
		names := make([]string, 0, len(devices))
		for _, d := range devices {
			names = append(names, d.Get("name"))
		}
		Expect(names).To(Equal([]string{"chassis01", "cluster01", "web01", "sw01", "vm01", "chassis01"}))

		web := devices[2]
		Expect(web.Get("hardware")).To(Equal("PowerEdge R630"))
		Expect(web.Get("os")).To(Equal("Ubuntu 22.04"))
		Expect(web.Get("type")).To(Equal("physical"))
		Expect(devices[3].Get("is_it_switch")).To(Equal("yes"))
		Expect(devices[4].Get("virtual_host")).To(Equal("cluster01"))
		Expect(devices[4].Has("hardware")).To(BeFalse())

		mounts := rec.CallsFor(d42.EntityDeviceToRack)
		Expect(mounts).To(HaveLen(2))
		Expect(mounts[0].Get("device")).To(Equal("web01"))
		Expect(mounts[0].Get("start_at")).To(Equal("2"))
		Expect(mounts[0].Get("hw_model")).To(Equal("PowerEdge R630"))
		Expect(mounts[1].Get("start_at")).To(Equal("39"))
	})

	It("mounts rack and zero-U pdus", func() {
		run(migration.Options{ZeroU: mapper.NewZeroUMount("right", "back")})

		models := rec.CallsFor(d42.EntityPDUModel)
		Expect(models).To(HaveLen(1))
		Expect(models[0].Get("name")).To(Equal("APC AP7941"))
		Expect(models[0].Get("size")).To(Equal("1"))

		mounts := rec.CallsFor(d42.EntityPDUToRack)
		Expect(mounts).To(HaveLen(2))
		Expect(mounts[0].Get("where")).To(Equal("mounted"))
		Expect(mounts[0].Get("start_at")).To(Equal("0"))
		Expect(mounts[0].Get("orientation")).To(Equal("back"))
		Expect(mounts[0].Get("pdu_model")).To(Equal("APC AP7941"))
		Expect(mounts[1].Get("where")).To(Equal("right"))
		Expect(mounts[1].Get("orientation")).To(Equal("back"))
		Expect(mounts[1].Has("start_at")).To(BeFalse())
	})

	It("emits both directions of a cable with its id", func() {
		run(migration.Options{})

		ports := rec.CallsFor(d42.EntitySwitchport)
		Expect(ports).To(HaveLen(3))
		Expect(ports[0].Get("switch")).To(Equal("web01"))
		Expect(ports[0].Get("remote_device")).To(Equal("sw01"))
		Expect(ports[0].Get("remote_port")).To(Equal("Gi0/1"))
		Expect(ports[1].Get("switch")).To(Equal("sw01"))
		Expect(ports[1].Get("remote_device")).To(Equal("web01"))
		Expect(ports[1].Get("label")).To(Equal("uplink"))
		Expect(ports[2].Get("port")).To(Equal("Te1/1"))
		Expect(ports[2].Has("remote_device")).To(BeFalse())

		cfs := rec.CallsFor(d42.EntitySwitchportCF)
		Expect(cfs).To(HaveLen(2))
		Expect(cfs[0].Get("value")).To(Equal("C-100"))
	})

	It("generates every address of a subnet when asked", func() {
		run(migration.Options{CreateAvailableIPs: true}, migration.StageSubnets)

		ips := rec.CallsFor(d42.EntityIP)
		Expect(ips).To(HaveLen(4))
		Expect(ips[0].Get("ipaddress")).To(Equal("10.0.0.0"))
		Expect(ips[3].Get("ipaddress")).To(Equal("10.0.0.3"))
		Expect(ips[3].Get("subnet")).To(Equal("mgmt"))
	})

	It("allocates addresses to their devices", func() {
		run(migration.Options{}, migration.StageAllocations)

		allocations := rec.CallsFor(d42.EntityIP)
		Expect(allocations).To(HaveLen(1))
		Expect(allocations[0].Get("ipaddress")).To(Equal("10.0.0.2"))
		Expect(allocations[0].Get("device")).To(Equal("web01"))
		Expect(allocations[0].Get("tag")).To(Equal("eth0"))
	})

	It("rejects unknown stages", func() {
		_, err := migration.NewPipeline("racks", "cables")
		Expect(err).NotTo(BeNil())
	})

	It("runs a selection in dependency order", func() {
		engine, err := migration.NewPipeline(migration.StagePorts, migration.StageRacks)
		Expect(err).To(BeNil())
		Expect(engine.Stages()).To(Equal([]string{migration.StageRacks, migration.StagePorts}))
	})
})
