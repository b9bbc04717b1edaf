package d42

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Call is one upload captured by Recorder.
type Call struct {
	Entity  Entity
	Payload Payload
	ID      int64
}

// Recorder is an in-memory Sink. It backs --dry-run and the pipeline tests.
// Every upload is assigned an increasing identifier so that dependent stages
// can resolve references exactly as they would against a live target.
type Recorder struct {
	mu        sync.Mutex
	calls     []Call
	nextID    int64
	racks     []Rack
	buildings []Building
	failures  map[Entity]error
}

var _ Sink = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{failures: map[Entity]error{}}
}

// WithRacks seeds the racks returned by Racks.
func (r *Recorder) WithRacks(racks ...Rack) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.racks = append(r.racks, racks...)
	return r
}

func (r *Recorder) WithBuildings(buildings ...Building) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buildings = append(r.buildings, buildings...)
	return r
}

// FailOn makes every upload of entity return err.
func (r *Recorder) FailOn(entity Entity, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[entity] = err
	return r
}

func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsFor returns the payloads recorded for entity, in upload order.
func (r *Recorder) CallsFor(entity Entity) []Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Payload
	for _, c := range r.calls {
		if c.Entity == entity {
			out = append(out, c.Payload)
		}
	}
	return out
}

func (r *Recorder) Entities() []Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entity, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Entity)
	}
	return out
}

func (r *Recorder) PostBuilding(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityBuilding, p)
}

func (r *Recorder) PostRoom(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityRoom, p)
}

func (r *Recorder) PostRack(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityRack, p)
}

func (r *Recorder) PostHardware(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityHardware, p)
}

func (r *Recorder) PostDevice(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityDevice, p)
}

func (r *Recorder) PostDeviceToRack(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityDeviceToRack, p)
}

func (r *Recorder) PostPDU(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityPDU, p)
}

func (r *Recorder) PostPDUModel(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityPDUModel, p)
}

func (r *Recorder) PostPDUToRack(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityPDUToRack, p)
}

func (r *Recorder) PostSwitchport(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntitySwitchport, p)
}

func (r *Recorder) PutSwitchportCustomField(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntitySwitchportCF, p)
}

func (r *Recorder) PostPatchPanel(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityPatchPanel, p)
}

func (r *Recorder) PostPatchPanelModuleModel(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityPatchPanelModule, p)
}

func (r *Recorder) PostSubnet(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntitySubnet, p)
}

func (r *Recorder) PostIP(ctx context.Context, p Payload) (*Response, error) {
	return r.record(ctx, EntityIP, p)
}

func (r *Recorder) Racks(ctx context.Context) ([]Rack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Rack(nil), r.racks...), nil
}

func (r *Recorder) Buildings(ctx context.Context) ([]Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Building(nil), r.buildings...), nil
}

func (r *Recorder) record(ctx context.Context, entity Entity, p Payload) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failures[entity]; err != nil {
		return nil, err
	}

	cp := make(Payload, len(p))
	for k, v := range p {
		cp[k] = v
	}

	r.nextID++
	id := r.nextID
	r.calls = append(r.calls, Call{Entity: entity, Payload: cp, ID: id})

	msg, _ := json.Marshal(fmt.Sprintf("%s added/updated", entity))
	rawID, _ := json.Marshal(id)
	return &Response{Code: 0, Msg: []json.RawMessage{msg, rawID}, ID: id}, nil
}
