package d42

import (
	"context"
	"encoding/json"
	"fmt"
)

// Entity names a Device42 entity class. It is used for logging, metrics and
// the run journal.
type Entity string

const (
	EntityBuilding         Entity = "building"
	EntityRoom             Entity = "room"
	EntityRack             Entity = "rack"
	EntityHardware         Entity = "hardware"
	EntityDevice           Entity = "device"
	EntityDeviceToRack     Entity = "device_rack"
	EntityPDU              Entity = "pdu"
	EntityPDUModel         Entity = "pdu_model"
	EntityPDUToRack        Entity = "pdu_rack"
	EntitySwitchport       Entity = "switchport"
	EntitySwitchportCF     Entity = "switchport_cf"
	EntityPatchPanel       Entity = "patch_panel"
	EntityPatchPanelModule Entity = "patch_panel_module"
	EntitySubnet           Entity = "subnet"
	EntityIP               Entity = "ip"
)

// Sink accepts fully formed Device42 payloads. Uploads return the decoded
// response; entities that are referenced later (rack, PDU, switchport)
// carry the new identifier in Response.ID.
type Sink interface {
	PostBuilding(ctx context.Context, p Payload) (*Response, error)
	PostRoom(ctx context.Context, p Payload) (*Response, error)
	PostRack(ctx context.Context, p Payload) (*Response, error)
	PostHardware(ctx context.Context, p Payload) (*Response, error)
	PostDevice(ctx context.Context, p Payload) (*Response, error)
	PostDeviceToRack(ctx context.Context, p Payload) (*Response, error)
	PostPDU(ctx context.Context, p Payload) (*Response, error)
	PostPDUModel(ctx context.Context, p Payload) (*Response, error)
	PostPDUToRack(ctx context.Context, p Payload) (*Response, error)
	PostSwitchport(ctx context.Context, p Payload) (*Response, error)
	PutSwitchportCustomField(ctx context.Context, p Payload) (*Response, error)
	PostPatchPanel(ctx context.Context, p Payload) (*Response, error)
	PostPatchPanelModuleModel(ctx context.Context, p Payload) (*Response, error)
	PostSubnet(ctx context.Context, p Payload) (*Response, error)
	PostIP(ctx context.Context, p Payload) (*Response, error)

	Racks(ctx context.Context) ([]Rack, error)
	Buildings(ctx context.Context) ([]Building, error)
}

// Response is the body Device42 returns for create/update calls:
//
//	{"code": 0, "msg": ["rack added/updated", 17, "R1", true, false]}
type Response struct {
	Code int               `json:"code"`
	Msg  []json.RawMessage `json:"msg"`

	// ID is msg[1] when it is numeric.
	ID int64 `json:"-"`
}

func (r *Response) HasID() bool {
	return r != nil && r.ID > 0
}

// Message returns msg[0], the human readable part of the response.
func (r *Response) Message() string {
	if r == nil || len(r.Msg) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Msg[0], &s); err != nil {
		return string(r.Msg[0])
	}
	return s
}

// decodeResponse reads a 2xx answer. Device42 reports logical errors with a
// non-zero code and a plain string msg.
func decodeResponse(path string, status int, body []byte) (*Response, error) {
	var raw struct {
		Code int             `json:"code"`
		Msg  json.RawMessage `json:"msg"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	resp := Response{Code: raw.Code}
	if len(raw.Msg) > 0 {
		if err := json.Unmarshal(raw.Msg, &resp.Msg); err != nil {
			resp.Msg = []json.RawMessage{raw.Msg}
		}
	}
	if resp.Code != 0 {
		return nil, NewErrRemote(path, status, resp.Message())
	}

	if len(resp.Msg) > 1 {
		var id json.Number
		if err := json.Unmarshal(resp.Msg[1], &id); err == nil {
			if v, err := id.Int64(); err == nil {
				resp.ID = v
			}
		}
	}
	return &resp, nil
}

type Rack struct {
	ID       int64  `json:"rack_id"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Room     string `json:"room"`
}

type Building struct {
	ID   int64  `json:"building_id"`
	Name string `json:"name"`
}

type rackList struct {
	Racks []Rack `json:"racks"`
}

type buildingList struct {
	Buildings []Building `json:"buildings"`
}
