package d42

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	buildingsPath         = "/api/1.0/buildings/"
	roomsPath             = "/api/1.0/rooms/"
	racksPath             = "/api/1.0/racks/"
	hardwaresPath         = "/api/1.0/hardwares/"
	devicePath            = "/api/1.0/device/"
	deviceRackPath        = "/api/1.0/device/rack/"
	pdusPath              = "/api/1.0/pdus/"
	pduModelsPath         = "/api/1.0/pdu_models/"
	pduRackPath           = "/api/1.0/pdus/rack/"
	switchportsPath       = "/api/1.0/switchports/"
	switchportCFPath      = "/api/1.0/custom_fields/switchport/"
	patchPanelModelsPath  = "/api/1.0/patch_panel_models/"
	patchPanelModulesPath = "/api/1.0/patch_panel_module_models/"
	subnetsPath           = "/api/1.0/subnets/"
	ipPath                = "/api/ip/"
	formContentType       = "application/x-www-form-urlencoded"
	defaultRequestTimeout = 60 * time.Second
)

// Client is the HTTP implementation of Sink.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

var _ Sink = (*Client)(nil)

type ClientOption func(*Client)

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithInsecureTLS disables certificate verification. Device42 appliances
// commonly ship with self-signed certificates.
func WithInsecureTLS(insecure bool) ClientOption {
	return func(c *Client) {
		if !insecure {
			return
		}
		c.httpClient.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(baseURL, username, password string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		log: zap.S().Named("d42"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) PostBuilding(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, buildingsPath, p)
}

func (c *Client) PostRoom(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, roomsPath, p)
}

func (c *Client) PostRack(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, racksPath, p)
}

func (c *Client) PostHardware(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, hardwaresPath, p)
}

func (c *Client) PostDevice(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, devicePath, p)
}

func (c *Client) PostDeviceToRack(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, deviceRackPath, p)
}

func (c *Client) PostPDU(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, pdusPath, p)
}

func (c *Client) PostPDUModel(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, pduModelsPath, p)
}

func (c *Client) PostPDUToRack(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, pduRackPath, p)
}

func (c *Client) PostSwitchport(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, switchportsPath, p)
}

// PutSwitchportCustomField is the only PUT in the API surface we use.
func (c *Client) PutSwitchportCustomField(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPut, switchportCFPath, p)
}

func (c *Client) PostPatchPanel(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, patchPanelModelsPath, p)
}

func (c *Client) PostPatchPanelModuleModel(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, patchPanelModulesPath, p)
}

func (c *Client) PostSubnet(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, subnetsPath, p)
}

func (c *Client) PostIP(ctx context.Context, p Payload) (*Response, error) {
	return c.upload(ctx, http.MethodPost, ipPath, p)
}

func (c *Client) Racks(ctx context.Context) ([]Rack, error) {
	body, err := c.fetch(ctx, racksPath)
	if err != nil {
		return nil, err
	}
	var list rackList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, errors.Wrap(err, "failed to decode racks")
	}
	return list.Racks, nil
}

func (c *Client) Buildings(ctx context.Context) ([]Building, error) {
	body, err := c.fetch(ctx, buildingsPath)
	if err != nil {
		return nil, err
	}
	var list buildingList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, errors.Wrap(err, "failed to decode buildings")
	}
	return list.Buildings, nil
}

func (c *Client) upload(ctx context.Context, method, path string, p Payload) (*Response, error) {
	url := c.baseURL + path

	c.log.Debugw("request", "method", method, "url", url, "payload", p.String())

	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(p.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", formContentType)
	req.SetBasicAuth(c.username, c.password)

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}

	c.log.Debugw("response", "url", url, "status", status, "body", string(body))

	if status < 200 || status >= 300 {
		return nil, NewErrRemote(path, status, string(body))
	}

	return decodeResponse(path, status, body)
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", formContentType)
	req.SetBasicAuth(c.username, c.password)

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}

	c.log.Debugw("response", "url", url, "status", status, "bytes", len(body))

	if status != http.StatusOK {
		return nil, NewErrRemote(path, status, string(body))
	}
	return body, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, fmt.Sprintf("failed to call %s", req.URL.Path))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, "failed to read response body")
	}
	return body, resp.StatusCode, nil
}
