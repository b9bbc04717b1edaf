package d42

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Payload is the flat field/value mapping sent to every Device42 endpoint.
type Payload map[string]string

func NewPayload() Payload {
	return Payload{}
}

func (p Payload) Set(key, value string) Payload {
	p[key] = value
	return p
}

func (p Payload) SetInt(key string, value int) Payload {
	p[key] = strconv.Itoa(value)
	return p
}

func (p Payload) SetInt64(key string, value int64) Payload {
	p[key] = strconv.FormatInt(value, 10)
	return p
}

// SetIfNotEmpty sets key only when value is not blank.
func (p Payload) SetIfNotEmpty(key, value string) Payload {
	if strings.TrimSpace(value) != "" {
		p[key] = value
	}
	return p
}

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Payload) Get(key string) string {
	return p[key]
}

func (p Payload) Delete(key string) Payload {
	delete(p, key)
	return p
}

// Encode renders the payload as application/x-www-form-urlencoded.
func (p Payload) Encode() string {
	values := url.Values{}
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

func (p Payload) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(strconv.Quote(p[k]))
	}
	sb.WriteString("}")
	return sb.String()
}
