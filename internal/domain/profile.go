package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

const (
	UnknownType     = "unknown"
	DefaultDatabase = "default"
)

// Field names of the members Profile understands. Anything else is kept in Extra.
const (
	fieldAlias    = "alias"
	fieldName     = "name"
	fieldType     = "type"
	fieldHost     = "host"
	fieldPort     = "port"
	fieldDatabase = "database"
	fieldPassword = "password"
)

var knownFields = []string{fieldAlias, fieldName, fieldType, fieldHost, fieldPort, fieldDatabase, fieldPassword}

// Port keeps the port exactly as the server sent it, number or string.
type Port struct {
	raw json.RawMessage
}

func NewPort(port int) Port {
	return Port{raw: json.RawMessage(strconv.Itoa(port))}
}

func (p Port) IsSet() bool {
	return len(p.raw) > 0
}

func (p Port) String() string {
	if !p.IsSet() {
		return ""
	}
	var s string
	if err := json.Unmarshal(p.raw, &s); err == nil {
		return s
	}
	return string(p.raw)
}

func (p Port) MarshalJSON() ([]byte, error) {
	if !p.IsSet() {
		return []byte("null"), nil
	}
	return p.raw, nil
}

func (p *Port) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		p.raw = nil
		return nil
	}
	if len(trimmed) == 0 || (trimmed[0] != '"' && trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return fmt.Errorf("port must be a number or string, got %s", trimmed)
	}
	p.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// Profile is one saved connection descriptor, credential included.
type Profile struct {
	Alias    string
	Name     string
	Type     string
	Host     string
	Port     Port
	Database string
	Password string

	// Extra holds every member the server sent that Profile has no field for.
	Extra map[string]json.RawMessage

	present map[string]bool
}

type ProfileList []Profile

// Has reports whether the named known member was present in the decoded JSON
// or has been set to a non-empty value.
func (p Profile) Has(field string) bool {
	if p.present[field] {
		return true
	}
	switch field {
	case fieldAlias:
		return p.Alias != ""
	case fieldName:
		return p.Name != ""
	case fieldType:
		return p.Type != ""
	case fieldHost:
		return p.Host != ""
	case fieldPort:
		return p.Port.IsSet()
	case fieldDatabase:
		return p.Database != ""
	case fieldPassword:
		return p.Password != ""
	}
	_, ok := p.Extra[field]
	return ok
}

// text returns value, or the raw JSON of a known member that arrived with an
// unexpected type and was kept in Extra.
func (p Profile) text(field, value string) string {
	if value != "" {
		return value
	}
	raw, ok := p.Extra[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	return string(raw)
}

func (p Profile) DisplayName(index int) string {
	if alias := p.text(fieldAlias, p.Alias); alias != "" {
		return alias
	}
	if name := p.text(fieldName, p.Name); name != "" {
		return name
	}
	return fmt.Sprintf("resource %d", index+1)
}

func (p Profile) TypeOrUnknown() string {
	if t := p.text(fieldType, p.Type); t != "" {
		return t
	}
	return UnknownType
}

func (p Profile) DatabaseOrDefault() string {
	if db := p.text(fieldDatabase, p.Database); db != "" {
		return db
	}
	return DefaultDatabase
}

// Label is the row text shown in the selection surface.
func (p Profile) Label(index int) string {
	return fmt.Sprintf("%s (%s) - %s:%s (%s)",
		p.DisplayName(index), p.TypeOrUnknown(), p.text(fieldHost, p.Host), p.text(fieldPort, p.Port.String()), p.DatabaseOrDefault())
}

// Clone returns a deep copy that shares no maps or byte slices with p.
func (p Profile) Clone() Profile {
	c := p
	if p.Port.raw != nil {
		c.Port = Port{raw: append(json.RawMessage(nil), p.Port.raw...)}
	}
	if p.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	if p.present != nil {
		c.present = make(map[string]bool, len(p.present))
		for k, v := range p.present {
			c.present[k] = v
		}
	}
	return c
}

func (l ProfileList) Clone() ProfileList {
	if l == nil {
		return nil
	}
	out := make(ProfileList, len(l))
	for i, p := range l {
		out[i] = p.Clone()
	}
	return out
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	if members == nil {
		return fmt.Errorf("profile must be a JSON object")
	}

	*p = Profile{present: make(map[string]bool)}

	stringFields := map[string]*string{
		fieldAlias:    &p.Alias,
		fieldName:     &p.Name,
		fieldType:     &p.Type,
		fieldHost:     &p.Host,
		fieldDatabase: &p.Database,
		fieldPassword: &p.Password,
	}

	for key, raw := range members {
		if target, ok := stringFields[key]; ok {
			if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				p.keepExtra(key, raw)
				continue
			}
			if err := json.Unmarshal(raw, target); err != nil {
				p.keepExtra(key, raw)
				continue
			}
			p.present[key] = true
			continue
		}
		if key == fieldPort {
			if err := json.Unmarshal(raw, &p.Port); err != nil {
				p.Port = Port{}
				p.keepExtra(key, raw)
				continue
			}
			if p.Port.IsSet() {
				p.present[key] = true
			} else {
				p.keepExtra(key, raw)
			}
			continue
		}
		p.keepExtra(key, raw)
	}

	return nil
}

func (p *Profile) keepExtra(key string, raw json.RawMessage) {
	if p.Extra == nil {
		p.Extra = make(map[string]json.RawMessage)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		p.Extra[key] = append(json.RawMessage(nil), raw...)
		return
	}
	p.Extra[key] = json.RawMessage(compact.Bytes())
}

// MarshalJSON writes known members in a fixed order followed by Extra sorted by key.
func (p Profile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeMember := func(key string, value []byte) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
		return nil
	}

	values := map[string]string{
		fieldAlias:    p.Alias,
		fieldName:     p.Name,
		fieldType:     p.Type,
		fieldHost:     p.Host,
		fieldDatabase: p.Database,
		fieldPassword: p.Password,
	}

	for _, key := range knownFields {
		if _, shadowed := p.Extra[key]; shadowed || !p.Has(key) {
			continue
		}
		var value []byte
		var err error
		if key == fieldPort {
			value, err = p.Port.MarshalJSON()
		} else {
			value, err = marshalString(values[key])
		}
		if err != nil {
			return nil, err
		}
		if err := writeMember(key, value); err != nil {
			return nil, err
		}
	}

	extraKeys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		if err := writeMember(k, p.Extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString encodes s without HTML escaping so credentials are written as-is.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
