package quake

import (
	"encoding/json"
	"time"
)

// Properties holds the attributes of an event. The common fields of the USGS
// feed are typed; nullable numbers are pointers.
type Properties struct {
	Mag     *float64 `json:"mag"`
	Place   string   `json:"place,omitempty"`
	Time    int64    `json:"time,omitempty"`
	Updated int64    `json:"updated,omitempty"`
	TZ      *int     `json:"tz,omitempty"`
	URL     string   `json:"url,omitempty"`
	Detail  string   `json:"detail,omitempty"`
	Felt    *int     `json:"felt,omitempty"`
	CDI     *float64 `json:"cdi,omitempty"`
	MMI     *float64 `json:"mmi,omitempty"`
	Alert   *string  `json:"alert,omitempty"`
	Status  string   `json:"status,omitempty"`
	Tsunami int      `json:"tsunami,omitempty"`
	Sig     int      `json:"sig,omitempty"`
	Net     string   `json:"net,omitempty"`
	Code    string   `json:"code,omitempty"`
	IDs     string   `json:"ids,omitempty"`
	Sources string   `json:"sources,omitempty"`
	Types   string   `json:"types,omitempty"`
	NST     *int     `json:"nst,omitempty"`
	DMin    *float64 `json:"dmin,omitempty"`
	RMS     *float64 `json:"rms,omitempty"`
	Gap     *float64 `json:"gap,omitempty"`
	MagType string   `json:"magType,omitempty"`
	Type    string   `json:"type,omitempty"`
	Title   string   `json:"title,omitempty"`

	// AdditionalFields holds properties without a typed field.
	AdditionalFields map[string]any `json:"-"`
}

var knownPropertyFields = map[string]bool{
	"mag": true, "place": true, "time": true, "updated": true, "tz": true,
	"url": true, "detail": true, "felt": true, "cdi": true, "mmi": true,
	"alert": true, "status": true, "tsunami": true, "sig": true, "net": true,
	"code": true, "ids": true, "sources": true, "types": true, "nst": true,
	"dmin": true, "rms": true, "gap": true, "magType": true, "type": true,
	"title": true,
}

// EventTime returns the origin time in UTC.
func (p Properties) EventTime() time.Time {
	return millisToTime(p.Time)
}

// UpdatedAt returns the last update time in UTC.
func (p Properties) UpdatedAt() time.Time {
	return millisToTime(p.Updated)
}

// Magnitude returns the magnitude and whether the server reported one.
func (p Properties) Magnitude() (float64, bool) {
	if p.Mag == nil {
		return 0, false
	}
	return *p.Mag, true
}

// UnmarshalJSON implements custom unmarshaling to capture unknown properties.
// A known property whose value does not fit its typed field is kept in
// AdditionalFields instead of failing the whole document.
func (p *Properties) UnmarshalJSON(data []byte) error {
	type propertiesAlias Properties

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	typed := make(map[string]json.RawMessage, len(raw))
	var extra map[string]any
	for key, val := range raw {
		if knownPropertyFields[key] {
			var field propertiesAlias
			if err := json.Unmarshal(singleField(key, val), &field); err == nil {
				typed[key] = val
				continue
			}
		}
		var decoded any
		if err := json.Unmarshal(val, &decoded); err != nil {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = decoded
	}

	encoded, err := json.Marshal(typed)
	if err != nil {
		return err
	}
	var aux propertiesAlias
	if err := json.Unmarshal(encoded, &aux); err != nil {
		return err
	}
	*p = Properties(aux)
	p.AdditionalFields = extra

	return nil
}

func singleField(key string, val json.RawMessage) []byte {
	name, _ := json.Marshal(key)
	out := make([]byte, 0, len(name)+len(val)+3)
	out = append(out, '{')
	out = append(out, name...)
	out = append(out, ':')
	out = append(out, val...)
	return append(out, '}')
}

// MarshalJSON implements custom marshaling to include AdditionalFields.
// An additional field named like a typed one is only written when the typed
// field is empty.
func (p Properties) MarshalJSON() ([]byte, error) {
	type propertiesAlias Properties
	data, err := json.Marshal(propertiesAlias(p))
	if err != nil {
		return nil, err
	}

	if len(p.AdditionalFields) == 0 {
		return data, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for key, val := range p.AdditionalFields {
		if cur, ok := obj[key]; ok && string(cur) != "null" {
			continue
		}
		encoded, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		obj[key] = encoded
	}

	return json.Marshal(obj)
}
