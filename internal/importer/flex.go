package importer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexString decodes either a JSON string or an object carrying a display
// name. Objects collapse to displayName, then name, then id. Any other
// shape decodes to the empty string.
type FlexString struct {
	Value string
	// ID is set when the value arrived as an object with an id.
	ID string
}

func (f *FlexString) UnmarshalJSON(data []byte) error {
	*f = FlexString{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &f.Value)
	case '{':
		var obj struct {
			ID          json.RawMessage `json:"id"`
			Name        string          `json:"name"`
			DisplayName string          `json:"displayName"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		f.ID = rawIDString(obj.ID)
		f.Value = strings.TrimSpace(obj.DisplayName)
		if f.Value == "" {
			f.Value = strings.TrimSpace(obj.Name)
		}
		if f.Value == "" {
			f.Value = f.ID
		}
	}
	return nil
}

// FlexNumber decodes a JSON number or a numeric string. Valid is false when
// the value was absent, not numeric, or not finite ("Infinity", "NaN").
type FlexNumber struct {
	Value float64
	Valid bool
	// Raw keeps the original token for diagnostics.
	Raw string
}

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	*f = FlexNumber{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	f.Raw = string(data)
	var s string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
	} else {
		s = string(data)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

// FlexID decodes an identifier given as a JSON string or number.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	*f = FlexID(rawIDString(data))
	return nil
}

// FlexList decodes a JSON array of objects or scalars. Objects are kept as
// maps and scalars are wrapped as {"value": v}. Non-array values decode to
// an empty list and set Coerced.
type FlexList struct {
	Items   []map[string]any
	Coerced bool
}

func (f *FlexList) UnmarshalJSON(data []byte) error {
	*f = FlexList{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var elems []json.RawMessage
	if data[0] != '[' || json.Unmarshal(data, &elems) != nil {
		f.Coerced = true
		return nil
	}
	f.Items = make([]map[string]any, 0, len(elems))
	for _, e := range elems {
		var obj map[string]any
		if err := json.Unmarshal(e, &obj); err == nil && obj != nil {
			f.Items = append(f.Items, obj)
			continue
		}
		var scalar any
		if err := json.Unmarshal(e, &scalar); err == nil {
			f.Items = append(f.Items, map[string]any{"value": scalar})
		}
	}
	return nil
}

// FlexStrings decodes a JSON array of identifiers, or a single identifier.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	*f = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '[' {
		if id := rawIDString(data); id != "" {
			*f = FlexStrings{id}
		}
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}
	out := make(FlexStrings, 0, len(elems))
	for _, e := range elems {
		if id := rawIDString(e); id != "" {
			out = append(out, id)
		}
	}
	*f = out
	return nil
}

// rawIDString renders a JSON string or number token as an id.
func rawIDString(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ""
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ""
	}
	return n.String()
}
