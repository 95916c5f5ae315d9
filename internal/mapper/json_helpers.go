package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func encodeMap(m map[string]interface{}) datatypes.JSON {
	if m == nil {
		return datatypes.JSON("{}")
	}
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}

func decodeMap(raw datatypes.JSON) map[string]interface{} {
	m := make(map[string]interface{})
	if len(raw) == 0 {
		return m
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return make(map[string]interface{})
	}
	return m
}

// EncodeJSON returns nil for nil values so the column stays NULL.
func EncodeJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
