package entities

import "encoding/json"

// marshalJSONString and unmarshalJSONString back every value object's JSON
// form: they serialize as their underlying primitive, never as an object.
func marshalJSONString(s string) ([]byte, error) {
	return json.Marshal(s)
}

func unmarshalJSONString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}
