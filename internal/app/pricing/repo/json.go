package repo

import "encoding/json"

// jsonString lets an already-encoded payload pass through spanner.NullJSON unchanged.
type jsonString string

func (s jsonString) MarshalJSON() ([]byte, error) {
	if !json.Valid([]byte(s)) {
		return json.Marshal(string(s))
	}
	return []byte(s), nil
}
