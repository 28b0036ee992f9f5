package event

import (
	"encoding/json"
	"fmt"
)

// PayloadAs returns the payload of e as T. Events published on the bus carry
// the typed struct; events read back from a trace carry generic JSON values
// and are converted through a JSON round trip.
func PayloadAs[T any](e Event) (T, error) {
	var out T
	switch p := e.Payload.(type) {
	case T:
		return p, nil
	case *T:
		if p != nil {
			return *p, nil
		}
	case nil:
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return out, fmt.Errorf(ErrMsgPayloadFmt, e.Type, err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return out, fmt.Errorf(ErrMsgPayloadFmt, e.Type, err)
		}
		return out, nil
	}
	return out, fmt.Errorf(ErrMsgPayloadFmt, e.Type, ErrMsgPayloadMissing)
}
