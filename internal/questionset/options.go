package questionset

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeOptions normalizes an option payload into an ordered list of strings.
//
// Stored sets keep options as a JSON-encoded string while freshly decoded
// documents carry a list, so both shapes are accepted. A nil payload, an empty
// string or a JSON null decode to no options. Anything else is an error.
func DecodeOptions(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("option %d is %T, want string", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return decodeOptionsJSON([]byte(v))
	case []byte:
		return decodeOptionsJSON(v)
	case json.RawMessage:
		return decodeOptionsJSON(v)
	default:
		return nil, fmt.Errorf("unsupported options payload %T", raw)
	}
}

func decodeOptionsJSON(data []byte) ([]string, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	return out, nil
}

// EncodeOptions is the inverse of DecodeOptions for storage. It returns an
// empty string when there are no options.
func EncodeOptions(opts []string) (string, error) {
	if len(opts) == 0 {
		return "", nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}
	return string(b), nil
}
