package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter renders a comparison set as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format renders the comparison as JSON.
func (f *JSONFormatter) Format(set *Set) (string, error) {
	var data []byte
	var err error
	if f.Pretty {
		data, err = json.MarshalIndent(set, "", "  ")
	} else {
		data, err = json.Marshal(set)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
