package gconf

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/escrowswap/errors"
)

// Options are the app state options from a genesis file. Each package reads
// its own section.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// LoadGenesis reads genesis options from a json file.
func LoadGenesis(path string) (Options, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "read genesis %q: %s", path, err)
	}
	var opts Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "parse genesis %q: %s", path, err)
	}
	return opts, nil
}
