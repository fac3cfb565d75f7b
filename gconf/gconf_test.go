package gconf

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/store"
	"github.com/iov-one/escrowswap/weavetest/assert"
)

// limits is a configuration serialized as json.
type limits struct {
	Max uint64 `json:"max"`
}

func (l *limits) Marshal() ([]byte, error) { return json.Marshal(l) }

func (l *limits) Unmarshal(raw []byte) error { return json.Unmarshal(raw, l) }

func (l *limits) Validate() error {
	if l.Max == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "max is required")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *limits
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &limits{Max: 42},
		},
		"invalid cannot be saved": {
			Conf:        &limits{},
			WantSaveErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			err := Save(db, "mypkg", tc.Conf)
			if tc.WantSaveErr != nil {
				assert.IsErr(t, tc.WantSaveErr, err)
				assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &limits{}))
				return
			}
			assert.Nil(t, err)

			var got limits
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, *tc.Conf, got)

			assert.IsErr(t, errors.ErrNotFound, Load(db, "otherpkg", &got))
		})
	}
}

func TestInitConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "gconf-")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	genesis := `{"conf": {"mypkg": {"max": 7}}}`
	assert.Nil(t, ioutil.WriteFile(path, []byte(genesis), 0600))

	opts, err := LoadGenesis(path)
	assert.Nil(t, err)

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "mypkg", &limits{}))

	var got limits
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, uint64(7), got.Max)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "otherpkg", &limits{}))

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.IsErr(t, errors.ErrNotFound, err)
}
