package ledger

import (
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/gconf"
)

// ConfigPkg is the name the ledger configuration is stored under.
const ConfigPkg = "ledger"

// Config is the ledger configuration singleton.
type Config struct {
	Rent escrowswap.Rent `json:"rent"`
}

var _ gconf.Configuration = (*Config)(nil)

// DefaultConfig is used when no configuration was saved.
func DefaultConfig() Config {
	return Config{Rent: escrowswap.DefaultRent()}
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	return errors.Wrap(c.Rent.Validate(), "rent")
}

// LoadConfig returns the saved configuration, or the default one.
func LoadConfig(db gconf.ReadStore) (Config, error) {
	var c Config
	switch err := gconf.Load(db, ConfigPkg, &c); {
	case err == nil:
		return c, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfig(), nil
	default:
		return c, err
	}
}

// InitGenesis saves the ledger configuration found in genesis options.
// Missing configuration is not an error.
func InitGenesis(db gconf.Store, opts gconf.Options) error {
	err := gconf.InitConfig(db, opts, ConfigPkg, &Config{})
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
