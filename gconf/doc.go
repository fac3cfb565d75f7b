/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each package owns a single configuration singleton. It is loaded from the
"conf" section of a genesis file, validated and saved under a key derived
from the package name. Load returns ErrNotFound when nothing was saved, so
that callers can fall back to defaults.
*/
package gconf
