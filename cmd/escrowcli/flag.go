package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

// pubkeyValue implements flag.Value for base58 encoded identities.
type pubkeyValue struct {
	key *solana.PublicKey
}

func (v pubkeyValue) String() string {
	if v.key == nil {
		return ""
	}
	return v.key.String()
}

func (v pubkeyValue) Set(raw string) error {
	key, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return err
	}
	*v.key = key
	return nil
}

// flPubkey returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flPubkey(fl *flag.FlagSet, name, defaultVal, usage string) *solana.PublicKey {
	var key solana.PublicKey
	if defaultVal != "" {
		var err error
		key, err = solana.PublicKeyFromBase58(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q public key flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(pubkeyValue{key: &key}, name, usage)
	return &key
}
