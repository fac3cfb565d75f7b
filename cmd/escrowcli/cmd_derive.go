package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/x/escrow"
)

func cmdDerive(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the custody address of the escrow program and its bump seed.
		`)
		fl.PrintDefaults()
	}
	var (
		programFl = flPubkey(fl, "program", "", "Base58 encoded identity of the escrow program.")
	)
	fl.Parse(args)

	if *programFl == (solana.PublicKey{}) {
		return errors.Wrap(errors.ErrInvalidInput, "program is required")
	}
	addr, bump, err := escrow.Derive(*programFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "%s\t%d\n", addr, bump)
	return err
}
