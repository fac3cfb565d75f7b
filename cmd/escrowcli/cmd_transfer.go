package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/escrowswap/x/transfer"
)

func cmdTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a hex encoded payload of an instruction moving lamports out of an
account owned by the transfer program.
		`)
		fl.PrintDefaults()
	}
	var (
		amountFl = fl.Uint64("amount", 0, "Amount of lamports to move.")
	)
	fl.Parse(args)

	_, err := fmt.Fprintln(output, hex.EncodeToString(transfer.Encode(transfer.Instruction{Amount: *amountFl})))
	return err
}
