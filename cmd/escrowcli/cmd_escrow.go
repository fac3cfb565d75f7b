package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/escrowswap/x/escrow"
)

func cmdInitEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a hex encoded payload of an instruction opening a trade. Amount is
what the initializer expects to receive in return.
		`)
		fl.PrintDefaults()
	}
	var (
		amountFl = fl.Uint64("amount", 0, "Amount of tokens expected in return.")
	)
	fl.Parse(args)

	return writeInstruction(output, escrow.Init(*amountFl))
}

func cmdExchange(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a hex encoded payload of an instruction taking a trade. Amount is
what the taker expects to receive from custody.
		`)
		fl.PrintDefaults()
	}
	var (
		amountFl = fl.Uint64("amount", 0, "Amount of tokens expected from custody.")
	)
	fl.Parse(args)

	return writeInstruction(output, escrow.Exchange(*amountFl))
}

func writeInstruction(output io.Writer, ix escrow.Instruction) error {
	_, err := fmt.Fprintln(output, hex.EncodeToString(escrow.Encode(ix)))
	return err
}
