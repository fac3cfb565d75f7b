package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/x/escrow"
)

func cmdViewInstruction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Read a hex encoded instruction payload from the standard input and print
its content.
		`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	raw, err := readHex(input)
	if err != nil {
		return err
	}
	ix, err := escrow.Decode(raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "%s\t%d\n", ix.Tag, ix.Amount)
	return err
}

func cmdViewRecord(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Read a hex encoded escrow account data from the standard input and print
the record it holds as JSON.
		`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	raw, err := readHex(input)
	if err != nil {
		return err
	}
	r, err := escrow.Unpack(raw)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(recordView{
		Initialized:        r.Initialized,
		Initializer:        r.Initializer.String(),
		TempToken:          r.TempToken.String(),
		InitializerReceive: r.InitializerReceive.String(),
		ExpectedAmount:     r.ExpectedAmount,
	}, "", "\t")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

type recordView struct {
	Initialized        bool   `json:"initialized"`
	Initializer        string `json:"initializer"`
	TempToken          string `json:"temp_token"`
	InitializerReceive string `json:"initializer_receive"`
	ExpectedAmount     uint64 `json:"expected_amount"`
}

func readHex(input io.Reader) ([]byte, error) {
	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	b, err := hex.DecodeString(string(bytes.TrimSpace(raw)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return b, nil
}
