package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/iov-one/escrowswap/weavetest/assert"
	"github.com/iov-one/escrowswap/x/escrow"
)

func TestCmdInitEscrowHappyPath(t *testing.T) {
	var output bytes.Buffer
	if err := cmdInitEscrow(nil, &output, []string{"-amount", "42"}); err != nil {
		t.Fatalf("cannot create init payload: %s", err)
	}
	raw, err := hex.DecodeString(strings.TrimSpace(output.String()))
	assert.Nil(t, err)
	ix, err := escrow.Decode(raw)
	assert.Nil(t, err)
	assert.Equal(t, escrow.Init(42), ix)
}

func TestCmdExchangeHappyPath(t *testing.T) {
	var output bytes.Buffer
	if err := cmdExchange(nil, &output, []string{"-amount", "7"}); err != nil {
		t.Fatalf("cannot create exchange payload: %s", err)
	}
	assert.Equal(t, "010700000000000000\n", output.String())
}
