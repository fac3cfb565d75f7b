package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/weavetest"
	"github.com/iov-one/escrowswap/weavetest/assert"
	"github.com/iov-one/escrowswap/x/escrow"
)

func TestCmdViewInstruction(t *testing.T) {
	cases := map[string]struct {
		input      string
		wantOutput string
		wantErr    *errors.Error
	}{
		"init": {
			input:      "000a00000000000000\n",
			wantOutput: "Init\t10\n",
		},
		"exchange with trailing bytes": {
			input:      "01ffffffffffffffffdead",
			wantOutput: "Exchange\t18446744073709551615\n",
		},
		"unknown tag": {
			input:   "020a00000000000000",
			wantErr: escrow.ErrInvalidInstruction,
		},
		"truncated amount": {
			input:   "000a",
			wantErr: escrow.ErrInvalidInstruction,
		},
		"not hex": {
			input:   "zz",
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var output bytes.Buffer
			err := cmdViewInstruction(strings.NewReader(tc.input), &output, nil)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantOutput, output.String())
		})
	}
}

func TestCmdViewRecord(t *testing.T) {
	record := escrow.Record{
		Initialized:        true,
		Initializer:        weavetest.NewPubkey(),
		TempToken:          weavetest.NewPubkey(),
		InitializerReceive: weavetest.NewPubkey(),
		ExpectedAmount:     33,
	}
	raw, err := record.Marshal()
	assert.Nil(t, err)
	input := hex.EncodeToString(raw)

	var output bytes.Buffer
	if err := cmdViewRecord(strings.NewReader(input), &output, nil); err != nil {
		t.Fatalf("cannot view record: %s", err)
	}

	var got recordView
	assert.Nil(t, json.Unmarshal(output.Bytes(), &got))
	assert.Equal(t, recordView{
		Initialized:        true,
		Initializer:        record.Initializer.String(),
		TempToken:          record.TempToken.String(),
		InitializerReceive: record.InitializerReceive.String(),
		ExpectedAmount:     33,
	}, got)
}

func TestCmdViewRecordInvalidFlag(t *testing.T) {
	raw := make([]byte, escrow.RecordLen)
	raw[0] = 2
	err := cmdViewRecord(strings.NewReader(hex.EncodeToString(raw)), &bytes.Buffer{}, nil)
	assert.IsErr(t, errors.ErrInvalidAccountData, err)
}
