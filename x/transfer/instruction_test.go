package transfer

import (
	"testing"

	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cases := map[string]struct {
		raw     []byte
		want    Instruction
		wantErr *errors.Error
	}{
		"amount": {
			raw:  []byte{9, 0, 0, 0, 0, 0, 0, 0},
			want: Instruction{Amount: 9},
		},
		"max amount": {
			raw:  []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			want: Instruction{Amount: ^uint64(0)},
		},
		"trailing bytes are ignored": {
			raw:  []byte{0, 1, 0, 0, 0, 0, 0, 0, 0xde},
			want: Instruction{Amount: 256},
		},
		"empty": {
			raw:     nil,
			wantErr: ErrInvalidInstructionData,
		},
		"truncated": {
			raw:     []byte{9, 0, 0, 0, 0, 0, 0},
			wantErr: ErrInvalidInstructionData,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Decode(tc.raw)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, Encode(Instruction{Amount: 0x0102030405060708}))
}

func TestNewTransferInstruction(t *testing.T) {
	program, source, destination := weavetest.NewPubkey(), weavetest.NewPubkey(), weavetest.NewPubkey()
	ix := NewTransferInstruction(program, source, destination, 42)

	assert.Equal(t, program, ix.ProgramID())
	metas := ix.Accounts()
	require.Len(t, metas, 2)
	assert.Equal(t, source, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.False(t, metas[0].IsSigner)
	assert.Equal(t, destination, metas[1].PublicKey)
	assert.True(t, metas[1].IsWritable)

	data, err := ix.Data()
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.Amount)
}
