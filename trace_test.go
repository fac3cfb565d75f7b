package escrowswap

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestTraceSection(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), log.NewTMLogger(&buf))

	done := TraceSection(ctx, "deserialize")
	assert.Contains(t, buf.String(), "section started")
	assert.NotContains(t, buf.String(), "section finished")

	done()
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "section=deserialize"))
	assert.Contains(t, out, "elapsed=")

	// nothing is logged above debug level
	buf.Reset()
	quiet := WithLogger(ctx, log.NewFilter(log.NewTMLogger(&buf), log.AllowInfo()))
	TraceSection(quiet, "silent")()
	assert.Empty(t, buf.String())
}
