package writebatch

import (
	"encoding/json"
	"testing"

	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendOrderPreserved(t *testing.T) {
	pa, _ := pathkey.Parse("robot/a")
	pb, _ := pathkey.Parse("robot/b")

	var batch WriteBatch
	batch.Append(WriteOp{Path: pa, Value: value.Float(1)})
	batch.Append(WriteOp{Path: pb, Value: value.Float(2)})

	ops := batch.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, "robot/a", ops[0].Path.String())
	assert.Equal(t, "robot/b", ops[1].Path.String())
}

func TestJSONRoundTrip(t *testing.T) {
	pa, _ := pathkey.Parse("robot/a")

	var batch WriteBatch
	batch.Append(WriteOp{Path: pa, Value: value.Float(1.5)})

	raw, err := json.Marshal(batch)
	require.NoError(t, err)

	var out WriteBatch
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Ops(), 1)
	assert.Equal(t, "robot/a", out.Ops()[0].Path.String())
	f, ok := out.Ops()[0].Value.AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 1.5, f, 1e-6)
}
