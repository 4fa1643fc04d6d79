package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSONRoundTrip(t *testing.T) {
	cases := []Value{
		Float(1.5),
		Bool(true),
		Text("hello"),
		Vec3(1, 2, 3),
		Quat(0, 0, 0, 1),
		ColorRgba(0.1, 0.2, 0.3, 1),
		NewTransform(IdentityTransform()),
		Vector([]float32{1, 2, 3, 4}),
		Record(Field{Key: "b", Value: Float(2)}, Field{Key: "a", Value: Float(1)}),
		Array(Float(1), Float(2)),
		List(Text("x"), Text("y")),
		Tuple(Float(1), Text("x")),
		Enum("Play", Float(1)),
	}

	for _, v := range cases {
		raw, err := json.Marshal(v)
		require.NoError(t, err)

		var out Value
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, v.Kind(), out.Kind())

		raw2, err := json.Marshal(out)
		require.NoError(t, err)
		assert.JSONEq(t, string(raw), string(raw2))
	}
}

func TestValueJSONLegacyForm(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"vec3":[1,2,3]}`), &v))
	assert.Equal(t, KindVec3, v.Kind())
	lanes, n := v.Lanes()
	assert.Equal(t, 3, n)
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{lanes[0], lanes[1], lanes[2]})
}

func TestRecordFlattenOrderIsLexicographic(t *testing.T) {
	r := Record(Field{Key: "z", Value: Float(1)}, Field{Key: "a", Value: Float(2)})
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"key":"a"`)

	// "a" must be emitted before "z" despite insertion order.
	idxA := indexOf(string(raw), `"key":"a"`)
	idxZ := indexOf(string(raw), `"key":"z"`)
	assert.Less(t, idxA, idxZ)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestShapeZero(t *testing.T) {
	assert.Equal(t, Float(0), Shape{Kind: KindFloat}.Zero())
	assert.Equal(t, IdentityQuat(), Shape{Kind: KindQuat}.Zero())

	vecShape := Shape{Kind: KindVector, Len: 3}
	zv := vecShape.Zero()
	data, ok := zv.AsVector()
	require.True(t, ok)
	assert.Equal(t, []float32{0, 0, 0}, data)
}

func TestShapeEqual(t *testing.T) {
	a := Shape{Kind: KindRecord, Fields: map[string]Shape{"x": {Kind: KindFloat}}}
	b := Shape{Kind: KindRecord, Fields: map[string]Shape{"x": {Kind: KindFloat}}}
	assert.True(t, a.Equal(b))

	c := Shape{Kind: KindRecord, Fields: map[string]Shape{"x": {Kind: KindBool}}}
	assert.False(t, a.Equal(c))
}
