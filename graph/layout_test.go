package graph

import (
	"testing"

	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenScalar(t *testing.T) {
	flat, ok := Flatten(value.Float(3.5))
	require.True(t, ok)
	assert.Equal(t, []float32{3.5}, flat.Data)
}

func TestFlattenVec3(t *testing.T) {
	flat, ok := Flatten(value.Vec3(1, 2, 3))
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, flat.Data)
}

func TestFlattenRejectsNonNumeric(t *testing.T) {
	_, ok := Flatten(value.Text("hi"))
	assert.False(t, ok)
}

func TestFlattenRecordSortsFieldsByKey(t *testing.T) {
	rec := value.Record(
		value.Field{Key: "b", Value: value.Float(2)},
		value.Field{Key: "a", Value: value.Float(1)},
	)
	flat, ok := Flatten(rec)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2}, flat.Data)
	assert.Equal(t, []string{"a", "b"}, flat.Shape.FieldOrder)
}

func TestReconstructRoundTripsVec3(t *testing.T) {
	v := value.Vec3(4, 5, 6)
	flat, ok := Flatten(v)
	require.True(t, ok)
	got := Reconstruct(flat.Shape, flat.Data)
	lanes, _ := got.Lanes()
	assert.Equal(t, [4]float32{4, 5, 6, 0}, lanes)
}

func TestReconstructRoundTripsTransform(t *testing.T) {
	tr := value.NewTransform(value.Transform{Pos: [3]float32{1, 2, 3}, Rot: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}})
	flat, ok := Flatten(tr)
	require.True(t, ok)
	got := Reconstruct(flat.Shape, flat.Data)
	back, ok := got.AsTransform()
	require.True(t, ok)
	assert.Equal(t, [3]float32{1, 2, 3}, back.Pos)
}

func TestAlignPassesThroughIdenticalShapes(t *testing.T) {
	a, _ := Flatten(value.Vec2(1, 2))
	b, _ := Flatten(value.Vec2(3, 4))
	shape, ad, bd, ok := Align(a, b)
	require.True(t, ok)
	assert.Equal(t, value.KindVec2, shape.Kind)
	assert.Equal(t, []float32{1, 2}, ad)
	assert.Equal(t, []float32{3, 4}, bd)
}

func TestAlignBroadcastsScalar(t *testing.T) {
	scalar, _ := Flatten(value.Float(2))
	vec, _ := Flatten(value.Vec3(1, 1, 1))
	shape, ad, bd, ok := Align(scalar, vec)
	require.True(t, ok)
	assert.Equal(t, value.KindVec3, shape.Kind)
	assert.Equal(t, []float32{2, 2, 2}, ad)
	assert.Equal(t, []float32{1, 1, 1}, bd)
}

func TestAlignRejectsMismatchedNonScalarShapes(t *testing.T) {
	vec2, _ := Flatten(value.Vec2(1, 2))
	vec3, _ := Flatten(value.Vec3(1, 2, 3))
	_, _, _, ok := Align(vec2, vec3)
	assert.False(t, ok)
}
