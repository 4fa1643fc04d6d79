package pathkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"robot/a",
		"node/Transform.translation",
		"ns1/ns2/target.field.sub",
		"anim/player/1/cmd/play",
	}
	for _, s := range cases {
		p, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, p.String())
	}
}

func TestParseRejectsEmptyAndWhitespaceSegments(t *testing.T) {
	bad := []string{
		"",
		"/target",
		"ns//target",
		"ns/ /target",
		"ns/target.",
		"ns/tar get",
	}
	for _, s := range bad {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrInvalidPath, "expected error for %q", s)
	}
}

func TestOrderingIsTotal(t *testing.T) {
	a, _ := Parse("a/target")
	b, _ := Parse("b/target")
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	c, _ := Parse("a/target")
	assert.False(t, a.Less(c))
	assert.True(t, a.Equal(c))
}

func TestJSONRoundTrip(t *testing.T) {
	p, err := Parse("robot/arm.angle")
	require.NoError(t, err)
	raw, err := p.MarshalJSON()
	require.NoError(t, err)

	var out TypedPath
	require.NoError(t, out.UnmarshalJSON(raw))
	assert.True(t, p.Equal(out))
}
