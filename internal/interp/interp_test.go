package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLiteralOnly(t *testing.T) {
	segs, err := Parse("Hello, world")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	require.Equal(t, Literal, segs[0].Kind)
	require.Equal(t, "Hello, world", segs[0].Text)
}

func TestParseEscapedInterpolation(t *testing.T) {
	segs, err := Parse("Hello #{$data.name}!")
	require.NoError(t, err)
	require.Len(t, segs, 3)
	require.Equal(t, Literal, segs[0].Kind)
	require.Equal(t, "Hello ", segs[0].Text)
	require.Equal(t, Escaped, segs[1].Kind)
	require.Equal(t, "$data.name", segs[1].Expr)
	require.Equal(t, "!", segs[2].Text)
}

func TestParseRawInterpolation(t *testing.T) {
	segs, err := Parse("raw: ${$data.html}")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	require.Equal(t, Raw, segs[1].Kind)
	require.Equal(t, "$data.html", segs[1].Expr)
}

func TestParseInlineTag(t *testing.T) {
	segs, err := Parse("see #[strong bold]")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	require.Equal(t, InlineTag, segs[1].Kind)
	require.Equal(t, "strong bold", segs[1].Text)
}

func TestParseEscapeSequences(t *testing.T) {
	segs, err := Parse("price: \\$5 and a backtick \\`")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	require.Equal(t, "price: $5 and a backtick `", segs[0].Text)
}

func TestParseUnterminated(t *testing.T) {
	_, err := Parse("broken #{oops")
	require.Error(t, err)
}
