package nodes

import (
	"testing"

	"github.com/drafter/drafter/internal/layout"
	"github.com/drafter/drafter/internal/render"
	"github.com/drafter/drafter/internal/render/record"
	"github.com/stretchr/testify/require"
)

func draw(t *testing.T, n *layout.Node, w, h float64) (layout.Extent, *record.Surface) {
	t.Helper()
	real, scratch := record.New("real"), record.New("scratch")
	ext, err := n.Draw(layout.NewContext(render.Rect{W: w, H: h}, real, scratch))
	require.NoError(t, err)
	require.Zero(t, real.Depth())
	require.Zero(t, scratch.Depth())
	return ext, real
}

func texts(s *record.Surface) []string {
	var out []string
	for _, op := range s.Filter(record.OpText) {
		out = append(out, op.Text)
	}
	return out
}
