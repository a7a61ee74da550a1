package styles_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/cli/styles"
	"github.com/bnema/tabstrip/internal/domain/entity"
)

func TestSessionsCLIRenderer(t *testing.T) {
	r := styles.NewSessionsCLIRenderer(styles.NewTheme())

	out := r.RenderEmptyList()
	require.Contains(t, out, "No saved sessions found.")

	now := time.Now().UTC()
	items := []entity.SessionInfo{
		{
			Session:    &entity.Session{ID: entity.SessionID("20260210_120000_abcd")},
			TabCount:   3,
			GroupCount: 1,
			IsCurrent:  true,
			UpdatedAt:  now,
		},
	}
	out = r.RenderList(items, 20)
	require.Contains(t, out, "Sessions")
	require.Contains(t, out, "20260210_120000_abcd")
	require.Contains(t, out, "3 tabs")
	require.Contains(t, out, "1 group")
	require.NotContains(t, out, "1 groups")

	require.Contains(t, r.RenderRestored(&usecase.ApplyOutput{Tabs: make([]*entity.Tab, 2), Skipped: 1}), "2 tabs (1 skipped)")
	require.Contains(t, r.RenderRestored(nil), "Nothing to restore")

	errOut := r.RenderError(errors.New("boom"))
	require.Contains(t, errOut, "boom")
}
