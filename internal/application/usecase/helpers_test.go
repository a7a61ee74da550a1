package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newTestSession(t *testing.T) *tabmodel.Session {
	t.Helper()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return tabmodel.NewSession(tabmodel.SessionConfig{
		Logger:              zerolog.Nop(),
		Clock:               func() time.Time { return now },
		StrictPreconditions: true,
	})
}

func addTabs(t *testing.T, f *tabmodel.GroupFilter, ids ...int) []*entity.Tab {
	t.Helper()
	tabs := make([]*entity.Tab, 0, len(ids))
	for _, id := range ids {
		tab := entity.NewTab(entity.TabID(id), fmt.Sprintf("https://example.com/%d", id))
		f.Model().AddTab(tab, -1, entity.LaunchFromChromeUI, entity.LiveInBackground)
		tabs = append(tabs, tab)
	}
	return tabs
}

func groupTabs(t *testing.T, f *tabmodel.GroupFilter, ids ...int) entity.TabGroupID {
	t.Helper()
	rest := make([]entity.TabID, 0, len(ids))
	for _, id := range ids[1:] {
		rest = append(rest, entity.TabID(id))
	}
	require.True(t, f.MergeListOfTabsToGroup(rest, entity.TabID(ids[0])))
	return f.Model().TabByID(entity.TabID(ids[0])).GroupID
}

func liveIDs(f *tabmodel.GroupFilter) []entity.TabID {
	return tabmodel.IDsOf(f.Model())
}

func tabIDs(v ...int) []entity.TabID {
	out := make([]entity.TabID, len(v))
	for i, id := range v {
		out[i] = entity.TabID(id)
	}
	return out
}
