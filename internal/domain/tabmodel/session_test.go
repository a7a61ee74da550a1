package tabmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
)

func TestSession_IncognitoIsCreatedOnDemand(t *testing.T) {
	s, _ := newTestSession(t)

	assert.Nil(t, s.Incognito())
	empty := s.Model(true)
	require.IsType(t, &tabmodel.EmptyTabModel{}, empty)
	assert.True(t, empty.IsIncognito())
	assert.Zero(t, empty.Count())
	assert.False(t, empty.CloseTabs(entity.CloseAll()))
	assert.Equal(t, entity.InvalidTabID, empty.NextTabIfClosed(1, false))

	f := s.EnsureIncognito()
	assert.Same(t, f, s.EnsureIncognito())
	assert.True(t, s.Model(true).IsIncognito())
	assert.False(t, s.Model(false).IsIncognito())
}

func TestSession_SelectModel(t *testing.T) {
	s, _ := newTestSession(t)
	assert.True(t, s.Normal().Model().IsActiveModel())
	assert.False(t, s.IsIncognitoSelected())

	s.SelectModel(true)

	require.NotNil(t, s.Incognito())
	assert.True(t, s.IsIncognitoSelected())
	assert.True(t, s.Incognito().Model().IsActiveModel())
	assert.False(t, s.Normal().Model().IsActiveModel())
	assert.Same(t, s.Incognito(), s.CurrentFilter())
	assert.True(t, s.CurrentModel().IsIncognito())
}

func TestSession_DestroyIncognito(t *testing.T) {
	s, _ := newTestSession(t)
	f := s.EnsureIncognito()
	s.SelectModel(true)

	tabs := make([]*entity.Tab, 0, 2)
	for id := 1; id <= 2; id++ {
		tab := entity.NewTab(entity.TabID(id), "")
		tab.Incognito = true
		f.Model().AddTab(tab, -1, entity.LaunchFromChromeUI, entity.LiveInForeground)
		tabs = append(tabs, tab)
	}
	require.True(t, f.Model().CloseTabs(entity.CloseTab(tabs[0])))

	s.DestroyIncognito()

	assert.Nil(t, s.Incognito())
	assert.False(t, s.IsIncognitoSelected())
	assert.True(t, s.Normal().Model().IsActiveModel())
	for _, tab := range tabs {
		assert.True(t, tab.IsDestroyed())
	}
	s.DestroyIncognito()
}
