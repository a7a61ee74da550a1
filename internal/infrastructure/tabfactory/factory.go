// Package tabfactory materializes tabs for the in-process tab models.
package tabfactory

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	taburl "github.com/bnema/tabstrip/internal/domain/url"
)

// Config configures a Factory.
type Config struct {
	// FirstID is the id of the first tab handed out. Defaults to 1.
	FirstID entity.TabID
	Clock   func() time.Time
	Logger  zerolog.Logger
}

// Factory creates tabs and adds them to the matching model of a session.
// Tab ids are allocated sequentially and never reused within a session.
type Factory struct {
	session *tabmodel.Session
	nextID  entity.TabID
	clock   func() time.Time
	log     zerolog.Logger
}

// New creates a Factory for session.
func New(session *tabmodel.Session, cfg Config) *Factory {
	if cfg.FirstID <= 0 {
		cfg.FirstID = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Factory{
		session: session,
		nextID:  cfg.FirstID,
		clock:   cfg.Clock,
		log:     cfg.Logger.With().Str("component", "tab_factory").Logger(),
	}
}

// NextID returns the id the next new tab will get.
func (f *Factory) NextID() entity.TabID { return f.nextID }

func (f *Factory) reserve(id entity.TabID) {
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

func (f *Factory) model(incognito bool) *tabmodel.Collection {
	if incognito {
		return f.session.EnsureIncognito().Model()
	}
	return f.session.Normal().Model()
}

// CreateNewTab implements port.TabCreator. Tabs opened from another tab
// without an explicit index land right after their opener. It returns nil
// when the model refuses the tab.
func (f *Factory) CreateNewTab(params port.NewTabParams) *entity.Tab {
	model := f.model(params.Incognito)

	rawURL := taburl.Normalize(params.URL)
	if rawURL == "" {
		rawURL = entity.NewTabPageURL
	}

	tab := entity.NewTab(f.nextID, rawURL)
	f.reserve(tab.ID)
	tab.Incognito = params.Incognito
	tab.CreatedAt = f.clock()
	tab.GroupID = params.GroupID

	index := params.Index
	if params.Parent != nil {
		tab.ParentID = params.Parent.ID
		if parentIndex := model.IndexOf(params.Parent); index < 0 && parentIndex >= 0 {
			index = parentIndex + 1
		}
	}
	if index < 0 {
		index = model.Count()
	}

	model.AddTab(tab, index, params.LaunchType, params.State)
	if model.TabByID(tab.ID) != tab {
		f.log.Warn().Int("tab_id", int(tab.ID)).Msg("model refused new tab")
		return nil
	}

	f.log.Debug().
		Int("tab_id", int(tab.ID)).
		Int("index", model.IndexOf(tab)).
		Str("launch", params.LaunchType.String()).
		Bool("incognito", tab.Incognito).
		Msg("tab created")
	return tab
}

// CreateFrozenTab implements port.TabCreator. It returns nil when id is
// invalid or already used by the model.
func (f *Factory) CreateFrozenTab(state port.FrozenTabState, id entity.TabID, index int) *entity.Tab {
	model := f.model(state.Incognito)
	if !id.IsValid() || model.TabByID(id) != nil || model.IsClosurePending(id) {
		f.log.Warn().Int("tab_id", int(id)).Msg("frozen tab id unavailable")
		return nil
	}
	f.reserve(id)

	tab := entity.NewTab(id, state.URL)
	tab.Title = state.Title
	tab.GroupID = state.GroupID
	tab.ParentID = state.ParentID
	tab.IsPinned = state.IsPinned
	tab.Incognito = state.Incognito
	tab.CreatedAt = f.clock()

	model.AddTab(tab, index, entity.LaunchFromRestore, entity.FrozenOnRestore)
	if model.TabByID(id) != tab {
		f.log.Warn().Int("tab_id", int(id)).Msg("model refused frozen tab")
		return nil
	}
	return tab
}

var _ port.TabCreator = (*Factory)(nil)
