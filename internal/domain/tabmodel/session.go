package tabmodel

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// SessionConfig configures a Session.
type SessionConfig struct {
	Logger              zerolog.Logger
	Clock               func() time.Time
	StrictPreconditions bool
	DefaultGroupColor   entity.TabGroupColor
}

// Session owns the tab models of one browsing session: a normal model that
// always exists and an incognito model created on demand.
type Session struct {
	cfg       SessionConfig
	normal    *GroupFilter
	incognito *GroupFilter
	empty     *EmptyTabModel
	selected  bool
	log       zerolog.Logger
}

// NewSession builds the normal model and selects it.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		cfg:   cfg,
		empty: NewEmptyTabModel(true),
		log:   cfg.Logger.With().Str("component", "tab_session").Logger(),
	}
	s.normal = s.newFilter(false)
	s.normal.Model().setActive(true)
	return s
}

func (s *Session) newFilter(incognito bool) *GroupFilter {
	model := NewCollection(CollectionConfig{
		Incognito: incognito,
		Logger:    s.cfg.Logger,
		Clock:     s.cfg.Clock,
		Preconditions: Preconditions{
			Strict: s.cfg.StrictPreconditions,
			Logger: s.cfg.Logger,
		},
	})
	return NewGroupFilter(model, GroupFilterConfig{DefaultColor: s.cfg.DefaultGroupColor})
}

// Normal returns the group filter of the normal model.
func (s *Session) Normal() *GroupFilter {
	return s.normal
}

// Incognito returns the incognito group filter, or nil when none exists.
func (s *Session) Incognito() *GroupFilter {
	return s.incognito
}

// EnsureIncognito returns the incognito group filter, creating it if needed.
func (s *Session) EnsureIncognito() *GroupFilter {
	if s.incognito == nil {
		s.incognito = s.newFilter(true)
		s.log.Debug().Msg("incognito model created")
	}
	return s.incognito
}

// Filter returns the group filter for the requested context, or nil.
func (s *Session) Filter(incognito bool) *GroupFilter {
	if incognito {
		return s.incognito
	}
	return s.normal
}

// Model returns the tab model for the requested context. Before the incognito
// model exists an EmptyTabModel stands in for it.
func (s *Session) Model(incognito bool) TabModel {
	if !incognito {
		return s.normal.Model()
	}
	if s.incognito == nil {
		return s.empty
	}
	return s.incognito.Model()
}

// IsIncognitoSelected reports whether the incognito model is the active one.
func (s *Session) IsIncognitoSelected() bool {
	return s.selected
}

// CurrentModel returns the active tab model.
func (s *Session) CurrentModel() TabModel {
	return s.Model(s.selected)
}

// CurrentFilter returns the active group filter, or nil when incognito is
// selected but does not exist.
func (s *Session) CurrentFilter() *GroupFilter {
	return s.Filter(s.selected)
}

// SelectModel makes the requested context active. Selecting incognito creates
// it.
func (s *Session) SelectModel(incognito bool) {
	if incognito {
		s.EnsureIncognito()
	}
	s.selected = incognito
	s.normal.Model().setActive(!incognito)
	if s.incognito != nil {
		s.incognito.Model().setActive(incognito)
	}
}

// DestroyIncognito destroys every incognito tab and drops the incognito
// model. The normal model becomes active.
func (s *Session) DestroyIncognito() {
	if s.incognito == nil {
		return
	}
	model := s.incognito.Model()
	model.CommitAllTabClosures()
	model.CloseTabs(entity.CloseAll(entity.WithUndo(false), entity.WithUponExit(true)))
	model.setActive(false)
	s.incognito = nil
	s.SelectModel(false)
	s.log.Debug().Msg("incognito model destroyed")
}
