package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/logging"
)

// ManageTabsUseCase handles everyday tab operations on a session.
type ManageTabsUseCase struct {
	session *tabmodel.Session
	creator port.TabCreator
}

// NewManageTabsUseCase creates a new tab management use case.
// A nil creator turns Create into a no-op.
func NewManageTabsUseCase(session *tabmodel.Session, creator port.TabCreator) *ManageTabsUseCase {
	return &ManageTabsUseCase{
		session: session,
		creator: creator,
	}
}

// CreateTabInput contains parameters for creating a new tab.
type CreateTabInput struct {
	URL        string
	Incognito  bool
	Background bool
	// Opener, InvalidTabID when the user opened the tab directly.
	ParentID entity.TabID
	// Join the opener's group.
	GroupWithParent bool
	// Index of the new tab, -1 appends.
	Index int
}

// CreateTabOutput contains the result of tab creation.
type CreateTabOutput struct {
	Tab *entity.Tab
}

// Create asks the tab creator for a new tab. Tab is nil when no tab was
// created.
func (uc *ManageTabsUseCase) Create(ctx context.Context, input CreateTabInput) (*CreateTabOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("url", input.URL).
		Bool("incognito", input.Incognito).
		Bool("background", input.Background).
		Msg("creating new tab")

	if uc.creator == nil {
		log.Debug().Msg("no tab creator, nothing created")
		return &CreateTabOutput{}, nil
	}

	model := uc.session.Model(input.Incognito)
	params := port.NewTabParams{
		URL:        input.URL,
		Index:      input.Index,
		LaunchType: entity.LaunchFromChromeUI,
		State:      entity.LiveInForeground,
		Incognito:  input.Incognito,
	}
	if input.Background {
		params.State = entity.LiveInBackground
	}
	if input.ParentID.IsValid() {
		params.Parent = model.TabByID(input.ParentID)
		if params.Parent == nil {
			return nil, fmt.Errorf("opener tab not found: %s", input.ParentID)
		}
		params.LaunchType = entity.LaunchFromLink
		if input.GroupWithParent {
			params.GroupID = params.Parent.GroupID
			params.LaunchType = entity.LaunchFromTabGroupUI
		}
	}

	tab := uc.creator.CreateNewTab(params)
	if tab == nil {
		log.Warn().Str("url", input.URL).Msg("tab creator declined to create a tab")
		return &CreateTabOutput{}, nil
	}

	log.Info().
		Int("tab_id", int(tab.ID)).
		Str("group_id", tab.GroupID.Short()).
		Int("position", uc.session.Model(input.Incognito).IndexOf(tab)).
		Msg("tab created")

	return &CreateTabOutput{Tab: tab}, nil
}

func (uc *ManageTabsUseCase) find(incognito bool, tabID entity.TabID) (tabmodel.TabModel, *entity.Tab, error) {
	model := uc.session.Model(incognito)
	tab := model.TabByID(tabID)
	if tab == nil {
		return model, nil, fmt.Errorf("tab not found: %s", tabID)
	}
	return model, tab, nil
}

// Switch changes the selected tab of the current model.
func (uc *ManageTabsUseCase) Switch(ctx context.Context, tabID entity.TabID) error {
	ctx = logging.WithTabID(ctx, int(tabID))
	log := logging.FromContext(ctx)

	model, _, err := uc.find(uc.session.IsIncognitoSelected(), tabID)
	if err != nil {
		return err
	}

	from := entity.InvalidTabID
	if current := model.CurrentTab(); current != nil {
		from = current.ID
	}
	model.SelectTab(tabID)

	log.Info().
		Int("from", int(from)).
		Msg("tab switched")

	return nil
}

// Move repositions a tab within the current model. The final position may
// differ from newPosition to keep groups contiguous.
func (uc *ManageTabsUseCase) Move(ctx context.Context, tabID entity.TabID, newPosition int) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Int("tab_id", int(tabID)).
		Int("new_position", newPosition).
		Msg("moving tab")

	model, tab, err := uc.find(uc.session.IsIncognitoSelected(), tabID)
	if err != nil {
		return err
	}
	if !model.MoveTab(tabID, newPosition) {
		return fmt.Errorf("failed to move tab to position %d", newPosition)
	}

	log.Info().
		Int("tab_id", int(tabID)).
		Int("position", model.IndexOf(tab)).
		Msg("tab moved")

	return nil
}

// Rename changes a tab's title.
func (uc *ManageTabsUseCase) Rename(ctx context.Context, tabID entity.TabID, title string) error {
	log := logging.FromContext(ctx)

	_, tab, err := uc.find(uc.session.IsIncognitoSelected(), tabID)
	if err != nil {
		return err
	}
	tab.Title = title

	log.Info().
		Int("tab_id", int(tabID)).
		Str("title", title).
		Msg("tab renamed")

	return nil
}

// Pin sets the pinned state of a tab.
func (uc *ManageTabsUseCase) Pin(ctx context.Context, tabID entity.TabID, pinned bool) error {
	log := logging.FromContext(ctx)

	_, tab, err := uc.find(uc.session.IsIncognitoSelected(), tabID)
	if err != nil {
		return err
	}
	tab.IsPinned = pinned

	log.Info().
		Int("tab_id", int(tabID)).
		Bool("pinned", pinned).
		Msg("tab pin state changed")

	return nil
}

// GetNext returns the tab next to the selection in the given direction,
// wrapping around. direction: 1 for next, -1 for previous.
func (uc *ManageTabsUseCase) GetNext(model tabmodel.TabModel, direction int) entity.TabID {
	if model == nil || model.Count() == 0 {
		return entity.InvalidTabID
	}

	current := model.Index()
	if current < 0 {
		return model.TabAt(0).ID
	}

	next := (current + direction) % model.Count()
	if next < 0 {
		next += model.Count()
	}
	return model.TabAt(next).ID
}

// SwitchNext switches to the next tab (wraps around).
func (uc *ManageTabsUseCase) SwitchNext(ctx context.Context) error {
	return uc.switchRelative(ctx, 1)
}

// SwitchPrevious switches to the previous tab (wraps around).
func (uc *ManageTabsUseCase) SwitchPrevious(ctx context.Context) error {
	return uc.switchRelative(ctx, -1)
}

func (uc *ManageTabsUseCase) switchRelative(ctx context.Context, direction int) error {
	model := uc.session.CurrentModel()
	id := uc.GetNext(model, direction)
	if !id.IsValid() {
		return nil
	}
	if current := model.CurrentTab(); current != nil && current.ID == id {
		return nil
	}
	return uc.Switch(ctx, id)
}

// SwitchByIndex switches to the tab at index (0-based) of the current model.
func (uc *ManageTabsUseCase) SwitchByIndex(ctx context.Context, index int) error {
	log := logging.FromContext(ctx)

	model := uc.session.CurrentModel()
	tab := model.TabAt(index)
	if tab == nil {
		log.Debug().Int("index", index).Msg("invalid tab index")
		return nil
	}
	return uc.Switch(ctx, tab.ID)
}

// UndoClose restores the tabs of the most recent closure in the current
// model and returns them.
func (uc *ManageTabsUseCase) UndoClose(ctx context.Context) []*entity.Tab {
	log := logging.FromContext(ctx)

	model, ok := uc.session.CurrentModel().(*tabmodel.Collection)
	if !ok {
		return nil
	}
	batch := model.LastClosedBatch()
	restored := make([]*entity.Tab, 0, len(batch))
	for _, tab := range batch {
		if model.CancelTabClosure(tab.ID) {
			restored = append(restored, tab)
		}
	}

	if len(restored) > 0 {
		log.Info().Int("tab_count", len(restored)).Msg("closure undone")
	}
	return restored
}
