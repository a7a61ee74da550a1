package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/repository"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/logging"
)

// ErrSessionNotFound is returned when a session state cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrVersionMismatch is returned when the session state version is incompatible.
var ErrVersionMismatch = errors.New("session state version mismatch")

// RestoreSessionUseCase handles restoring session state from a snapshot.
type RestoreSessionUseCase struct {
	stateRepo repository.SessionStateRepository
	creator   port.TabCreator
}

// NewRestoreSessionUseCase creates a new RestoreSessionUseCase.
func NewRestoreSessionUseCase(
	stateRepo repository.SessionStateRepository,
	creator port.TabCreator,
) *RestoreSessionUseCase {
	return &RestoreSessionUseCase{
		stateRepo: stateRepo,
		creator:   creator,
	}
}

// RestoreInput contains the parameters for restoring a session.
type RestoreInput struct {
	// SessionID names the snapshot to load. When empty the latest snapshot
	// of any session other than CurrentSessionID is used.
	SessionID        entity.SessionID
	CurrentSessionID entity.SessionID
}

// RestoreOutput contains the restored session state.
type RestoreOutput struct {
	State *entity.SessionState
}

// Load fetches and validates a session state for restoration.
func (uc *RestoreSessionUseCase) Load(ctx context.Context, input RestoreInput) (*RestoreOutput, error) {
	log := logging.FromContext(ctx)

	var (
		state *entity.SessionState
		err   error
	)
	if input.SessionID != "" {
		log.Info().
			Str("session_id", string(input.SessionID)).
			Msg("restoring session state")
		state, err = uc.stateRepo.GetSnapshot(ctx, input.SessionID)
	} else {
		log.Info().Msg("restoring latest session state")
		state, err = uc.stateRepo.GetLatestSnapshot(ctx, input.CurrentSessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("get session snapshot: %w", err)
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}

	if state.Version > entity.SessionStateVersion {
		log.Warn().
			Int("state_version", state.Version).
			Int("current_version", entity.SessionStateVersion).
			Msg("session state version is newer than current version")
		return nil, ErrVersionMismatch
	}

	log.Info().
		Str("session_id", string(state.SessionID)).
		Int("tab_count", len(state.Tabs)).
		Int("group_count", len(state.Groups)).
		Msg("session state loaded for restoration")

	return &RestoreOutput{State: state}, nil
}

// ApplyOutput reports what Apply re-created.
type ApplyOutput struct {
	Tabs    []*entity.Tab
	Skipped int
}

// Apply re-creates the tabs of state as frozen tabs appended to filter's
// model, then reapplies group metadata and the active tab. Tabs whose id is
// already used by the model are skipped.
func (uc *RestoreSessionUseCase) Apply(
	ctx context.Context,
	state *entity.SessionState,
	filter *tabmodel.GroupFilter,
) (*ApplyOutput, error) {
	log := logging.FromContext(ctx)

	if state == nil {
		return nil, fmt.Errorf("session state required")
	}
	if filter == nil {
		return nil, fmt.Errorf("tab group filter required")
	}
	if uc.creator == nil {
		return &ApplyOutput{Skipped: len(state.Tabs)}, nil
	}

	model := filter.Model()
	out := &ApplyOutput{Tabs: make([]*entity.Tab, 0, len(state.Tabs))}
	var active *entity.Tab
	for i, snap := range state.Tabs {
		tab := uc.creator.CreateFrozenTab(port.FrozenTabState{
			URL:      snap.URL,
			Title:    snap.Title,
			GroupID:  snap.GroupID,
			ParentID: snap.ParentID,
			IsPinned: snap.IsPinned,
		}, snap.ID, model.Count())
		if tab == nil {
			log.Debug().Int("tab_id", int(snap.ID)).Msg("restore: tab skipped")
			out.Skipped++
			continue
		}
		out.Tabs = append(out.Tabs, tab)
		if i == state.ActiveTabIndex {
			active = tab
		}
	}

	for _, g := range state.Groups {
		if !filter.ApplyTabGroupMetadata(g.ID, g.Metadata()) {
			log.Debug().Str("group_id", g.ID.Short()).Msg("restore: group metadata dropped")
		}
	}

	if active != nil {
		model.SelectTab(active.ID)
	}

	log.Info().
		Str("session_id", string(state.SessionID)).
		Int("restored", len(out.Tabs)).
		Int("skipped", out.Skipped).
		Msg("session restored")

	return out, nil
}

// DeleteSnapshot removes a session's snapshot (for cleanup after failed restore or user deletion).
func (uc *RestoreSessionUseCase) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	return uc.stateRepo.DeleteSnapshot(ctx, sessionID)
}
