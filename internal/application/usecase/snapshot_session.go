package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/repository"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/logging"
)

// SnapshotSessionUseCase handles saving session state snapshots.
type SnapshotSessionUseCase struct {
	stateRepo repository.SessionStateRepository
}

// NewSnapshotSessionUseCase creates a new SnapshotSessionUseCase.
func NewSnapshotSessionUseCase(stateRepo repository.SessionStateRepository) *SnapshotSessionUseCase {
	return &SnapshotSessionUseCase{stateRepo: stateRepo}
}

// SnapshotInput contains the parameters for saving a session snapshot.
type SnapshotInput struct {
	SessionID entity.SessionID
	// State was captured on the goroutine that owns the tab model.
	State *entity.SessionState
}

// CaptureSessionState builds the snapshot of a group filter's live tabs and
// group metadata. It must run on the goroutine that owns the model.
func CaptureSessionState(sessionID entity.SessionID, filter *tabmodel.GroupFilter, now time.Time) *entity.SessionState {
	if filter == nil {
		return entity.SnapshotFromTabs(sessionID, nil, entity.InvalidTabID, nil, now)
	}
	model := filter.Model()
	active := entity.InvalidTabID
	if current := model.CurrentTab(); current != nil {
		active = current.ID
	}
	return entity.SnapshotFromTabs(sessionID, model.Tabs(), active, filter.AllTabGroupMetadata(), now)
}

// Execute saves a captured snapshot.
func (uc *SnapshotSessionUseCase) Execute(ctx context.Context, input SnapshotInput) error {
	log := logging.FromContext(ctx)

	if input.SessionID == "" {
		return fmt.Errorf("session id required")
	}
	if input.State == nil {
		return fmt.Errorf("session state required")
	}

	state := input.State
	state.SessionID = input.SessionID
	if state.Version == 0 {
		state.Version = entity.SessionStateVersion
	}

	log.Debug().
		Str("session_id", string(input.SessionID)).
		Int("tab_count", len(state.Tabs)).
		Int("group_count", len(state.Groups)).
		Msg("creating session snapshot")

	if err := uc.stateRepo.SaveSnapshot(ctx, state); err != nil {
		return fmt.Errorf("save session snapshot: %w", err)
	}

	return nil
}
