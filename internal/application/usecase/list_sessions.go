package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/repository"
	"github.com/bnema/tabstrip/internal/logging"
)

const defaultSessionListLimit = 50

// ListSessionsUseCase handles listing sessions with their state information.
type ListSessionsUseCase struct {
	sessionRepo repository.SessionRepository
	stateRepo   repository.SessionStateRepository
}

// NewListSessionsUseCase creates a new ListSessionsUseCase.
func NewListSessionsUseCase(
	sessionRepo repository.SessionRepository,
	stateRepo repository.SessionStateRepository,
) *ListSessionsUseCase {
	return &ListSessionsUseCase{
		sessionRepo: sessionRepo,
		stateRepo:   stateRepo,
	}
}

// ListSessionsOutput contains the list of sessions with their info.
type ListSessionsOutput struct {
	Sessions []entity.SessionInfo
}

// Execute returns recent sessions with their snapshot summary, current
// session first, then active ones, then most recently updated.
func (uc *ListSessionsUseCase) Execute(ctx context.Context, currentSessionID entity.SessionID, limit int) (*ListSessionsOutput, error) {
	if limit <= 0 {
		limit = defaultSessionListLimit
	}

	sessions, err := uc.sessionRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent sessions: %w", err)
	}

	result := make([]entity.SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, uc.info(ctx, session, currentSessionID))
	}

	slices.SortStableFunc(result, func(a, b entity.SessionInfo) int {
		return compareSessionInfos(a, b, currentSessionID)
	})

	return &ListSessionsOutput{Sessions: result}, nil
}

// GetSessionInfo returns info for a specific session, or nil when unknown.
func (uc *ListSessionsUseCase) GetSessionInfo(
	ctx context.Context,
	sessionID, currentSessionID entity.SessionID,
) (*entity.SessionInfo, error) {
	session, err := uc.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	info := uc.info(ctx, session, currentSessionID)
	return &info, nil
}

func (uc *ListSessionsUseCase) info(ctx context.Context, session *entity.Session, currentID entity.SessionID) entity.SessionInfo {
	info := entity.SessionInfo{
		Session:   session,
		IsCurrent: session.ID == currentID,
		UpdatedAt: session.StartedAt,
	}

	state, err := uc.stateRepo.GetSnapshot(ctx, session.ID)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("session_id", string(session.ID)).Msg("failed to get session state")
	}
	if state != nil {
		info.State = state
		info.TabCount = len(state.Tabs)
		info.GroupCount = state.GroupCount()
		info.UpdatedAt = state.SavedAt
	}
	return info
}

func compareSessionInfos(a, b entity.SessionInfo, currentID entity.SessionID) int {
	switch {
	case a.Session.ID == currentID:
		return -1
	case b.Session.ID == currentID:
		return 1
	case a.Session.IsActive() != b.Session.IsActive():
		if a.Session.IsActive() {
			return -1
		}
		return 1
	}
	return b.UpdatedAt.Compare(a.UpdatedAt)
}

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// GetRelativeTime returns a human-readable relative time string.
func GetRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return relative(int(diff.Minutes()), "m")
	case diff < hoursPerDay*time.Hour:
		return relative(int(diff.Hours()), "h")
	case diff < daysPerWeek*hoursPerDay*time.Hour:
		return relative(int(diff.Hours()/hoursPerDay), "d")
	default:
		return relative(int(diff.Hours()/hoursPerDay/daysPerWeek), "w")
	}
}

func relative(n int, unit string) string {
	if n == 1 {
		return "1" + unit + " ago"
	}
	return fmt.Sprintf("%02d%s ago", n, unit)
}
