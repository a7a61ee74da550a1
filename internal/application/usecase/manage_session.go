package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/domain/repository"
	"github.com/bnema/tabstrip/internal/logging"
)

// ManageSessionUseCase records the lifecycle of tab strip sessions.
type ManageSessionUseCase struct {
	sessionRepo repository.SessionRepository
}

func NewManageSessionUseCase(sessionRepo repository.SessionRepository) *ManageSessionUseCase {
	return &ManageSessionUseCase{sessionRepo: sessionRepo}
}

type StartSessionInput struct {
	Type      entity.SessionType
	SessionID entity.SessionID
	Now       time.Time
}

type StartSessionOutput struct {
	Session *entity.Session
	// Context carries a logger tagged with the session id.
	Context context.Context
}

func (uc *ManageSessionUseCase) StartSession(ctx context.Context, input StartSessionInput) (*StartSessionOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = entity.SessionID(logging.NewSessionID(now))
	}

	sType := input.Type
	if sType == "" {
		sType = entity.SessionTypeInteractive
	}

	session := &entity.Session{
		ID:        sessionID,
		Type:      sType,
		StartedAt: now.UTC(),
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	sessionCtx := logging.WithSessionID(ctx, string(session.ID))
	if err := uc.sessionRepo.Save(sessionCtx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logging.FromContext(sessionCtx).Info().Str("type", string(session.Type)).Msg("session started")
	return &StartSessionOutput{Session: session, Context: sessionCtx}, nil
}

func (uc *ManageSessionUseCase) EndSession(ctx context.Context, sessionID entity.SessionID, endedAt time.Time) error {
	log := logging.FromContext(ctx)
	if sessionID == "" {
		return fmt.Errorf("session id required")
	}
	if endedAt.IsZero() {
		endedAt = time.Now()
	}
	if err := uc.sessionRepo.MarkEnded(ctx, sessionID, endedAt.UTC()); err != nil {
		return fmt.Errorf("mark session ended: %w", err)
	}
	log.Info().Str("session_id", string(sessionID)).Msg("session ended")
	return nil
}

func (uc *ManageSessionUseCase) GetActiveSession(ctx context.Context) (*entity.Session, error) {
	return uc.sessionRepo.GetActive(ctx)
}

func (uc *ManageSessionUseCase) GetRecentSessions(ctx context.Context, limit int) ([]*entity.Session, error) {
	return uc.sessionRepo.GetRecent(ctx, limit)
}

// ErrSessionActive is returned when deleting a session that has not ended.
var ErrSessionActive = errors.New("session is still active")

// DeleteSession removes an ended session together with its snapshot.
func (uc *ManageSessionUseCase) DeleteSession(ctx context.Context, sessionID entity.SessionID) error {
	if sessionID == "" {
		return fmt.Errorf("session id required")
	}
	session, err := uc.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.IsActive() {
		return ErrSessionActive
	}
	if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	logging.FromContext(ctx).Info().Str("session_id", string(sessionID)).Msg("session deleted")
	return nil
}
