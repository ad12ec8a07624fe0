package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormSessionRepository creates a new GORM session repository.
// clock is handed to reconstructed sessions; nil uses the real clock.
func NewGormSessionRepository(db *gorm.DB, clock shared.Clock) *GormSessionRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSessionRepository{db: db, clock: clock}
}

// Save creates or replaces a session
func (r *GormSessionRepository) Save(ctx context.Context, session *game.Session) error {
	model, err := r.sessionToModel(session)
	if err != nil {
		return fmt.Errorf("failed to convert session to model: %w", err)
	}

	// Upsert: create or update
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// FindByID retrieves a session by ID
func (r *GormSessionRepository) FindByID(ctx context.Context, id game.SessionID) (*game.Session, error) {
	var model GameSessionModel
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &game.ErrSessionNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find session: %w", result.Error)
	}

	return r.modelToSession(&model)
}

// Delete removes a session
func (r *GormSessionRepository) Delete(ctx context.Context, id game.SessionID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&GameSessionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &game.ErrSessionNotFound{ID: id.String()}
	}
	return nil
}

// modelToSession converts a database model to the domain aggregate
func (r *GormSessionRepository) modelToSession(model *GameSessionModel) (*game.Session, error) {
	id, err := game.NewSessionIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID in database: %w", err)
	}

	var targets project.Targets
	if err := json.Unmarshal([]byte(model.Targets), &targets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal targets for session %s: %w", model.ID, err)
	}

	var entries []string
	if model.Log != "" {
		if err := json.Unmarshal([]byte(model.Log), &entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log for session %s: %w", model.ID, err)
		}
	}

	state := &project.State{
		Targets:            targets,
		Month:              model.Month,
		Budget:             model.Budget,
		TimeRemaining:      model.TimeRemaining,
		ScopeProgress:      model.ScopeProgress,
		Quality:            model.Quality,
		Safety:             model.Safety,
		ClientSatisfaction: model.ClientSatisfaction,
		Morale:             model.Morale,
		CostOfRisk:         model.CostOfRisk,
		Halted:             model.Halted,
		Log:                project.RestoreLog(entries),
	}

	var pending *game.PendingMenu
	if model.PendingMonth != nil {
		scenario, err := decision.ParseScenario(model.PendingScenario)
		if err != nil {
			return nil, fmt.Errorf("invalid pending scenario for session %s: %w", model.ID, err)
		}
		pending = &game.PendingMenu{Month: *model.PendingMonth, Scenario: scenario}
	}

	return game.ReconstructSession(
		id,
		model.Seed,
		model.Draws,
		targets,
		state,
		pending,
		model.Over,
		model.Decisions,
		model.CreatedAt,
		model.UpdatedAt,
		r.clock,
	), nil
}

// sessionToModel converts the domain aggregate to a database model
func (r *GormSessionRepository) sessionToModel(session *game.Session) (*GameSessionModel, error) {
	targetsJSON, err := json.Marshal(session.Targets())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal targets: %w", err)
	}

	snapshot := session.Snapshot()
	logJSON, err := json.Marshal(snapshot.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log: %w", err)
	}

	model := &GameSessionModel{
		ID:                 session.ID().String(),
		Seed:               session.Seed(),
		Draws:              session.Draws(),
		Targets:            string(targetsJSON),
		Month:              snapshot.Month,
		Budget:             snapshot.Budget,
		TimeRemaining:      snapshot.TimeRemaining,
		ScopeProgress:      snapshot.ScopeProgress,
		Quality:            snapshot.Quality,
		Safety:             snapshot.Safety,
		ClientSatisfaction: snapshot.ClientSatisfaction,
		Morale:             snapshot.Morale,
		CostOfRisk:         snapshot.CostOfRisk,
		Halted:             session.State().Halted,
		Log:                string(logJSON),
		Over:               session.IsOver(),
		Decisions:          session.Decisions(),
		CreatedAt:          session.CreatedAt(),
		UpdatedAt:          session.UpdatedAt(),
	}

	if pending := session.Pending(); pending != nil {
		month := pending.Month
		model.PendingMonth = &month
		model.PendingScenario = pending.Scenario.String()
	}

	return model, nil
}
