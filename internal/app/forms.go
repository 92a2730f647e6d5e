package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/reelscore/reelscore/internal/adapters/repository"
	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
	"github.com/reelscore/reelscore/pkg/logger"
	"github.com/reelscore/reelscore/pkg/metrics"
)

// ActiveForm resolves the active rubric definition for a sport. If none
// exists, a built-in default is synthesized and activated. Stale
// system-generated defaults are upgraded in place, keeping their id, so
// no duplicate definitions accumulate.
func (s *Service) ActiveForm(ctx context.Context, sportName string) (*rubric.Definition, error) {
	sport := model.NormalizeSport(sportName)

	def, err := s.store.ActiveForm(ctx, sport)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		def = rubric.DefaultDefinition(sport)
		if err := s.store.ActivateForm(ctx, def); err != nil {
			return nil, fmt.Errorf("activate default form: %w", err)
		}
		metrics.RecordFormCreated()
		s.logger.Info(ctx, "created default evaluation form",
			logger.String("sport", string(sport)),
			logger.Int("version", def.Version),
		)
	case err != nil:
		return nil, err
	case def.IsSystemDefault() && def.Version < rubric.TemplateVersion:
		// Overwrite the stale default in place, preserving identity.
		upgraded := rubric.DefaultDefinition(sport)
		upgraded.ID = def.ID
		upgraded.Active = true
		upgraded.CreatedAt = def.CreatedAt
		if err := s.store.SaveForm(ctx, upgraded); err != nil {
			return nil, fmt.Errorf("upgrade default form: %w", err)
		}
		metrics.RecordFormUpgraded()
		s.logger.Info(ctx, "upgraded stale default evaluation form",
			logger.String("sport", string(sport)),
			logger.Int("from_version", def.Version),
			logger.Int("to_version", upgraded.Version),
		)
		def = upgraded
	}

	def.Normalize()
	return def, nil
}

// ActivateForm makes the definition the single active one for its
// sport, deactivating every other definition for that sport.
func (s *Service) ActivateForm(ctx context.Context, def *rubric.Definition) error {
	def.Sport = model.NormalizeSport(string(def.Sport))
	if len(def.Categories) == 0 {
		return fmt.Errorf("%w: definition has no categories", ErrInvalidForm)
	}
	if err := s.store.ActivateForm(ctx, def); err != nil {
		return err
	}
	metrics.RecordFormActivated()
	s.logger.Info(ctx, "activated evaluation form",
		logger.String("sport", string(def.Sport)),
		logger.String("form", def.ID),
	)
	return nil
}
