package pricing

import (
	"context"
	"fmt"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	// DefaultTierHistoryLimit is used when no history limit is given
	DefaultTierHistoryLimit = 50
	// MaxTierHistoryLimit caps a single history read
	MaxTierHistoryLimit = 500
)

// TierService manages the tier catalog and customer tier assignments
type TierService struct {
	tierRepo pricing.TierRepository
	logger   *zap.Logger
	opts     options
}

// NewTierService creates a new TierService
func NewTierService(tierRepo pricing.TierRepository, logger *zap.Logger, opts ...Option) *TierService {
	return &TierService{
		tierRepo: tierRepo,
		logger:   logger,
		opts:     newOptions(opts),
	}
}

// ListTiers returns the fixed tier catalog, Bronze first
func (s *TierService) ListTiers() []TierDefinitionResponse {
	return lo.Map(pricing.AllTierLevels(), func(level pricing.TierLevel, _ int) TierDefinitionResponse {
		return TierDefinitionResponse{
			Level:              level,
			Name:               level.DisplayName(),
			DiscountPercentage: level.DiscountRate(),
		}
	})
}

// SetCustomerTier assigns a tier to a customer and records it in the history.
// The discount is always derived from the level.
func (s *TierService) SetCustomerTier(ctx context.Context, customerID int64, level string, reason string) (*CustomerTierResponse, error) {
	tier, err := s.buildTier(customerID, level, reason)
	if err != nil {
		return nil, err
	}

	saved, err := s.tierRepo.SetCustomerTier(ctx, tier.CustomerID, tier.Level, tier.DiscountPercentage, tier.Reason, tier.AssignedAt)
	if err != nil {
		return nil, err
	}

	s.opts.metrics.RecordTierAssignment(ctx, saved.Level)
	s.logger.Info("Customer tier assigned",
		zap.Int64("customer_id", customerID),
		zap.String("level", saved.Level.String()),
		zap.String("reason", saved.Reason))

	resp := ToCustomerTierResponse(saved)
	return &resp, nil
}

// GetCustomerTier returns the current tier of a customer
func (s *TierService) GetCustomerTier(ctx context.Context, customerID int64) (*CustomerTierResponse, error) {
	tier, err := s.tierRepo.GetCustomerTier(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, pricing.NewCustomerTierNotFoundError(customerID)
	}
	resp := ToCustomerTierResponse(tier)
	return &resp, nil
}

// GetCustomersByTier lists customers currently assigned to level
func (s *TierService) GetCustomersByTier(ctx context.Context, level string) ([]CustomerTierResponse, error) {
	parsed, ok := pricing.ParseTierLevel(level)
	if !ok {
		return nil, pricing.NewPricingError("invalid tier level: " + level)
	}
	tiers, err := s.tierRepo.GetCustomersByTierLevel(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return lo.Map(tiers, func(t *pricing.CustomerTier, _ int) CustomerTierResponse {
		return ToCustomerTierResponse(t)
	}), nil
}

// BulkUpdateCustomerTiers validates every update, then applies all of them
// in one repository call. A single invalid update rejects the whole batch.
func (s *TierService) BulkUpdateCustomerTiers(ctx context.Context, req BulkUpdateTiersRequest) (*BulkUpdateTiersResponse, error) {
	if len(req.Updates) == 0 {
		return nil, pricing.NewPricingError("at least one tier update is required")
	}

	now := s.opts.now()
	updates := make([]pricing.TierUpdate, 0, len(req.Updates))
	for i, item := range req.Updates {
		tier, err := s.buildTier(item.CustomerID, item.Level, item.Reason)
		if err != nil {
			return nil, pricing.NewPricingError(fmt.Sprintf("update %d: %s", i, err.Error()))
		}
		updates = append(updates, pricing.TierUpdate{
			CustomerID: tier.CustomerID,
			Level:      tier.Level,
			Reason:     tier.Reason,
		})
	}

	if err := s.tierRepo.BulkUpdateCustomerTiers(ctx, updates, now); err != nil {
		return nil, err
	}

	for _, u := range updates {
		s.opts.metrics.RecordTierAssignment(ctx, u.Level)
	}
	s.logger.Info("Customer tiers updated in bulk", zap.Int("count", len(updates)))

	return &BulkUpdateTiersResponse{Updated: len(updates)}, nil
}

// GetCustomerTierHistory returns a customer's tier assignments, newest first.
// A limit of zero or less selects DefaultTierHistoryLimit.
func (s *TierService) GetCustomerTierHistory(ctx context.Context, customerID int64, limit int) ([]TierHistoryResponse, error) {
	if limit <= 0 {
		limit = DefaultTierHistoryLimit
	}
	if limit > MaxTierHistoryLimit {
		limit = MaxTierHistoryLimit
	}
	entries, err := s.tierRepo.GetCustomerTierHistory(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(e *pricing.TierHistoryEntry, _ int) TierHistoryResponse {
		return TierHistoryResponse{
			ID:                 e.ID,
			CustomerID:         e.CustomerID,
			Level:              e.Level,
			DiscountPercentage: e.DiscountPercentage,
			Reason:             e.Reason,
			AssignedAt:         e.AssignedAt,
		}
	}), nil
}

func (s *TierService) buildTier(customerID int64, level string, reason string) (*pricing.CustomerTier, error) {
	parsed, ok := pricing.ParseTierLevel(level)
	if !ok {
		return nil, pricing.NewPricingError("invalid tier level: " + level)
	}
	return pricing.NewCustomerTier(customerID, parsed, reason, s.opts.now())
}
