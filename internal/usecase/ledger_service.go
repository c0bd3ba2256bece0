package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
)

// AssignInput claims one catalog match for one selector in a given week.
type AssignInput struct {
	Saturday string `validate:"required,datetime=2006-01-02"`
	Selector string `validate:"required,max=100"`
	MatchID  string `validate:"required"`
}

// UnassignInput releases a selector's current claim.
type UnassignInput struct {
	Saturday string `validate:"required,datetime=2006-01-02"`
	Selector string `validate:"required,max=100"`
}

// OverrideInput confirms that a week may go live without a full panel.
type OverrideInput struct {
	Saturday string `validate:"required,datetime=2006-01-02"`
	Actor    string `validate:"required,max=100"`
	Reason   string `validate:"required,max=500"`
}

// LedgerService owns the week's assignment record: which selector holds
// which match. Mutations for the same Saturday are serialized through
// the shared week locks so that the one-selector-one-match and
// one-match-one-selector invariants hold under concurrent callers.
type LedgerService struct {
	repo     selection.Repository
	locks    *selection.WeekLocks
	panel    []string
	panelSet map[string]struct{}
	validate *validator.Validate
	logger   *logging.Logger
	now      func() time.Time
}

func NewLedgerService(repo selection.Repository, locks *selection.WeekLocks, panel []string, logger *logging.Logger) (*LedgerService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = selection.NewWeekLocks()
	}
	if len(panel) == 0 {
		panel = selection.DefaultSelectors
	}
	if !selection.ValidPanel(panel) {
		return nil, fmt.Errorf("%w: panel must be %d distinct selectors", ErrInvalidInput, selection.PanelSize)
	}

	panelSet := make(map[string]struct{}, len(panel))
	for _, name := range panel {
		panelSet[name] = struct{}{}
	}

	return &LedgerService{
		repo:     repo,
		locks:    locks,
		panel:    append([]string(nil), panel...),
		panelSet: panelSet,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Panel returns the fixed selector list in its configured order.
func (s *LedgerService) Panel() []string {
	return append([]string(nil), s.panel...)
}

func (s *LedgerService) validateInput(ctx context.Context, payload any) error {
	if err := s.validate.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	return nil
}

// Assign claims input.MatchID for input.Selector. The selector must be
// on the panel and free this week, the match must be in the week's
// catalog and unclaimed.
func (s *LedgerService) Assign(ctx context.Context, input AssignInput) (selection.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.Assign")
	defer span.End()

	if err := s.validateInput(ctx, input); err != nil {
		return selection.Assignment{}, err
	}
	if _, ok := s.panelSet[input.Selector]; !ok {
		return selection.Assignment{}, fmt.Errorf("%w: %q", ErrUnknownSelector, input.Selector)
	}

	lock := s.locks.Acquire(input.Saturday)
	lock.Lock()
	defer lock.Unlock()

	state, ok, err := s.repo.Get(ctx, input.Saturday)
	if err != nil {
		return selection.Assignment{}, fmt.Errorf("load week state: %w", err)
	}
	if !ok {
		return selection.Assignment{}, fmt.Errorf("%w: week %s has no catalog yet", ErrNotFound, input.Saturday)
	}

	if _, taken := state.Assignments[input.Selector]; taken {
		return selection.Assignment{}, fmt.Errorf("%w: %q", ErrSelectorAlreadyAssigned, input.Selector)
	}
	if holder, claimed := state.AssignedTo(input.MatchID); claimed {
		return selection.Assignment{}, fmt.Errorf("%w: held by %q", ErrMatchAlreadyTaken, holder)
	}
	m, inCatalog := state.CatalogMatch(input.MatchID)
	if !inCatalog {
		return selection.Assignment{}, fmt.Errorf("%w: %q", ErrUnknownMatch, input.MatchID)
	}

	now := s.now().UTC()
	assignment := selection.Assignment{
		Selector:   input.Selector,
		MatchID:    input.MatchID,
		Match:      m,
		AssignedAt: now,
	}
	state.Assignments[input.Selector] = assignment
	state.UpdatedAt = now

	if err := s.repo.Save(ctx, state); err != nil {
		return selection.Assignment{}, fmt.Errorf("save week state: %w", err)
	}

	s.logger.InfoContext(ctx, "match assigned",
		"saturday", input.Saturday,
		"selector", input.Selector,
		"match_id", input.MatchID,
	)

	return assignment, nil
}

// Unassign releases the selector's claim for the week.
func (s *LedgerService) Unassign(ctx context.Context, input UnassignInput) error {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.Unassign")
	defer span.End()

	if err := s.validateInput(ctx, input); err != nil {
		return err
	}
	if _, ok := s.panelSet[input.Selector]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSelector, input.Selector)
	}

	lock := s.locks.Acquire(input.Saturday)
	lock.Lock()
	defer lock.Unlock()

	state, ok, err := s.repo.Get(ctx, input.Saturday)
	if err != nil {
		return fmt.Errorf("load week state: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: week %s", ErrNotFound, input.Saturday)
	}
	if _, assigned := state.Assignments[input.Selector]; !assigned {
		return fmt.Errorf("%w: %q", ErrNotAssigned, input.Selector)
	}

	delete(state.Assignments, input.Selector)
	state.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, state); err != nil {
		return fmt.Errorf("save week state: %w", err)
	}

	s.logger.InfoContext(ctx, "match unassigned",
		"saturday", input.Saturday,
		"selector", input.Selector,
	)

	return nil
}

// ConfirmOverride records an explicit go-ahead for an incomplete week.
// It is rejected when the panel is already full: there is nothing to
// override.
func (s *LedgerService) ConfirmOverride(ctx context.Context, input OverrideInput) error {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.ConfirmOverride")
	defer span.End()

	if err := s.validateInput(ctx, input); err != nil {
		return err
	}

	lock := s.locks.Acquire(input.Saturday)
	lock.Lock()
	defer lock.Unlock()

	state, ok, err := s.repo.Get(ctx, input.Saturday)
	if err != nil {
		return fmt.Errorf("load week state: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: week %s", ErrNotFound, input.Saturday)
	}
	if len(state.Assignments) >= selection.PanelSize {
		return fmt.Errorf("%w: panel already complete, nothing to override", ErrInvalidInput)
	}

	now := s.now().UTC()
	state.Override = &selection.Override{
		Confirmed:   true,
		Reason:      input.Reason,
		Actor:       input.Actor,
		ConfirmedAt: now,
	}
	state.UpdatedAt = now

	if err := s.repo.Save(ctx, state); err != nil {
		return fmt.Errorf("save week state: %w", err)
	}

	s.logger.WarnContext(ctx, "incomplete week overridden",
		"saturday", input.Saturday,
		"actor", input.Actor,
		"assignments", len(state.Assignments),
	)

	return nil
}

// IsComplete reports whether the week is ready for live tracking.
func (s *LedgerService) IsComplete(ctx context.Context, saturday string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.IsComplete")
	defer span.End()

	state, ok, err := s.repo.Get(ctx, saturday)
	if err != nil {
		return false, fmt.Errorf("load week state: %w", err)
	}
	if !ok {
		return false, nil
	}
	return state.IsComplete(), nil
}

// GetWeekState returns the full persisted record for one Saturday.
func (s *LedgerService) GetWeekState(ctx context.Context, saturday string) (selection.WeekState, error) {
	ctx, span := startUsecaseSpan(ctx, "LedgerService.GetWeekState")
	defer span.End()

	state, ok, err := s.repo.Get(ctx, saturday)
	if err != nil {
		return selection.WeekState{}, fmt.Errorf("load week state: %w", err)
	}
	if !ok {
		return selection.WeekState{}, fmt.Errorf("%w: week %s", ErrNotFound, saturday)
	}
	return state, nil
}
