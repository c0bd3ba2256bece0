package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
	qb "github.com/MrG-Man/Acca-Tracker/internal/platform/querybuilder"
)

// WeekRepository stores each week state as one JSONB document keyed by
// its Saturday. Reads and writes always cover the whole document.
type WeekRepository struct {
	db *sqlx.DB
}

func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

func (r *WeekRepository) Get(ctx context.Context, saturday string) (selection.WeekState, bool, error) {
	query, args, err := qb.Select("saturday", "document", "created_at", "updated_at").
		From("week_states").
		Where(qb.Eq("saturday", saturday)).
		Limit(1).
		ToSQL()
	if err != nil {
		return selection.WeekState{}, false, fmt.Errorf("build select week state query: %w", err)
	}

	var row weekStateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return selection.WeekState{}, false, nil
		}
		return selection.WeekState{}, false, fmt.Errorf("select week state: %w", err)
	}

	state, err := row.toDomain()
	if err != nil {
		return selection.WeekState{}, false, err
	}

	return state, true, nil
}

func (r *WeekRepository) Save(ctx context.Context, state selection.WeekState) error {
	doc, err := encodeWeekDocument(state)
	if err != nil {
		return err
	}

	row := weekStateTableModel{
		Saturday:  state.Saturday,
		Document:  doc,
		CreatedAt: state.CreatedAt,
		UpdatedAt: state.UpdatedAt,
	}
	query, args, err := qb.InsertModel("week_states", row,
		"ON CONFLICT (saturday) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at")
	if err != nil {
		return fmt.Errorf("build upsert week state query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert week state saturday=%s: %w", state.Saturday, err)
	}

	return nil
}

func (r *WeekRepository) ListSaturdays(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("saturday").
		From("week_states").
		OrderBy("saturday").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list saturdays query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select saturdays: %w", err)
	}

	return out, nil
}
