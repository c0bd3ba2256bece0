package postgres

import (
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
)

type weekStateTableModel struct {
	Saturday  string    `db:"saturday"`
	Document  []byte    `db:"document"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m weekStateTableModel) toDomain() (selection.WeekState, error) {
	var state selection.WeekState
	if err := sonic.Unmarshal(m.Document, &state); err != nil {
		return selection.WeekState{}, crerr.Wrapf(err, "decode week document saturday=%s", m.Saturday)
	}
	if state.Saturday == "" {
		state.Saturday = m.Saturday
	}
	if state.Assignments == nil {
		state.Assignments = make(map[string]selection.Assignment)
	}
	return state, nil
}

func encodeWeekDocument(state selection.WeekState) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(state); err != nil {
		return nil, crerr.Wrapf(err, "encode week document saturday=%s", state.Saturday)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}
