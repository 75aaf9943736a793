package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/voltswap/voltswap/internal/domain"
)

const transferSelect = `
	SELECT t.id, t.battery_id, t.from_station_id, t.to_station_id, t.reason, t.note,
		t.actor_id, t.status, t.created_at,
		b.code AS battery_code, fs.name AS from_station_name, ts.name AS to_station_name
	FROM transfers t
	JOIN batteries b ON b.id = t.battery_id
	JOIN stations fs ON fs.id = t.from_station_id
	JOIN stations ts ON ts.id = t.to_station_id`

// InsertTransfer appends one audit record. Rows in transfers are never
// updated or deleted afterwards.
func (t *Tx) InsertTransfer(ctx context.Context, rec *domain.TransferRecord) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO transfers (id, battery_id, from_station_id, to_station_id, reason, note, actor_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.BatteryID, rec.FromStationID, rec.ToStationID,
		rec.Reason, rec.Note, rec.ActorID, rec.Status, rec.CreatedAt)
	if err != nil {
		return mapError("insert transfer", err)
	}
	return nil
}

func transferWhere(f domain.TransferFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(col, val string) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.BatteryID != "" {
		add("t.battery_id", f.BatteryID)
	}
	if f.FromStationID != "" {
		add("t.from_station_id", f.FromStationID)
	}
	if f.ToStationID != "" {
		add("t.to_station_id", f.ToStationID)
	}
	if f.Status != "" {
		add("t.status", string(f.Status))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListTransfers returns one page of records newest first, plus the total
// matching count.
func (r *Repos) ListTransfers(ctx context.Context, f domain.TransferFilter) ([]domain.TransferRecord, int64, error) {
	where, args := transferWhere(f)

	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transfers t`+where, args...)
	if err != nil {
		return nil, 0, mapError("count transfers", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d",
		transferSelect, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	var records []domain.TransferRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, mapError("list transfers", err)
	}
	return records, total, nil
}

func (r *Repos) GetTransfer(ctx context.Context, id string) (*domain.TransferRecord, error) {
	var rec domain.TransferRecord
	err := r.db.GetContext(ctx, &rec, transferSelect+` WHERE t.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("transfer %s not found", id)
	}
	if err != nil {
		return nil, mapError("get transfer", err)
	}
	return &rec, nil
}
