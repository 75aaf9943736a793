package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/voltswap/voltswap/internal/cloud"
	"github.com/voltswap/voltswap/internal/domain"
)

// ExportService writes the transfer audit log to S3 as CSV and hands back a
// presigned download URL.
type ExportService struct {
	store domain.Store
	s3    *cloud.S3Client
}

func NewExportService(store domain.Store, s3 *cloud.S3Client) *ExportService {
	return &ExportService{store: store, s3: s3}
}

// ExportTransfers exports all records matching the filter, newest first.
func (s *ExportService) ExportTransfers(ctx context.Context, f domain.TransferFilter) (string, error) {
	if s.s3 == nil {
		return "", domain.StorageError("export requires cloud services", nil)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "battery_code", "from_station", "to_station", "reason", "note", "actor_id", "status", "created_at"})

	f.Limit = MaxPageSize
	f.Offset = 0
	for {
		records, _, err := s.store.ListTransfers(ctx, f)
		if err != nil {
			return "", err
		}
		for _, rec := range records {
			_ = w.Write([]string{
				rec.ID,
				rec.BatteryCode,
				rec.FromStationName,
				rec.ToStationName,
				rec.Reason,
				rec.Note,
				rec.ActorID,
				string(rec.Status),
				rec.CreatedAt.Format(time.RFC3339),
			})
		}
		if len(records) < f.Limit {
			break
		}
		f.Offset += f.Limit
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.StorageError("write export", err)
	}

	key := fmt.Sprintf("transfers/%s.csv", time.Now().UTC().Format("2006-01-02T15-04-05"))
	url, err := s.s3.UploadExport(key, buf.Bytes(), "text/csv")
	if err != nil {
		return "", domain.StorageError("upload export", err)
	}
	return url, nil
}
