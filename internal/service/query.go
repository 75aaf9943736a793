package service

import (
	"context"
	"strings"

	"github.com/voltswap/voltswap/internal/domain"
)

const (
	// DefaultPageSize applies when the caller omits a limit.
	DefaultPageSize = 10
	// MaxPageSize caps a caller-supplied limit.
	MaxPageSize = 100
)

// QueryService serves the transfer audit log. Read-only; runs outside any
// write transaction.
type QueryService struct {
	store domain.Store
}

func NewQueryService(store domain.Store) *QueryService {
	return &QueryService{store: store}
}

type ListTransfersInput struct {
	BatteryID     string
	FromStationID string
	ToStationID   string
	Status        string
	Page          int
	Limit         int
}

func (s *QueryService) ListTransfers(ctx context.Context, in ListTransfersInput) (*domain.TransferPage, error) {
	var status domain.TransferStatus
	if in.Status != "" {
		parsed, err := domain.ParseTransferStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	records, total, err := s.store.ListTransfers(ctx, domain.TransferFilter{
		BatteryID:     strings.TrimSpace(in.BatteryID),
		FromStationID: strings.TrimSpace(in.FromStationID),
		ToStationID:   strings.TrimSpace(in.ToStationID),
		Status:        status,
		Limit:         limit,
		Offset:        (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	if records == nil {
		records = []domain.TransferRecord{}
	}

	return &domain.TransferPage{
		Records: records,
		Pagination: domain.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

func (s *QueryService) GetTransfer(ctx context.Context, id string) (*domain.TransferRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.InvalidRequestf("transfer id is required")
	}
	return s.store.GetTransfer(ctx, id)
}
