package appointment

import (
	"context"
	"fmt"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/cache"
	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/validators"
)

type StatisticsResult struct {
	Total     int64 `json:"total_appointments"`
	Scheduled int64 `json:"scheduled"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// Statistics aggregates counts by state from the relational store
// only; the document side is not involved.
type Statistics struct {
	repo  domain.Repository
	cache *cache.StatsCache
}

func NewStatistics(repo domain.Repository, cache *cache.StatsCache) *Statistics {
	return &Statistics{repo: repo, cache: cache}
}

func (uc *Statistics) Execute(
	ctx context.Context,
	from string,
	to string,
) (*StatisticsResult, error) {

	if from != "" && !validators.IsValidDate(from) {
		return nil, httperr.ErrValidation("invalid_date", "From date must be YYYY-MM-DD.")
	}
	if to != "" && !validators.IsValidDate(to) {
		return nil, httperr.ErrValidation("invalid_date", "To date must be YYYY-MM-DD.")
	}

	key := fmt.Sprintf("stats:%s:%s", from, to)

	var cached StatisticsResult
	if uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	counts, err := uc.repo.CountByState(ctx, from, to)
	if err != nil {
		return nil, storageErr("relational", "statistics", err)
	}

	result := &StatisticsResult{
		Scheduled: counts[domain.StatusScheduled],
		Confirmed: counts[domain.StatusConfirmed],
		Completed: counts[domain.StatusCompleted],
		Cancelled: counts[domain.StatusCancelled],
	}
	result.Total = result.Scheduled + result.Confirmed + result.Completed + result.Cancelled

	uc.cache.Set(ctx, key, result)
	return result, nil
}
