// Package export dumps slices of the Pokédex to Parquet and CSV files,
// either into a local directory or an S3 bucket.
package export

import (
	"fmt"

	"go.uber.org/zap"
)

type ScheduleRequest struct {
	PageSize    int32 `json:"pageSize"`
	StartOffset int32 `json:"startOffset"`
	PageCount   int32 `json:"pageCount"`
}

// Schedule is one export task: a limit/offset slice of the listing.
type Schedule struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

// ScheduleTasks splits a request into consecutive pages.
func ScheduleTasks(sugar *zap.SugaredLogger, request ScheduleRequest) ([]Schedule, error) {
	sugar.Infof("Scheduling export tasks, pageSize: %d, startOffset: %d, pageCount: %d",
		request.PageSize,
		request.StartOffset,
		request.PageCount)
	if request.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", request.PageSize)
	}
	if request.StartOffset < 0 || request.PageCount < 0 {
		return nil, fmt.Errorf("start offset and page count must be non-negative")
	}
	result := make([]Schedule, 0, request.PageCount)
	for i := int32(0); i < request.PageCount; i++ {
		result = append(result, Schedule{Limit: request.PageSize, Offset: request.StartOffset + i*request.PageSize})
	}
	return result, nil
}
