package http

import (
	"context"

	"heatcli/internal/dataprocessing"
	"heatcli/internal/lookup"
	"heatcli/internal/services"
)

// DataServiceInterface defines the data operations handlers depend on.
// Narrowing to an interface keeps handler tests free of file fixtures.
type DataServiceInterface interface {
	TableSummaries(ctx context.Context) []services.TableSummary
	GetTable(ctx context.Context, name string) (*services.TableResponse, error)
	TableStats(ctx context.Context, name string) (*dataprocessing.TableStats, error)
	ParseValues(ctx context.Context, inputs []string) []services.ParsedValue
	ExchangerLookup(ctx context.Context, power, t1, tempDiff, approach float64) (*lookup.ExchangerMatch, error)
	StepLookup(ctx context.Context, tableName, lookupColumn, returnColumn string, value float64) (float64, error)
}
