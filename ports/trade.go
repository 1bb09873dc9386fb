package ports

import (
	"context"

	"statfolio/domain/trade"
)

// FlowSource supplies quarterly trade observations, whether from a
// spreadsheet on disk or the bundled sample excerpt.
type FlowSource interface {
	Flows(ctx context.Context) ([]trade.Flow, error)
}
