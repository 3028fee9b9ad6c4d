// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package backend

import (
	"context"

	"github.com/stagepass/stagepass/internal/models"
	"github.com/stagepass/stagepass/internal/validation"
)

// ReportsClient accesses the read-only /reports aggregates.
type ReportsClient struct {
	core *Client
}

// Summary retrieves sales aggregates, optionally bounded by date range
// and narrowed to a single event.
func (r *ReportsClient) Summary(ctx context.Context, q models.ReportsQuery) (*models.ReportSummary, error) {
	if verr := validation.ValidateStruct(&q); verr != nil {
		return nil, verr
	}
	qs := newQueryParams().
		addString("from", q.From).
		addString("to", q.To).
		addID("eventId", q.EventID).
		encode()
	return request[models.ReportSummary](ctx, r.core, "/reports/summary"+qs, requestOptions{
		resource:  "reports",
		operation: "summary",
	})
}
