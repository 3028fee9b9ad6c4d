// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package backend

import (
	"net/url"
	"strconv"

	"github.com/stagepass/stagepass/internal/models"
)

// queryParams builds a query string, omitting absent filters entirely.
// A nil, empty, or zero filter value never produces a "?key=" parameter.
type queryParams struct {
	values url.Values
}

func newQueryParams() *queryParams {
	return &queryParams{values: url.Values{}}
}

// addString adds a string parameter unless the value is empty.
func (q *queryParams) addString(key, value string) *queryParams {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

// addID adds an ID parameter unless the value is zero.
func (q *queryParams) addID(key string, id models.ID) *queryParams {
	if id != 0 {
		q.values.Set(key, strconv.FormatInt(int64(id), 10))
	}
	return q
}

// encode returns "?k=v&..." or the empty string when no parameter was set.
func (q *queryParams) encode() string {
	if len(q.values) == 0 {
		return ""
	}
	return "?" + q.values.Encode()
}
