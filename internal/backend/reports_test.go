// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package backend

import (
	"context"
	"net/http"
	"testing"

	"github.com/stagepass/stagepass/internal/models"
)

func TestReportsSummaryQueryParams(t *testing.T) {
	stub, srv := newBackendStub(http.StatusOK,
		`{"counters":{"totalEvents":3,"ticketsSold":120,"uniqueBuyers":80},"perEvent":[],"daily":[]}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	summary, err := c.Reports.Summary(context.Background(), models.ReportsQuery{
		From:    "2026-01-01",
		To:      "2026-06-30",
		EventID: 4,
	})
	checkNoError(t, err)
	checkIntEqual(t, "ticketsSold", summary.Counters.TicketsSold, 120)

	req := stub.last(t)
	checkStringEqual(t, "path", req.Path, "/reports/summary")
	checkStringEqual(t, "query", req.Query, "eventId=4&from=2026-01-01&to=2026-06-30")
}

func TestReportsSummaryNoFilters(t *testing.T) {
	stub, srv := newBackendStub(http.StatusOK,
		`{"counters":{"totalEvents":0,"ticketsSold":0,"uniqueBuyers":0},"perEvent":[],"daily":[]}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Reports.Summary(context.Background(), models.ReportsQuery{})
	checkNoError(t, err)
	checkStringEqual(t, "query", stub.last(t).Query, "")
}

func TestReportsSummaryRejectsBadDate(t *testing.T) {
	c := newTestClient("http://backend.local")
	_, err := c.Reports.Summary(context.Background(), models.ReportsQuery{From: "01/01/2026"})
	checkError(t, err)
}

func TestConnectLifecycle(t *testing.T) {
	stub, srv := newBackendStub(http.StatusCreated,
		`{"id":5,"full_name":"Ada L","email":"ada@example.com","contact":"+10000000","created_at":"2026-08-28T09:00:00Z"}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	entry, err := c.Connect.Create(context.Background(), models.NewConnectEntry{
		FullName: "Ada L",
		Email:    "ada@example.com",
		Contact:  "+10000000",
	})
	checkNoError(t, err)
	checkIntEqual(t, "id", int(entry.ID), 5)

	req := stub.last(t)
	checkStringEqual(t, "method", req.Method, http.MethodPost)
	checkStringEqual(t, "path", req.Path, "/connect")
}

func TestConnectDelete(t *testing.T) {
	stub, srv := newBackendStub(http.StatusOK, `{"success":true}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	checkNoError(t, c.Connect.Delete(context.Background(), 5))

	req := stub.last(t)
	checkStringEqual(t, "method", req.Method, http.MethodDelete)
	checkStringEqual(t, "path", req.Path, "/connect/5")
}
