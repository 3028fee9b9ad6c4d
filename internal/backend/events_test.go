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
	"github.com/stagepass/stagepass/internal/validation"
)

func TestEventsListModeFilter(t *testing.T) {
	stub, srv := newBackendStub(http.StatusOK, `[{"id":1,"title":"Gala","date":"2026-09-01T19:00:00Z"}]`)
	defer srv.Close()

	c := newTestClient(srv.URL)

	events, err := c.Events.List(context.Background(), models.EventsQuery{Mode: models.ModeUpcoming})
	checkNoError(t, err)
	checkSliceLen(t, "events", len(events), 1)
	checkStringEqual(t, "title", events[0].Title, "Gala")

	req := stub.last(t)
	checkStringEqual(t, "query", req.Query, "mode=upcoming")
}

func TestEventsListNoFilterOmitsParam(t *testing.T) {
	stub, srv := newBackendStub(http.StatusOK, `[]`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Events.List(context.Background(), models.EventsQuery{})
	checkNoError(t, err)

	req := stub.last(t)
	checkStringEqual(t, "query", req.Query, "")
}

func TestEventsListRejectsUnknownMode(t *testing.T) {
	c := newTestClient("http://backend.local")
	_, err := c.Events.List(context.Background(), models.EventsQuery{Mode: "someday"})

	var verr *validation.RequestValidationError
	if !asValidationError(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEventsCreate(t *testing.T) {
	stub, srv := newBackendStub(http.StatusCreated, `{"id":42,"title":"Encore","date":"2026-10-05T20:00:00Z","ticket_available":true}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	ev, err := c.Events.Create(context.Background(), models.NewEvent{
		Title:           "Encore",
		Date:            mustParseTime(t, "2026-10-05T20:00:00Z"),
		TicketAvailable: true,
	})
	checkNoError(t, err)
	checkIntEqual(t, "id", int(ev.ID), 42)
	checkTrue(t, "ticket_available", ev.TicketAvailable)

	req := stub.last(t)
	checkStringEqual(t, "method", req.Method, http.MethodPost)
	checkStringEqual(t, "path", req.Path, "/events")
}

func TestEventsCreateMissingTitle(t *testing.T) {
	stub, srv := newBackendStub(http.StatusCreated, `{}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Events.Create(context.Background(), models.NewEvent{
		Date: mustParseTime(t, "2026-10-05T20:00:00Z"),
	})
	checkError(t, err)
	checkIntEqual(t, "requests reaching backend", stub.count(), 0)
}

func TestEventsUpdateSerializesOnlySetFields(t *testing.T) {
	stub, srv := newBackendStub(http.StatusOK, `{"id":5,"title":"Renamed","date":"2026-09-01T19:00:00Z"}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	title := "Renamed"
	_, err := c.Events.Update(context.Background(), 5, models.UpdateEvent{Title: &title})
	checkNoError(t, err)

	req := stub.last(t)
	checkStringEqual(t, "method", req.Method, http.MethodPut)
	checkStringEqual(t, "path", req.Path, "/events/5")
	checkStringEqual(t, "body", req.Body, `{"title":"Renamed"}`)
}

func TestEventsDelete(t *testing.T) {
	stub, srv := newBackendStub(http.StatusOK, `{"success":true}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	checkNoError(t, c.Events.Delete(context.Background(), 9))

	req := stub.last(t)
	checkStringEqual(t, "method", req.Method, http.MethodDelete)
	checkStringEqual(t, "path", req.Path, "/events/9")
}

func TestEventsDeleteForwardsBackendError(t *testing.T) {
	_, srv := newBackendStub(http.StatusNotFound, `{"error":"event not found"}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.Events.Delete(context.Background(), 9)
	checkErrorMessage(t, err, "event not found")
}
