package gcal

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
)

// listPageSize matches the API's maximum, so one term's worth of lessons
// normally fits in a single page; the page iterator below covers the rest.
const listPageSize = 2500

type Client struct {
	svc        *calendar.Service
	calendarID string
}

// New returns a client bound to one target calendar.
func New(svc *calendar.Service, calendarID string) *Client {
	return &Client{svc: svc, calendarID: calendarID}
}

// Events lists every single-occurrence event starting at or after timeMin
// (RFC3339), ordered by start time. It walks all result pages, a truncated
// listing would make the reconciler delete events it merely failed to see.
func (c *Client) Events(ctx context.Context, timeMin string) ([]*calendar.Event, error) {
	var events []*calendar.Event
	call := c.svc.Events.List(c.calendarID).
		TimeMin(timeMin).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(listPageSize)
	err := call.Pages(ctx, func(page *calendar.Events) error {
		events = append(events, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list events: %w", err)
	}
	return events, nil
}

func (c *Client) Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	return c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do()
}

func (c *Client) Patch(ctx context.Context, eventID string, ev *calendar.Event) (*calendar.Event, error) {
	return c.svc.Events.Patch(c.calendarID, eventID, ev).Context(ctx).Do()
}

func (c *Client) Delete(ctx context.Context, eventID string) error {
	return c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
}

// Calendars lists the calendars visible to the authorized account, so the
// operator can find the id to point the syncer at.
func (c *Client) Calendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	list, err := c.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list calendars: %w", err)
	}
	return list.Items, nil
}
