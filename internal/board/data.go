package board

import (
	"context"

	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/engine"
	"github.com/tartampluch/go-eventboard/internal/refresh"
	"golang.org/x/sync/errgroup"
)

// Data is one consistent view of the upstream events and the user's reminders.
type Data struct {
	Events    []engine.Event
	Reminders []engine.Reminder
}

// FetchData fetches events and reminders concurrently. Both must succeed;
// if either fails the whole fetch fails and no partial Data is returned.
// Without a user id there is nobody to fetch reminders for, so that call is skipped.
func FetchData(client api.EventsAPI, s api.Session) refresh.FetchFunc[Data] {
	return func(ctx context.Context) (Data, error) {
		var d Data
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			events, err := client.GetAllEvents(ctx, s)
			d.Events = events
			return err
		})

		if s.UserID != "" {
			g.Go(func() error {
				reminders, err := client.GetReminders(ctx, s)
				d.Reminders = reminders
				return err
			})
		}

		if err := g.Wait(); err != nil {
			return Data{}, err
		}
		return d, nil
	}
}

// FetchFeedback fetches the feedback list.
func FetchFeedback(client api.EventsAPI, s api.Session) refresh.FetchFunc[[]engine.Feedback] {
	return func(ctx context.Context) ([]engine.Feedback, error) {
		return client.GetFeedbacks(ctx, s)
	}
}
