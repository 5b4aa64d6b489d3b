package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mtlahti/choreboard/internal/model"
	"github.com/mtlahti/choreboard/internal/store"
	"github.com/mtlahti/choreboard/internal/week"
)

// Scheduler sends the daily chore digest once per day at a configured local
// hour. It ticks every minute and records the last date it fired so a restart
// within the same day does not send a duplicate.
type Scheduler struct {
	mu       sync.RWMutex
	service  *Service
	subs     store.PushSubscriptions
	plans    store.DayPlans
	hour     int
	interval time.Duration
	lastSent string
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(svc *Service, subs store.PushSubscriptions, plans store.DayPlans, hour int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		service:  svc,
		subs:     subs,
		plans:    plans,
		hour:     hour,
		interval: 60 * time.Second,
		logger:   logger,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(time.Now())
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick(now time.Time) {
	if now.Hour() != s.hour {
		return
	}

	today := week.Format(now)
	s.mu.Lock()
	if s.lastSent == today {
		s.mu.Unlock()
		return
	}
	s.lastSent = today
	s.mu.Unlock()

	s.sendDigest(today)
}

func (s *Scheduler) sendDigest(date string) {
	plans, err := s.plans.GetRange([]string{date})
	if err != nil {
		s.logger.Error("digest plan lookup", "date", date, "error", err)
		return
	}

	body := digestBody(plans[0])
	if body == "" {
		return
	}

	subs, err := s.subs.List()
	if err != nil {
		s.logger.Error("digest list subscriptions", "error", err)
		return
	}

	payload := Payload{
		Title: "Today's Chores",
		Body:  body,
		URL:   "/",
		Tag:   "daily-digest",
	}

	for _, sub := range subs {
		if err := s.service.Send(&sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				s.subs.Delete(sub.ID)
			} else {
				s.logger.Error("send digest", "error", err)
			}
		}
	}
}

var digestLabels = map[model.TaskKind]string{
	model.TaskCook:       "cooks",
	model.TaskShop:       "shops",
	model.TaskSetTable:   "sets the table",
	model.TaskWashDishes: "washes dishes",
}

// digestBody renders the assigned tasks of a plan as a one-line summary.
// Empty when nothing is assigned, which suppresses the notification.
func digestBody(plan model.DayPlan) string {
	var parts []string
	for _, kind := range model.TaskKinds {
		if who := plan.Tasks.Assignee(kind); who != nil && *who != "" {
			parts = append(parts, fmt.Sprintf("%s %s", *who, digestLabels[kind]))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Today: " + strings.Join(parts, ", ")
}
