package scheduler

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Reminders fire at a fixed hour one day before the due date.
const reminderHour = 8

// Payload is the serialized reminder registration, delivered back verbatim
// when the trigger fires.
type Payload struct {
	TaskID         string   `json:"task_id"`
	Title          string   `json:"title"`
	DueDate        string   `json:"due_date"`
	AssignedEmails []string `json:"assigned_emails"`
}

// Notifier sends the reminder notification when a trigger fires.
type Notifier interface {
	FilteredSend(recipients []string, subject, body string) error
}

// Service registers one-shot deadline reminders, one per task. Registering
// a task that already has a reminder replaces the prior registration.
type Service struct {
	notifier Notifier

	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]cron.EntryID
}

// NewService creates a reminder scheduler publishing through notifier.
func NewService(notifier Notifier) *Service {
	return &Service{
		notifier: notifier,
		cron:     cron.New(),
		entries:  make(map[string]cron.EntryID),
	}
}

// Start begins trigger evaluation.
func (s *Service) Start() {
	s.cron.Start()
}

// Stop halts trigger evaluation.
func (s *Service) Stop() {
	s.cron.Stop()
}

// oneShotSchedule fires once at a fixed time and never again.
type oneShotSchedule struct {
	at time.Time
}

func (o oneShotSchedule) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

// reminderTime computes the trigger time: one day before the due date at
// the reminder hour, UTC.
func reminderTime(dueDate string) (time.Time, error) {
	due, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: %w", dueDate, err)
	}

	day := due.AddDate(0, 0, -1)
	return time.Date(day.Year(), day.Month(), day.Day(), reminderHour, 0, 0, 0, time.UTC), nil
}

// Schedule registers a deadline reminder for the task. Any existing
// registration for the same task is replaced.
func (s *Service) Schedule(taskID, title, dueDate string, recipients []string) error {
	fireAt, err := reminderTime(dueDate)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(Payload{
		TaskID:         taskID,
		Title:          title,
		DueDate:        dueDate,
		AssignedEmails: recipients,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize reminder payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[taskID]; ok {
		s.cron.Remove(prev)
	}

	id := s.cron.Schedule(oneShotSchedule{at: fireAt}, cron.FuncJob(func() {
		s.Fire(raw)
	}))
	s.entries[taskID] = id

	log.Printf("Reminder scheduled for task %s at %s", taskID, fireAt.Format(time.RFC3339))
	return nil
}

// Cancel removes the task's reminder registration. A missing registration
// is not an error; the reminder may have already fired and removed itself.
func (s *Service) Cancel(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[taskID]
	if !ok {
		return nil
	}

	s.cron.Remove(id)
	delete(s.entries, taskID)

	log.Printf("Reminder cancelled for task %s", taskID)
	return nil
}

// Fire handles a trigger firing: it sends the reminder notification per
// recipient and removes its own registration. Fire has no caller to report
// to; failures are logged and swallowed.
func (s *Service) Fire(raw []byte) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Printf("Failed to decode reminder payload: %v", err)
		return
	}

	subject := fmt.Sprintf("Task Reminder: %s", p.Title)
	body := fmt.Sprintf(
		"Reminder: You have an upcoming task deadline.\n\n"+
			"Title: %s\n"+
			"Due Date: %s\n\n"+
			"Please complete your task before the deadline.",
		p.Title, p.DueDate,
	)

	if err := s.notifier.FilteredSend(p.AssignedEmails, subject, body); err != nil {
		log.Printf("Failed to send reminder for task %s: %v", p.TaskID, err)
	}

	if err := s.Cancel(p.TaskID); err != nil {
		log.Printf("Failed to remove reminder for task %s: %v", p.TaskID, err)
	}
}

// ScheduledAt returns the trigger time of the task's registration, if one
// exists.
func (s *Service) ScheduledAt(taskID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[taskID]
	if !ok {
		return time.Time{}, false
	}

	return s.cron.Entry(id).Schedule.Next(time.Time{}), true
}
