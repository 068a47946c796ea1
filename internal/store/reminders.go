package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/id"
	"github.com/finbook-dev/finbook/internal/model"
)

// ReminderParams holds the caller-supplied fields for a new reminder.
// Status always starts as pending.
type ReminderParams struct {
	Title       string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Recurring   bool
}

func (p ReminderParams) Validate() error {
	if p.Title == "" {
		return ValidationError{Field: "title", Reason: "required"}
	}
	if !p.Amount.IsPositive() {
		return ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if !validMoney(p.Amount) {
		return ValidationError{Field: "amount", Reason: "more than 2 decimal places"}
	}
	if p.DueDate.IsZero() {
		return ValidationError{Field: "dueDate", Reason: "required"}
	}
	return nil
}

// CreateReminder inserts a new pending reminder.
func (s *Store) CreateReminder(p ReminderParams) (model.Reminder, error) {
	if err := p.Validate(); err != nil {
		return model.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := model.Reminder{
		ID:          id.New(id.KindReminder),
		Title:       p.Title,
		Description: p.Description,
		Amount:      p.Amount,
		DueDate:     p.DueDate,
		Status:      model.ReminderPending,
		Recurring:   p.Recurring,
		CreatedAt:   s.timestamp(),
	}
	s.reminders[r.ID] = r
	s.remOrder = append(s.remOrder, r.ID)
	return r, nil
}

// Reminders returns all reminders ordered by due date, soonest first.
func (s *Store) Reminders() ([]model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listReminders(), nil
}

func (s *Store) listReminders() []model.Reminder {
	out := make([]model.Reminder, 0, len(s.remOrder))
	for _, rid := range s.remOrder {
		out = append(out, s.reminders[rid])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// Reminder returns the reminder with the given id.
func (s *Store) Reminder(remID string) (model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reminders[remID]
	if !ok {
		return model.Reminder{}, fmt.Errorf("reminder %s: %w", remID, ErrNotFound)
	}
	return r, nil
}

// ReminderUpdate is a partial update; nil fields are left untouched.
type ReminderUpdate struct {
	Title       *string
	Description *string
	Amount      *decimal.Decimal
	DueDate     *time.Time
	Status      *model.ReminderStatus
	Recurring   *bool
}

// Validate checks the non-nil fields of u.
func (u ReminderUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return ValidationError{Field: "title", Reason: "required"}
	}
	if u.Amount != nil {
		if !u.Amount.IsPositive() {
			return ValidationError{Field: "amount", Reason: "must be positive"}
		}
		if !validMoney(*u.Amount) {
			return ValidationError{Field: "amount", Reason: "more than 2 decimal places"}
		}
	}
	if u.DueDate != nil && u.DueDate.IsZero() {
		return ValidationError{Field: "dueDate", Reason: "required"}
	}
	if u.Status != nil && !u.Status.Valid() {
		return ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", *u.Status)}
	}
	return nil
}

// UpdateReminder applies the non-nil fields of u and returns the
// updated reminder.
func (s *Store) UpdateReminder(remID string, u ReminderUpdate) (model.Reminder, error) {
	if err := u.Validate(); err != nil {
		return model.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[remID]
	if !ok {
		return model.Reminder{}, fmt.Errorf("reminder %s: %w", remID, ErrNotFound)
	}
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Amount != nil {
		r.Amount = *u.Amount
	}
	if u.DueDate != nil {
		r.DueDate = *u.DueDate
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.Recurring != nil {
		r.Recurring = *u.Recurring
	}
	s.reminders[remID] = r
	return r, nil
}

// SnoozeReminder pushes a reminder's due date forward and marks it
// snoozed.
func (s *Store) SnoozeReminder(remID string, until time.Time) (model.Reminder, error) {
	status := model.ReminderSnoozed
	return s.UpdateReminder(remID, ReminderUpdate{DueDate: &until, Status: &status})
}

// MarkReminderPaid marks a reminder paid.
func (s *Store) MarkReminderPaid(remID string) (model.Reminder, error) {
	status := model.ReminderPaid
	return s.UpdateReminder(remID, ReminderUpdate{Status: &status})
}

// DeleteReminder removes a reminder. Deleting an absent id is a no-op.
func (s *Store) DeleteReminder(remID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[remID]; !ok {
		return nil
	}
	delete(s.reminders, remID)
	for i, v := range s.remOrder {
		if v == remID {
			s.remOrder = append(s.remOrder[:i], s.remOrder[i+1:]...)
			break
		}
	}
	return nil
}
