package matchweek

import (
	"testing"
	"time"
)

func TestCanModify(t *testing.T) {
	deadline := time.Date(2026, time.March, 7, 11, 30, 0, 0, time.UTC)
	mw := Matchweek{ID: 1, WeekNumber: 1, Deadline: deadline, Status: StatusUpcoming}

	if !mw.CanModify(deadline.Add(-time.Second)) {
		t.Fatalf("expected modification allowed before deadline")
	}
	if mw.CanModify(deadline) {
		t.Fatalf("expected modification blocked exactly at deadline")
	}
	if mw.CanModify(deadline.Add(time.Second)) {
		t.Fatalf("expected modification blocked after deadline")
	}
}

func TestCurrentPicksEarliestOpenWeek(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	weeks := []Matchweek{
		{ID: 3, WeekNumber: 3, Deadline: now.Add(14 * 24 * time.Hour), Status: StatusUpcoming},
		{ID: 1, WeekNumber: 1, Deadline: now.Add(-24 * time.Hour), Status: StatusCompleted},
		{ID: 2, WeekNumber: 2, Deadline: now.Add(7 * 24 * time.Hour), Status: StatusActive},
	}

	got, ok := Current(weeks, now)
	if !ok {
		t.Fatalf("expected a current matchweek")
	}
	if got.WeekNumber != 2 {
		t.Fatalf("expected week 2, got %d", got.WeekNumber)
	}
}

func TestCurrentSkipsCompletedEvenBeforeDeadline(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	weeks := []Matchweek{
		{ID: 1, WeekNumber: 1, Deadline: now.Add(time.Hour), Status: StatusCompleted},
		{ID: 2, WeekNumber: 2, Deadline: now.Add(48 * time.Hour), Status: StatusUpcoming},
	}

	got, ok := Current(weeks, now)
	if !ok {
		t.Fatalf("expected a current matchweek")
	}
	if got.WeekNumber != 2 {
		t.Fatalf("expected completed week skipped, got week %d", got.WeekNumber)
	}
}

func TestCurrentDeadlineEqualToNowStillCounts(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	weeks := []Matchweek{
		{ID: 1, WeekNumber: 1, Deadline: now, Status: StatusUpcoming},
	}

	got, ok := Current(weeks, now)
	if !ok {
		t.Fatalf("expected matchweek with deadline equal to now to be current")
	}
	if got.ID != 1 {
		t.Fatalf("unexpected matchweek %d", got.ID)
	}
}

func TestCurrentNoneOpen(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	weeks := []Matchweek{
		{ID: 1, WeekNumber: 1, Deadline: now.Add(-time.Hour), Status: StatusCompleted},
		{ID: 2, WeekNumber: 2, Deadline: now.Add(-time.Minute), Status: StatusActive},
	}

	if _, ok := Current(weeks, now); ok {
		t.Fatalf("expected no current matchweek when every deadline passed")
	}
}

func TestValidateStatus(t *testing.T) {
	mw := Matchweek{WeekNumber: 1, Deadline: time.Now(), Status: Status("PAUSED")}
	if err := mw.Validate(); err == nil {
		t.Fatalf("expected invalid status error")
	}
}
