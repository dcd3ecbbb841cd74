package app

import (
	"context"
	"testing"
	"time"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/posting"
	"mikkoo/internal/domain/schedule"
)

func TestPostingServiceCreate_DefaultsAndValidation(t *testing.T) {
	store := newFakeStore()
	service := NewPostingService(store)

	created, err := service.Create(context.Background(), posting.Posting{
		RequesterID: common.NewUUID(),
		Service:     "gardening",
		Quantity:    0,
		Schedule:    singleSchedule(day(2024, time.May, 6), "08:00", "09:30"),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Status != posting.StatusOpen {
		t.Fatalf("expected open status, got %s", created.Status)
	}
	if created.Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", created.Quantity)
	}

	_, err = service.Create(context.Background(), posting.Posting{
		RequesterID: common.NewUUID(),
		Service:     "",
		Schedule:    singleSchedule(day(2024, time.May, 6), "10:00", "09:00"),
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPostingServiceCreate_RejectsBadRecurrence(t *testing.T) {
	store := newFakeStore()
	service := NewPostingService(store)

	_, err := service.Create(context.Background(), posting.Posting{
		RequesterID: common.NewUUID(),
		Service:     "gardening",
		Schedule: schedule.Schedule{
			Type:       schedule.TypeRecurring,
			StartDate:  dayPtr(2024, time.May, 6),
			StartTime:  "08:00",
			EndTime:    "09:00",
			Frequency:  "yearly",
			DaysOfWeek: []int{0, 8},
		},
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPostingServiceClose_OwnerOnlyAndOnce(t *testing.T) {
	store := newFakeStore()
	service := NewPostingService(store)

	requesterID := common.NewUUID()
	post := seedOpenPosting(t, store, requesterID, "gardening", 1, singleSchedule(day(2024, time.May, 6), "08:00", "09:00"))

	if _, err := service.Close(context.Background(), post.ID, common.NewUUID()); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	closed, err := service.Close(context.Background(), post.ID, requesterID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if closed.Status != posting.StatusClosed {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}

	if _, err := service.Close(context.Background(), post.ID, requesterID); !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
