package app

import (
	"context"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/posting"
	"mikkoo/internal/domain/schedule"
	"mikkoo/internal/domain/storage"
)

type PostingService struct {
	store storage.Store
}

func NewPostingService(store storage.Store) *PostingService {
	return &PostingService{store: store}
}

func (s *PostingService) Create(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	if fields := validatePosting(p); len(fields) > 0 {
		return nil, common.NewValidationError("invalid posting", fields)
	}
	if p.Quantity < 1 {
		p.Quantity = 1
	}
	if p.Schedule.Type == schedule.TypeRecurring && p.Schedule.Interval < 1 {
		p.Schedule.Interval = 1
	}
	p.Status = posting.StatusOpen
	return s.store.Postings().Create(ctx, p)
}

func (s *PostingService) Get(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	return s.store.Postings().GetByID(ctx, id)
}

func (s *PostingService) ListOpen(ctx context.Context, limit, offset int) ([]posting.Posting, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.Postings().ListOpen(ctx, limit, offset)
}

func (s *PostingService) ListByRequester(ctx context.Context, requesterID common.UUID) ([]posting.Posting, error) {
	return s.store.Postings().ListByRequester(ctx, requesterID)
}

// Close lets the owner close an open posting without accepting anyone.
func (s *PostingService) Close(ctx context.Context, id, ownerID common.UUID) (*posting.Posting, error) {
	var closed *posting.Posting
	err := s.store.InTx(ctx, func(tx storage.Tx) error {
		post, err := tx.Postings().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if post.RequesterID != ownerID {
			return common.NewError(common.CodeForbidden, "posting belongs to another requester", nil)
		}
		if post.Status != posting.StatusOpen {
			return common.NewError(common.CodeConflict, "posting is already closed", nil)
		}
		if err := tx.Postings().UpdateStatus(ctx, id, posting.StatusClosed); err != nil {
			return err
		}
		post.Status = posting.StatusClosed
		closed = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

func validatePosting(p posting.Posting) map[string]string {
	fields := map[string]string{}
	if p.Service == "" {
		fields["service"] = "service is required"
	}
	if p.Schedule.StartDate == nil {
		fields["start_date"] = "start_date is required"
	}
	if _, err := schedule.ParseMinutes(p.Schedule.StartTime); err != nil {
		fields["start_time"] = "start_time must be HH:MM"
	}
	if _, err := schedule.ParseMinutes(p.Schedule.EndTime); err != nil {
		fields["end_time"] = "end_time must be HH:MM"
	}
	if len(fields) == 0 {
		start, _ := schedule.ParseMinutes(p.Schedule.StartTime)
		end, _ := schedule.ParseMinutes(p.Schedule.EndTime)
		if start >= end {
			fields["end_time"] = "end_time must be after start_time"
		}
	}
	switch p.Schedule.Type {
	case schedule.TypeSingle:
	case schedule.TypeRecurring:
		switch p.Schedule.Frequency {
		case "", schedule.FrequencyDaily, schedule.FrequencyWeekly, schedule.FrequencyMonthly:
		default:
			fields["frequency"] = "frequency must be daily, weekly, or monthly"
		}
		for _, day := range p.Schedule.DaysOfWeek {
			if day < 1 || day > 7 {
				fields["days_of_week"] = "days must be 1 (Monday) through 7 (Sunday)"
			}
		}
	default:
		fields["schedule_type"] = "schedule_type must be single or recurring"
	}
	return fields
}
