package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"karigar/database/repository/memstore"
	"karigar/models"
	"karigar/utils"

	"pgregory.net/rapid"
)

const (
	customerID     = "customer-1"
	providerUserID = "provider-user-1"
	providerID     = "provider-1"
)

// tb is the subset of testing.TB that *rapid.T also satisfies.
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

func newTestService(t tb) (*DefaultBookingService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	err := store.Providers().Create(context.Background(), &models.ServiceProvider{
		ID:          providerID,
		UserID:      providerUserID,
		ServiceType: "plumber",
		HourlyRate:  200,
		IsAvailable: true,
		Location:    models.ProviderLocation{City: "Pune"},
	})
	if err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	svc := NewDefaultBookingService(store.Bookings(), store.Providers(), nil)
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, store
}

func validRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		ServiceProviderID: providerID,
		ServiceType:       "plumber",
		Description:       "Leaking kitchen tap",
		Address:           models.Address{Street: "12 MG Road", City: "Pune", State: "MH", PostalCode: "411001"},
		Schedule: models.Schedule{
			Date:           "2025-01-10",
			TimeSlot:       models.TimeSlot{Start: "10:00", End: "12:00"},
			EstimatedHours: 2,
		},
	}
}

func mustCreate(t tb, svc *DefaultBookingService) *models.Booking {
	t.Helper()
	b, err := svc.CreateBooking(context.Background(), customerID, validRequest())
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func expectKind(t tb, err error, kind utils.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := utils.KindOf(err); got != kind {
		t.Fatalf("expected %s error, got %s (%v)", kind, got, err)
	}
}

func TestCreateBooking_PricingAndHistory(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)

	if b.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.Pricing.HourlyRate != 200 || b.Pricing.EstimatedTotal != 400 {
		t.Errorf("pricing = %+v, want rate 200 total 400", b.Pricing)
	}
	if b.Pricing.PaymentStatus != models.PaymentPending {
		t.Errorf("payment status = %s", b.Pricing.PaymentStatus)
	}
	if len(b.StatusHistory) != 1 || b.StatusHistory[0].Note != "Booking created" {
		t.Errorf("history = %+v", b.StatusHistory)
	}
	if b.ProviderUserID != providerUserID {
		t.Errorf("providerUser = %s", b.ProviderUserID)
	}
	if b.Messages == nil {
		t.Error("messages should start as an empty thread")
	}
}

func TestCreateBooking_DefaultsEstimatedHours(t *testing.T) {
	svc, _ := newTestService(t)
	req := validRequest()
	req.Schedule.EstimatedHours = 0
	b, err := svc.CreateBooking(context.Background(), customerID, req)
	if err != nil {
		t.Fatal(err)
	}
	if b.Schedule.EstimatedHours != 1 || b.Pricing.EstimatedTotal != 200 {
		t.Errorf("hours %v total %v", b.Schedule.EstimatedHours, b.Pricing.EstimatedTotal)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	cases := map[string]func(*models.CreateBookingRequest){
		"missing provider":  func(r *models.CreateBookingRequest) { r.ServiceProviderID = "" },
		"missing street":    func(r *models.CreateBookingRequest) { r.Address.Street = " " },
		"bad date":          func(r *models.CreateBookingRequest) { r.Schedule.Date = "10/01/2025" },
		"end before start":  func(r *models.CreateBookingRequest) { r.Schedule.TimeSlot.End = "09:00" },
		"long description":  func(r *models.CreateBookingRequest) { r.Description = strings.Repeat("x", MaxDescriptionLength+1) },
		"negative hours":    func(r *models.CreateBookingRequest) { r.Schedule.EstimatedHours = -1 },
		"too many files":    func(r *models.CreateBookingRequest) { r.Attachments = make([]models.Attachment, MaxAttachments+1) },
		"blank attachment":  func(r *models.CreateBookingRequest) { r.Attachments = []models.Attachment{{Name: "a.png"}} },
		"missing time slot": func(r *models.CreateBookingRequest) { r.Schedule.TimeSlot = models.TimeSlot{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := svc.CreateBooking(context.Background(), customerID, req)
			expectKind(t, err, utils.KindValidation)
		})
	}
}

func TestCreateBooking_ProviderChecks(t *testing.T) {
	svc, store := newTestService(t)

	req := validRequest()
	req.ServiceProviderID = "nope"
	_, err := svc.CreateBooking(context.Background(), customerID, req)
	expectKind(t, err, utils.KindNotFound)

	off := false
	if _, err := store.Providers().Update(context.Background(), providerID, models.UpdateProviderRequest{IsAvailable: &off}); err != nil {
		t.Fatal(err)
	}
	_, err = svc.CreateBooking(context.Background(), customerID, validRequest())
	expectKind(t, err, utils.KindConflict)
}

func TestAcceptTwice(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	accepted, err := svc.AcceptBooking(ctx, providerUserID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if accepted.Status != models.StatusAccepted {
		t.Fatalf("status = %s", accepted.Status)
	}

	_, err = svc.AcceptBooking(ctx, providerUserID, b.ID)
	expectKind(t, err, utils.KindInvalidTransition)

	current, err := svc.GetBooking(ctx, customerID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if current.Status != models.StatusAccepted || len(current.StatusHistory) != 2 {
		t.Errorf("status %s history %d", current.Status, len(current.StatusHistory))
	}
}

func TestCustomerCancelWithReason(t *testing.T) {
	svc, store := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	cancelled, err := svc.UpdateStatus(ctx, customerID, b.ID, models.StatusUpdateRequest{
		Status:             models.StatusCancelled,
		CancellationReason: "schedule conflict",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cancelled.Status != models.StatusCancelled || cancelled.CancellationReason != "schedule conflict" {
		t.Errorf("got %s / %q", cancelled.Status, cancelled.CancellationReason)
	}
	last := cancelled.StatusHistory[len(cancelled.StatusHistory)-1]
	if last.Status != models.StatusCancelled || last.Note != "schedule conflict" {
		t.Errorf("last history = %+v", last)
	}

	p, _ := store.Providers().GetByID(ctx, providerID)
	if p.TotalJobs.Cancelled != 1 {
		t.Errorf("cancelled jobs = %d", p.TotalJobs.Cancelled)
	}

	_, err = svc.UpdateStatus(ctx, customerID, b.ID, models.StatusUpdateRequest{Status: models.StatusCancelled})
	expectKind(t, err, utils.KindInvalidTransition)
}

func TestCustomerCannotComplete(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)
	_, err := svc.UpdateStatus(context.Background(), customerID, b.ID, models.StatusUpdateRequest{Status: models.StatusCompleted})
	expectKind(t, err, utils.KindInvalidTransition)

	_, err = svc.UpdateStatus(context.Background(), customerID, b.ID, models.StatusUpdateRequest{Status: "archived"})
	expectKind(t, err, utils.KindInvalidTransition)
	if msg := err.Error(); !strings.Contains(msg, "pending") || !strings.Contains(msg, "archived") {
		t.Errorf("error should name both statuses: %q", msg)
	}

	_, err = svc.UpdateStatus(context.Background(), customerID, b.ID, models.StatusUpdateRequest{})
	expectKind(t, err, utils.KindValidation)
}

func TestAuthorization(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	_, err := svc.GetBooking(ctx, "stranger", b.ID)
	expectKind(t, err, utils.KindAuthorization)

	_, err = svc.AcceptBooking(ctx, "other-provider", b.ID)
	expectKind(t, err, utils.KindAuthorization)

	_, err = svc.UpdateStatus(ctx, providerUserID, b.ID, models.StatusUpdateRequest{Status: models.StatusCancelled})
	expectKind(t, err, utils.KindAuthorization)

	_, err = svc.AddMessage(ctx, "stranger", b.ID, "hello")
	expectKind(t, err, utils.KindAuthorization)

	_, err = svc.GetBooking(ctx, customerID, "missing")
	expectKind(t, err, utils.KindNotFound)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	_, err := svc.RejectBooking(ctx, providerUserID, b.ID, "  ")
	expectKind(t, err, utils.KindValidation)

	rejected, err := svc.RejectBooking(ctx, providerUserID, b.ID, "fully booked")
	if err != nil {
		t.Fatal(err)
	}
	if rejected.Status != models.StatusRejected || rejected.RejectionReason != "fully booked" {
		t.Errorf("got %s / %q", rejected.Status, rejected.RejectionReason)
	}
}

func TestReschedule(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	_, err := svc.RescheduleBooking(ctx, providerUserID, b.ID, models.RescheduleRequest{ScheduledDate: "2025-01-12"})
	expectKind(t, err, utils.KindValidation)

	rs, err := svc.RescheduleBooking(ctx, providerUserID, b.ID, models.RescheduleRequest{
		ScheduledDate: "2025-01-12",
		TimeSlot:      models.TimeSlot{Start: "14:00", End: "16:00"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if rs.Status != models.StatusRescheduled || rs.RescheduledDate != "2025-01-12" {
		t.Errorf("got %s / %s", rs.Status, rs.RescheduledDate)
	}
	if rs.RescheduledTimeSlot == nil || rs.RescheduledTimeSlot.Start != "14:00" {
		t.Errorf("slot = %+v", rs.RescheduledTimeSlot)
	}
	if rs.Schedule.Date != "2025-01-10" {
		t.Errorf("original schedule changed to %s", rs.Schedule.Date)
	}

	_, err = svc.AcceptBooking(ctx, providerUserID, b.ID)
	expectKind(t, err, utils.KindInvalidTransition)
}

func TestFullLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	_, err := svc.CompleteBooking(ctx, providerUserID, b.ID)
	expectKind(t, err, utils.KindInvalidTransition)

	if _, err := svc.AcceptBooking(ctx, providerUserID, b.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StartBooking(ctx, providerUserID, b.ID); err != nil {
		t.Fatal(err)
	}
	done, err := svc.CompleteBooking(ctx, providerUserID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != models.StatusCompleted || done.CompletedAt == nil {
		t.Errorf("status %s completedAt %v", done.Status, done.CompletedAt)
	}
	if len(done.StatusHistory) != 4 {
		t.Errorf("history length = %d", len(done.StatusHistory))
	}

	p, _ := store.Providers().GetByID(ctx, providerID)
	if p.TotalJobs.Completed != 1 {
		t.Errorf("completed jobs = %d", p.TotalJobs.Completed)
	}

	_, err = svc.UpdateStatus(ctx, customerID, b.ID, models.StatusUpdateRequest{Status: models.StatusCancelled})
	expectKind(t, err, utils.KindInvalidTransition)
}

func TestMessageOnCancelledBooking(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, customerID, b.ID, models.StatusUpdateRequest{Status: models.StatusCancelled, CancellationReason: "changed plans"}); err != nil {
		t.Fatal(err)
	}
	updated, err := svc.AddMessage(ctx, providerUserID, b.ID, "  Sorry to see you go  ")
	if err != nil {
		t.Fatalf("message on cancelled booking: %v", err)
	}
	if len(updated.Messages) != 1 {
		t.Fatalf("messages = %d", len(updated.Messages))
	}
	m := updated.Messages[0]
	if m.Sender != models.SenderProvider || m.SenderID != providerUserID || m.Text != "Sorry to see you go" {
		t.Errorf("message = %+v", m)
	}
	if updated.Status != models.StatusCancelled {
		t.Errorf("status changed to %s", updated.Status)
	}
}

func TestMessageValidation(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	_, err := svc.AddMessage(ctx, customerID, b.ID, "   ")
	expectKind(t, err, utils.KindValidation)

	_, err = svc.AddMessage(ctx, customerID, b.ID, strings.Repeat("a", MaxMessageLength+1))
	expectKind(t, err, utils.KindValidation)

	if _, err := svc.AddMessage(ctx, customerID, b.ID, strings.Repeat("a", MaxMessageLength)); err != nil {
		t.Errorf("message at the limit should pass: %v", err)
	}
}

func TestMessageThreadCap(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc)
	ctx := context.Background()

	for i := 0; i < MaxThreadMessages; i++ {
		if _, err := svc.AddMessage(ctx, customerID, b.ID, fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("message %d: %v", i, err)
		}
	}
	_, err := svc.AddMessage(ctx, customerID, b.ID, "one too many")
	expectKind(t, err, utils.KindConflict)
}

func TestListing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, mustCreate(t, svc).ID)
	}
	if _, err := svc.UpdateStatus(ctx, customerID, ids[0], models.StatusUpdateRequest{Status: models.StatusCancelled}); err != nil {
		t.Fatal(err)
	}

	all, err := svc.ListCustomerBookings(ctx, customerID, nil, models.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if all.Total != 3 || len(all.Items) != 3 {
		t.Fatalf("total %d items %d", all.Total, len(all.Items))
	}
	if all.Items[0].ID != ids[2] {
		t.Error("bookings should be newest first")
	}

	pending, err := svc.ListProviderBookings(ctx, providerUserID, []models.BookingStatus{models.StatusPending}, models.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if pending.Total != 2 {
		t.Errorf("pending total = %d", pending.Total)
	}

	history, err := svc.ProviderHistory(ctx, providerUserID, models.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if history.Total != 1 || history.Items[0].ID != ids[0] {
		t.Errorf("history = %+v", history)
	}

	_, err = svc.ListCustomerBookings(ctx, customerID, []models.BookingStatus{"archived"}, models.Page{Page: 1, Limit: 10})
	expectKind(t, err, utils.KindValidation)

	none, err := svc.ListCustomerBookings(ctx, "someone-else", nil, models.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if none.Total != 0 || none.Items == nil {
		t.Errorf("empty listing = %+v", none)
	}
}

func TestListing_FarPageIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreate(t, svc)

	page := utils.NormalizePage(1_000_000_000_000_000_000, 10, 10, 100)
	if page.Skip() < 0 {
		t.Fatalf("skip wrapped negative: %d", page.Skip())
	}
	got, err := svc.ListCustomerBookings(context.Background(), customerID, nil, page)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 1 || len(got.Items) != 0 {
		t.Errorf("far page = %+v", got)
	}
}

// Every accepted transition adds exactly one history entry; refused ones add none.
func TestProperty_HistoryGrowsByOnePerChange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		svc, _ := newTestService(rt)
		b := mustCreate(rt, svc)
		ctx := context.Background()

		ops := []string{"accept", "reject", "reschedule", "start", "complete", "cancel"}
		steps := rapid.IntRange(1, 8).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			before, err := svc.GetBooking(ctx, customerID, b.ID)
			if err != nil {
				rt.Fatal(err)
			}
			op := rapid.SampledFrom(ops).Draw(rt, "op")
			var opErr error
			switch op {
			case "accept":
				_, opErr = svc.AcceptBooking(ctx, providerUserID, b.ID)
			case "reject":
				_, opErr = svc.RejectBooking(ctx, providerUserID, b.ID, "busy")
			case "reschedule":
				_, opErr = svc.RescheduleBooking(ctx, providerUserID, b.ID, models.RescheduleRequest{
					ScheduledDate: "2025-02-01",
					TimeSlot:      models.TimeSlot{Start: "09:00", End: "10:00"},
				})
			case "start":
				_, opErr = svc.StartBooking(ctx, providerUserID, b.ID)
			case "complete":
				_, opErr = svc.CompleteBooking(ctx, providerUserID, b.ID)
			case "cancel":
				_, opErr = svc.UpdateStatus(ctx, customerID, b.ID, models.StatusUpdateRequest{Status: models.StatusCancelled})
			}

			after, err := svc.GetBooking(ctx, customerID, b.ID)
			if err != nil {
				rt.Fatal(err)
			}
			grew := len(after.StatusHistory) - len(before.StatusHistory)
			if opErr == nil && grew != 1 {
				rt.Fatalf("%s succeeded but history grew by %d", op, grew)
			}
			if opErr != nil {
				if grew != 0 || after.Status != before.Status {
					rt.Fatalf("%s failed but booking changed", op)
				}
				var appErr *utils.AppError
				if !errors.As(opErr, &appErr) || appErr.Kind != utils.KindInvalidTransition {
					rt.Fatalf("%s failed with %v", op, opErr)
				}
			}
		}
	})
}

func TestEstimateTotal(t *testing.T) {
	cases := []struct {
		rate, hours, want float64
	}{
		{200, 2, 400},
		{199.99, 1.5, 299.99},
		{0.1, 3, 0.3},
		{350, 0.25, 87.5},
	}
	for _, c := range cases {
		if got := EstimateTotal(c.rate, c.hours); got != c.want {
			t.Errorf("EstimateTotal(%v, %v) = %v, want %v", c.rate, c.hours, got, c.want)
		}
	}
}
