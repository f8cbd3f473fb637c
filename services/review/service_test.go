package review

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"karigar/database/repository/memstore"
	providerRepo "karigar/database/repository/provider"
	"karigar/models"
	"karigar/services/tasks"
	"karigar/utils"

	"github.com/hibiken/asynq"
	"pgregory.net/rapid"
)

const (
	customerID = "customer-1"
	providerID = "provider-1"
)

type fixture struct {
	store *memstore.Store
	svc   *DefaultReviewService
	queue *fakeQueue
}

type fakeQueue struct {
	tasks []*asynq.Task
}

func (q *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

// failingRatings rejects every rating write.
type failingRatings struct {
	providerRepo.ProviderRepository
}

func (failingRatings) SetRating(context.Context, string, models.RatingSummary) error {
	return errors.New("write conflict")
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	if err := store.Providers().Create(ctx, &models.ServiceProvider{
		ID:          providerID,
		UserID:      "provider-user-1",
		ServiceType: "electrician",
		HourlyRate:  300,
		IsAvailable: true,
	}); err != nil {
		t.Fatal(err)
	}
	queue := &fakeQueue{}
	svc := &DefaultReviewService{
		Reviews:   store.Reviews(),
		Bookings:  store.Bookings(),
		Providers: store.Providers(),
		Aggregator: &RatingAggregator{
			Reviews:   store.Reviews(),
			Providers: store.Providers(),
		},
		Queue: queue,
	}
	return &fixture{store: store, svc: svc, queue: queue}
}

func (f *fixture) addBooking(t *testing.T, id string, status models.BookingStatus) {
	t.Helper()
	err := f.store.Bookings().Create(context.Background(), &models.Booking{
		ID:             id,
		CustomerID:     customerID,
		ProviderID:     providerID,
		ProviderUserID: "provider-user-1",
		Status:         status,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func submit(id string, overall int) models.SubmitReviewRequest {
	return models.SubmitReviewRequest{
		BookingID: id,
		Rating:    models.CompositeRating{Overall: overall},
		Comment:   "Neat and on time",
	}
}

func expectKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := utils.KindOf(err); got != kind {
		t.Fatalf("expected %s error, got %s (%v)", kind, got, err)
	}
}

func TestSubmitReview_UpdatesRatingAndLinksBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, "b1", models.StatusCompleted)
	f.addBooking(t, "b2", models.StatusCompleted)

	first, err := f.svc.SubmitReview(ctx, customerID, submit("b1", 4))
	if err != nil {
		t.Fatal(err)
	}
	if !first.IsVerified || first.HelpfulVotes != 0 {
		t.Errorf("review flags = %+v", first)
	}
	if first.Rating.Quality != 4 || first.Rating.Communication != 4 {
		t.Errorf("sub-ratings should default to overall: %+v", first.Rating)
	}
	if _, err := f.svc.SubmitReview(ctx, customerID, submit("b2", 5)); err != nil {
		t.Fatal(err)
	}

	p, _ := f.store.Providers().GetByID(ctx, providerID)
	if p.Rating.Count != 2 || p.Rating.Average != 4.5 {
		t.Errorf("rating = %+v, want 4.5 over 2", p.Rating)
	}

	b, _ := f.store.Bookings().GetByID(ctx, "b1")
	if b.ReviewID != first.ID || b.Review == nil || b.Review.Rating != 4 {
		t.Errorf("booking link = %q %+v", b.ReviewID, b.Review)
	}
	if len(f.queue.tasks) != 0 {
		t.Error("no retry task expected when recompute succeeds")
	}
}

func TestSubmitReview_DuplicateIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, "b1", models.StatusCompleted)

	if _, err := f.svc.SubmitReview(ctx, customerID, submit("b1", 5)); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.SubmitReview(ctx, customerID, submit("b1", 1))
	expectKind(t, err, utils.KindConflict)

	p, _ := f.store.Providers().GetByID(ctx, providerID)
	if p.Rating.Count != 1 || p.Rating.Average != 5 {
		t.Errorf("rating = %+v", p.Rating)
	}
}

func TestSubmitReview_PreconditionOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, "pending", models.StatusPending)
	f.addBooking(t, "done", models.StatusCompleted)

	// validation runs before any lookup
	_, err := f.svc.SubmitReview(ctx, customerID, submit("missing", 0))
	expectKind(t, err, utils.KindValidation)

	_, err = f.svc.SubmitReview(ctx, customerID, submit("missing", 5))
	expectKind(t, err, utils.KindNotFound)

	// ownership is checked before status
	_, err = f.svc.SubmitReview(ctx, "someone-else", submit("pending", 5))
	expectKind(t, err, utils.KindAuthorization)

	_, err = f.svc.SubmitReview(ctx, customerID, submit("pending", 5))
	expectKind(t, err, utils.KindInvalidState)

	_, err = f.svc.SubmitReview(ctx, "someone-else", submit("done", 5))
	expectKind(t, err, utils.KindAuthorization)
}

func TestSubmitReview_Validation(t *testing.T) {
	f := newFixture(t)
	cases := map[string]func(*models.SubmitReviewRequest){
		"no booking":     func(r *models.SubmitReviewRequest) { r.BookingID = " " },
		"overall high":   func(r *models.SubmitReviewRequest) { r.Rating.Overall = 6 },
		"sub rating":     func(r *models.SubmitReviewRequest) { r.Rating.Punctuality = 9 },
		"no comment":     func(r *models.SubmitReviewRequest) { r.Comment = "" },
		"too many image": func(r *models.SubmitReviewRequest) { r.Images = make([]models.Image, MaxReviewImages+1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := submit("b1", 5)
			mutate(&req)
			_, err := f.svc.SubmitReview(context.Background(), customerID, req)
			expectKind(t, err, utils.KindValidation)
		})
	}
}

func TestSubmitReview_RecomputeFailureKeepsReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, "b1", models.StatusCompleted)
	f.svc.Aggregator.Providers = failingRatings{f.store.Providers()}

	rv, err := f.svc.SubmitReview(ctx, customerID, submit("b1", 3))
	if err != nil {
		t.Fatalf("review should be accepted when the recompute fails: %v", err)
	}
	if _, err := f.store.Reviews().GetByID(ctx, rv.ID); err != nil {
		t.Errorf("review not stored: %v", err)
	}
	if len(f.queue.tasks) != 1 {
		t.Fatalf("expected one retry task, got %d", len(f.queue.tasks))
	}
	task := f.queue.tasks[0]
	if task.Type() != tasks.TypeRatingRecompute {
		t.Errorf("task type = %s", task.Type())
	}
	payload, err := tasks.ParseRatingRecompute(task)
	if err != nil || payload.ProviderID != providerID {
		t.Errorf("payload = %+v, %v", payload, err)
	}
}

func TestListAndHelpful(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, "b1", models.StatusCompleted)
	rv, err := f.svc.SubmitReview(ctx, customerID, submit("b1", 5))
	if err != nil {
		t.Fatal(err)
	}

	mine, err := f.svc.ListMyReviews(ctx, customerID, models.Page{Page: 1, Limit: 10})
	if err != nil || mine.Total != 1 {
		t.Fatalf("my reviews = %+v, %v", mine, err)
	}
	theirs, err := f.svc.ListProviderReviews(ctx, providerID, models.Page{Page: 1, Limit: 10})
	if err != nil || theirs.Total != 1 {
		t.Fatalf("provider reviews = %+v, %v", theirs, err)
	}
	_, err = f.svc.ListProviderReviews(ctx, "unknown", models.Page{Page: 1, Limit: 10})
	expectKind(t, err, utils.KindNotFound)

	for i, voter := range []string{"voter-1", "voter-2"} {
		voted, err := f.svc.MarkHelpful(ctx, voter, rv.ID)
		if err != nil {
			t.Fatal(err)
		}
		if voted.HelpfulVotes != i+1 {
			t.Errorf("votes = %d, want %d", voted.HelpfulVotes, i+1)
		}
	}
	_, err = f.svc.MarkHelpful(ctx, "missing-voter", "missing")
	expectKind(t, err, utils.KindNotFound)
}

func TestMarkHelpful_OneVotePerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, "b1", models.StatusCompleted)
	rv, err := f.svc.SubmitReview(ctx, customerID, submit("b1", 4))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.MarkHelpful(ctx, customerID, rv.ID)
	expectKind(t, err, utils.KindValidation)

	if _, err := f.svc.MarkHelpful(ctx, "voter-1", rv.ID); err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.MarkHelpful(ctx, "voter-1", rv.ID)
	expectKind(t, err, utils.KindConflict)

	stored, err := f.store.Reviews().GetByID(ctx, rv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.HelpfulVotes != 1 || len(stored.HelpfulVoters) != 1 {
		t.Errorf("votes = %d voters = %v", stored.HelpfulVotes, stored.HelpfulVoters)
	}
}

func TestRecomputeAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBooking(t, "b1", models.StatusCompleted)
	if _, err := f.svc.SubmitReview(ctx, customerID, submit("b1", 2)); err != nil {
		t.Fatal(err)
	}
	// simulate drift left by a lost recompute
	if err := f.store.Providers().SetRating(ctx, providerID, models.RatingSummary{}); err != nil {
		t.Fatal(err)
	}

	inv := &countingInvalidator{}
	f.svc.Aggregator.Directory = inv
	n, err := f.svc.Aggregator.RecomputeAll(ctx)
	if err != nil || n != 1 {
		t.Fatalf("RecomputeAll = %d, %v", n, err)
	}
	p, _ := f.store.Providers().GetByID(ctx, providerID)
	if p.Rating.Count != 1 || p.Rating.Average != 2 {
		t.Errorf("rating = %+v", p.Rating)
	}
	if inv.calls != 1 {
		t.Errorf("directory invalidated %d times", inv.calls)
	}
}

func TestProperty_ComputeRatingIsMean(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ratings := rapid.SliceOf(rapid.IntRange(1, 5)).Draw(rt, "ratings")
		got := ComputeRating(ratings)

		if got.Count != len(ratings) {
			rt.Fatalf("count = %d, want %d", got.Count, len(ratings))
		}
		if len(ratings) == 0 {
			if got.Average != 0 {
				rt.Fatalf("empty average = %v", got.Average)
			}
			return
		}
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		want := float64(sum) / float64(len(ratings))
		if math.Abs(got.Average-want) > 1e-9 {
			rt.Fatalf("average = %v, want %v", got.Average, want)
		}
		if got.Average < 1 || got.Average > 5 {
			rt.Fatalf("average %v out of range", got.Average)
		}
	})
}

// However many times a booking is reviewed, exactly one review survives.
func TestProperty_OneReviewPerBooking(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := memstore.New()
		ctx := context.Background()
		_ = store.Providers().Create(ctx, &models.ServiceProvider{ID: providerID, UserID: "pu", IsAvailable: true})
		_ = store.Bookings().Create(ctx, &models.Booking{
			ID: "b1", CustomerID: customerID, ProviderID: providerID, Status: models.StatusCompleted,
		})
		svc := &DefaultReviewService{
			Reviews:    store.Reviews(),
			Bookings:   store.Bookings(),
			Providers:  store.Providers(),
			Aggregator: &RatingAggregator{Reviews: store.Reviews(), Providers: store.Providers()},
		}

		attempts := rapid.IntRange(1, 5).Draw(rt, "attempts")
		ok := 0
		for i := 0; i < attempts; i++ {
			overall := rapid.IntRange(1, 5).Draw(rt, "overall")
			_, err := svc.SubmitReview(ctx, customerID, submit("b1", overall))
			if err == nil {
				ok++
			} else if utils.KindOf(err) != utils.KindConflict {
				rt.Fatalf("unexpected error %v", err)
			}
		}
		if ok != 1 {
			rt.Fatalf("%d reviews accepted", ok)
		}
		p, _ := store.Providers().GetByID(ctx, providerID)
		if p.Rating.Count != 1 {
			rt.Fatalf("rating count = %d", p.Rating.Count)
		}
	})
}
