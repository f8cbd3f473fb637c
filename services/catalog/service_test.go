package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"karigar/database/repository/memstore"
	"karigar/models"
	"karigar/utils"

	"pgregory.net/rapid"
)

const (
	ownerID = "provider-user-1"
	otherID = "provider-user-2"
)

func newTestService(t *testing.T) (*DefaultCatalogService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	err := store.Users().Create(context.Background(), &models.User{
		ID: ownerID, Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210", Role: models.RoleServiceProvider,
	})
	if err != nil {
		t.Fatal(err)
	}
	svc := NewDefaultCatalogService(store.Services(), store.Users())
	clock := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, store
}

func createRequest(title string) models.CreateServiceRequest {
	return models.CreateServiceRequest{
		ServiceType: "plumber",
		Title:       title,
		Description: "Fix leaks and replace fittings",
		Price:       499.999,
		Location:    models.ServiceLocation{City: "Pune"},
	}
}

func expectKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	if got := utils.KindOf(err); err == nil || got != kind {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}

func TestCreateService_Defaults(t *testing.T) {
	svc, _ := newTestService(t)
	s, err := svc.CreateService(context.Background(), ownerID, createRequest("  Tap repair "))
	if err != nil {
		t.Fatal(err)
	}
	if s.Title != "Tap repair" || s.PriceType != models.PriceFixed || !s.IsActive || s.ProviderID != ownerID {
		t.Errorf("service = %+v", s)
	}
	if s.Price != 500 {
		t.Errorf("price = %v, want 500", s.Price)
	}
}

func TestCreateService_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	cases := map[string]func(*models.CreateServiceRequest){
		"unknown type":   func(r *models.CreateServiceRequest) { r.ServiceType = "astrologer" },
		"missing title":  func(r *models.CreateServiceRequest) { r.Title = " " },
		"long title":     func(r *models.CreateServiceRequest) { r.Title = strings.Repeat("t", MaxTitleLength+1) },
		"missing desc":   func(r *models.CreateServiceRequest) { r.Description = "" },
		"negative price": func(r *models.CreateServiceRequest) { r.Price = -1 },
		"bad price type": func(r *models.CreateServiceRequest) { r.PriceType = "monthly" },
		"negative years": func(r *models.CreateServiceRequest) { r.Experience = -2 },
	}
	for name, mutate := range cases {
		req := createRequest("Tap repair")
		mutate(&req)
		_, err := svc.CreateService(context.Background(), ownerID, req)
		if utils.KindOf(err) != utils.KindValidation {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestMyServicesNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	first, _ := svc.CreateService(ctx, ownerID, createRequest("First"))
	second, _ := svc.CreateService(ctx, ownerID, createRequest("Second"))
	if _, err := svc.CreateService(ctx, otherID, createRequest("Not mine")); err != nil {
		t.Fatal(err)
	}

	mine, err := svc.MyServices(ctx, ownerID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 || mine[0].ID != second.ID || mine[1].ID != first.ID {
		t.Errorf("my services = %+v", mine)
	}

	none, err := svc.MyServices(ctx, "nobody")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("empty catalog = %v, %v", none, err)
	}
}

func TestGetServiceCarriesOwnerContact(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	s, _ := svc.CreateService(ctx, ownerID, createRequest("Tap repair"))

	detail, err := svc.GetService(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Owner == nil || detail.Owner.Name != "Ravi" || detail.Owner.Phone != "9876543210" {
		t.Errorf("owner = %+v", detail.Owner)
	}

	orphan, _ := svc.CreateService(ctx, otherID, createRequest("Orphan"))
	detail, err = svc.GetService(ctx, orphan.ID)
	if err != nil || detail.Owner != nil {
		t.Errorf("missing owner should leave the card empty: %+v, %v", detail, err)
	}

	_, err = svc.GetService(ctx, "missing")
	expectKind(t, err, utils.KindNotFound)
}

func TestUpdateAndDeleteRequireOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	s, _ := svc.CreateService(ctx, ownerID, createRequest("Tap repair"))

	price := 750.0
	inactive := false
	_, err := svc.UpdateService(ctx, otherID, s.ID, models.UpdateServiceRequest{Price: &price})
	expectKind(t, err, utils.KindAuthorization)
	err = svc.DeleteService(ctx, otherID, s.ID)
	expectKind(t, err, utils.KindAuthorization)

	updated, err := svc.UpdateService(ctx, ownerID, s.ID, models.UpdateServiceRequest{Price: &price, IsActive: &inactive})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Price != 750 || updated.IsActive || updated.Title != "Tap repair" {
		t.Errorf("updated = %+v", updated)
	}

	blank := " "
	_, err = svc.UpdateService(ctx, ownerID, s.ID, models.UpdateServiceRequest{Title: &blank})
	expectKind(t, err, utils.KindValidation)

	if err := svc.DeleteService(ctx, ownerID, s.ID); err != nil {
		t.Fatal(err)
	}
	_, err = svc.GetService(ctx, s.ID)
	expectKind(t, err, utils.KindNotFound)
	err = svc.DeleteService(ctx, ownerID, s.ID)
	expectKind(t, err, utils.KindNotFound)
}

// Stored prices always carry at most two decimal places.
func TestProperty_PriceRoundedToCents(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cents := rapid.Int64Range(0, 10_000_000).Draw(rt, "cents")
		extra := rapid.Float64Range(0, 0.004).Draw(rt, "extra")
		price := float64(cents)/100 + extra
		if got := roundPrice(price); got != float64(cents)/100 {
			rt.Fatalf("roundPrice(%v) = %v, want %v", price, got, float64(cents)/100)
		}
	})
}
