package providerRepo

import (
	"testing"

	"karigar/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestDirectorySortEndsOnID(t *testing.T) {
	for _, key := range []string{models.SortByRating, models.SortByPrice, models.SortByExperience, models.SortByRecency, ""} {
		sort := DirectorySort(key)
		if len(sort) != 2 {
			t.Fatalf("%q: sort = %v", key, sort)
		}
		if last := sort[len(sort)-1]; last.Key != "id" || last.Value != 1 {
			t.Errorf("%q: tie-breaker = %v", key, last)
		}
	}
	if first := DirectorySort(models.SortByPrice)[0]; first.Key != "hourlyRate" || first.Value != 1 {
		t.Errorf("price sort = %v", first)
	}
	if first := DirectorySort("")[0]; first.Key != "createdAt" || first.Value != -1 {
		t.Errorf("default sort = %v", first)
	}
}

func TestDirectoryFilter(t *testing.T) {
	f := DirectoryFilter(models.DirectoryQuery{})
	if len(f) != 1 || f["isAvailable"] != true {
		t.Errorf("empty query filter = %v", f)
	}

	f = DirectoryFilter(models.DirectoryQuery{ServiceType: "painter", City: "St. Louis (N)", MinRating: 3.5})
	city, ok := f["location.city"].(bson.M)
	if !ok {
		t.Fatalf("city filter = %v", f["location.city"])
	}
	if city["$regex"] != `St\. Louis \(N\)` || city["$options"] != "i" {
		t.Errorf("city regex = %v", city)
	}
	if f["serviceType"] != "painter" {
		t.Errorf("serviceType = %v", f["serviceType"])
	}
	if rating, _ := f["rating.average"].(bson.M); rating["$gte"] != 3.5 {
		t.Errorf("rating filter = %v", f["rating.average"])
	}
}
