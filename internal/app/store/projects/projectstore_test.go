package projectstore

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/stratafolio/internal/app/system/indexes"
	"github.com/dalemusser/stratafolio/internal/app/system/validators"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/stratafolio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// setupDB returns a test database carrying the production validators and
// indexes.
func setupDB(t *testing.T) *mongo.Database {
	t.Helper()
	return testutil.SetupTestDB(t, validators.EnsureAll, indexes.EnsureAll)
}

func newProject(title string, order int, featured bool, status string) models.Project {
	return models.Project{
		Title:       title,
		Description: title + " description",
		Status:      status,
		Featured:    featured,
		Order:       order,
	}
}

func boolPtr(b bool) *bool { return &b }

func titles(ps []models.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestStore_Create(t *testing.T) {
	db := setupDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{Title: "Site", Description: "A site"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID.IsZero() {
		t.Error("ID should be set")
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps = %v / %v", created.CreatedAt, created.UpdatedAt)
	}
	if created.Status != models.ProjectStatusDevelopment {
		t.Errorf("Status = %q, want default development", created.Status)
	}

	got, err := store.GetByID(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Site" || got.Featured || got.Order != 0 {
		t.Errorf("GetByID() = %+v", got)
	}
	if got.Technologies == nil || len(got.Images) != 0 {
		t.Errorf("defaults not stored: %+v", got)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, id := range []string{"000000000000000000000099", "not-an-id", ""} {
		if _, err := store.GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetByID(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestStore_List_OrderAscending(t *testing.T) {
	db := setupDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, o := range []int{3, 1, 2} {
		if _, err := store.Create(ctx, newProject("p", o, false, models.ProjectStatusDevelopment)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	ps, total, err := store.List(ctx, Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 || len(ps) != 3 {
		t.Fatalf("total = %d, len = %d", total, len(ps))
	}
	for i, want := range []int{1, 2, 3} {
		if ps[i].Order != want {
			t.Errorf("ps[%d].Order = %d, want %d", i, ps[i].Order, want)
		}
	}
}

func TestStore_List_SortFilterPaginate(t *testing.T) {
	db := setupDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := []models.Project{
		newProject("plain-0", 0, false, models.ProjectStatusCompleted),
		newProject("feat-2", 2, true, models.ProjectStatusCompleted),
		newProject("feat-1", 1, true, models.ProjectStatusDevelopment),
		newProject("plain-1-old", 1, false, models.ProjectStatusArchived),
		newProject("plain-1-new", 1, false, models.ProjectStatusCompleted),
	}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range fixtures {
		fixtures[i].ID = primitive.NewObjectID()
		fixtures[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		fixtures[i].UpdatedAt = fixtures[i].CreatedAt
	}
	testutil.InsertProjects(t, db, fixtures...)

	ps, total, err := store.List(ctx, Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"feat-1", "feat-2", "plain-0", "plain-1-new", "plain-1-old"}
	if got := titles(ps); !equal(got, want) {
		t.Errorf("listing order = %v, want %v", got, want)
	}
	if total != 5 {
		t.Errorf("total = %d", total)
	}

	ps, total, err = store.List(ctx, Filter{Status: models.ProjectStatusCompleted}, 1, 10)
	if err != nil {
		t.Fatalf("List(status) error = %v", err)
	}
	if total != 3 {
		t.Errorf("completed total = %d, want 3", total)
	}
	for _, p := range ps {
		if p.Status != models.ProjectStatusCompleted {
			t.Errorf("status filter leaked %q", p.Status)
		}
	}

	ps, total, err = store.List(ctx, Filter{Featured: boolPtr(false)}, 2, 2)
	if err != nil {
		t.Fatalf("List(page 2) error = %v", err)
	}
	if total != 3 {
		t.Errorf("unfeatured total = %d, want 3", total)
	}
	if got := titles(ps); !equal(got, []string{"plain-1-old"}) {
		t.Errorf("page 2 = %v", got)
	}
}

func TestStore_Featured(t *testing.T) {
	db := setupDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 8; i++ {
		if _, err := store.Create(ctx, newProject("f", i, true, models.ProjectStatusCompleted)); err != nil {
			t.Fatal(err)
		}
	}
	store.Create(ctx, newProject("dev", -1, true, models.ProjectStatusDevelopment))
	store.Create(ctx, newProject("unfeatured", -2, false, models.ProjectStatusCompleted))

	ps, err := store.Featured(ctx)
	if err != nil {
		t.Fatalf("Featured() error = %v", err)
	}
	if len(ps) != models.FeaturedLimit {
		t.Fatalf("len = %d, want %d", len(ps), models.FeaturedLimit)
	}
	for i, p := range ps {
		if !p.Featured || p.Status != models.ProjectStatusCompleted {
			t.Errorf("Featured() returned %+v", p)
		}
		if p.Order != i {
			t.Errorf("ps[%d].Order = %d, want %d", i, p.Order, i)
		}
	}
}

func TestStore_Replace(t *testing.T) {
	db := setupDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{
		Title: "Old", Description: "old", Tags: []string{"a"}, DemoURL: "https://old.example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)

	updated, err := store.Replace(ctx, created.ID.Hex(), models.Project{
		Title: "New", Description: "new", Status: models.ProjectStatusCompleted,
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if updated.Title != "New" || updated.Status != models.ProjectStatusCompleted {
		t.Errorf("Replace() = %+v", updated)
	}
	if updated.DemoURL != "" || len(updated.Tags) != 0 {
		t.Errorf("full replace should clear omitted fields: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not advanced: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}

	if _, err := store.Replace(ctx, "000000000000000000000099", updated); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := setupDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{Title: "T", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, created.ID.Hex()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.GetByID(ctx, created.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete error = %v", err)
	}
	if err := store.Delete(ctx, created.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_AddImage(t *testing.T) {
	db := setupDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{Title: "T", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}
	id := created.ID.Hex()

	if _, err := store.AddImage(ctx, id, models.ProjectImage{URL: "/uploads/a.png", IsMain: true}); err != nil {
		t.Fatalf("AddImage() error = %v", err)
	}
	if _, err := store.AddImage(ctx, id, models.ProjectImage{URL: "/uploads/b.png"}); err != nil {
		t.Fatalf("AddImage() error = %v", err)
	}
	p, err := store.AddImage(ctx, id, models.ProjectImage{URL: "/uploads/c.png", IsMain: true})
	if err != nil {
		t.Fatalf("AddImage() error = %v", err)
	}

	if len(p.Images) != 3 {
		t.Fatalf("images = %d, want 3", len(p.Images))
	}
	mains := 0
	for _, img := range p.Images {
		if img.IsMain {
			mains++
		}
	}
	if mains != 1 || !p.Images[2].IsMain {
		t.Errorf("main flags = %+v", p.Images)
	}

	if _, err := store.AddImage(ctx, "000000000000000000000099", models.ProjectImage{URL: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddImage(missing) error = %v", err)
	}
}

func TestFilter_Matches(t *testing.T) {
	p := models.Project{Status: models.ProjectStatusCompleted, Featured: true}
	tests := []struct {
		f    Filter
		want bool
	}{
		{Filter{}, true},
		{Filter{Status: models.ProjectStatusCompleted}, true},
		{Filter{Status: models.ProjectStatusArchived}, false},
		{Filter{Featured: boolPtr(true)}, true},
		{Filter{Featured: boolPtr(false)}, false},
	}
	for _, tt := range tests {
		if got := tt.f.Matches(p); got != tt.want {
			t.Errorf("%+v.Matches() = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
