// ABOUTME: Tests for the in-memory query projection
// ABOUTME: Covers loading, orderings, search, related lookups, and pipeline math
package db

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/harperreed/forkyou/models"
	"github.com/harperreed/forkyou/store"
)

func testRoot(t *testing.T) string {
	t.Helper()
	root, err := store.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return root
}

func write(t *testing.T, root string, col store.Collection, id string, rec any) {
	t.Helper()
	if err := store.WriteRecord(root, col, id, rec); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
}

func buildDB(t *testing.T, root string) *sql.DB {
	t.Helper()
	db, err := Build(root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func floatPtr(v float64) *float64 { return &v }

func TestBuild_EmptyStore(t *testing.T) {
	db := buildDB(t, testRoot(t))

	contacts, err := ListContacts(db)
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("expected no contacts, got %d", len(contacts))
	}
}

func TestListContacts_SortedByName(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	write(t, root, store.Contacts, "id1", models.Contact{ID: "id1", Name: "Charlie", Created: now, Updated: now})
	write(t, root, store.Contacts, "id2", models.Contact{ID: "id2", Name: "Alice", Email: "a@example.com", Created: now, Updated: now})
	write(t, root, store.Contacts, "id3", models.Contact{ID: "id3", Name: "Bob", Custom: map[string]string{"tz": "UTC"}, Created: now, Updated: now})

	contacts, err := ListContacts(buildDB(t, root))
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(contacts) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(contacts))
	}
	for i, want := range []string{"Alice", "Bob", "Charlie"} {
		if contacts[i].Name != want {
			t.Errorf("contact %d: expected %q, got %q", i, want, contacts[i].Name)
		}
	}
	if contacts[0].Email != "a@example.com" {
		t.Errorf("expected email round trip, got %q", contacts[0].Email)
	}
	if contacts[1].Custom["tz"] != "UTC" {
		t.Errorf("expected custom field round trip, got %v", contacts[1].Custom)
	}
}

func TestSearchContacts_MatchesNameEmailRole(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	write(t, root, store.Contacts, "id1", models.Contact{ID: "id1", Name: "Ada Lovelace", Created: now, Updated: now})
	write(t, root, store.Contacts, "id2", models.Contact{ID: "id2", Name: "Grace", Email: "grace@navy.mil", Created: now, Updated: now})
	write(t, root, store.Contacts, "id3", models.Contact{ID: "id3", Name: "Linus", Role: "Kernel Engineer", Created: now, Updated: now})

	db := buildDB(t, root)

	cases := []struct {
		query string
		want  string
	}{
		{"ADA", "id1"},
		{"navy", "id2"},
		{"kernel", "id3"},
	}
	for _, tc := range cases {
		got, err := SearchContacts(db, tc.query)
		if err != nil {
			t.Fatalf("SearchContacts(%q) failed: %v", tc.query, err)
		}
		if len(got) != 1 || got[0].ID != tc.want {
			t.Errorf("SearchContacts(%q): expected [%s], got %v", tc.query, tc.want, got)
		}
	}

	none, err := SearchContacts(db, "nobody")
	if err != nil {
		t.Fatalf("SearchContacts failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestListDeals_StageOrder(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	cfg := models.DefaultConfig()
	write(t, root, store.Deals, "id1", models.Deal{ID: "id1", Title: "Zeta", Stage: "lead", Contacts: []string{}, Created: now, Updated: now})
	write(t, root, store.Deals, "id2", models.Deal{ID: "id2", Title: "Alpha", Stage: "negotiation", Contacts: []string{}, Created: now, Updated: now})
	write(t, root, store.Deals, "id3", models.Deal{ID: "id3", Title: "Beta", Stage: "lead", Contacts: []string{}, Created: now, Updated: now})
	// A stage removed from the configuration sorts last.
	write(t, root, store.Deals, "id4", models.Deal{ID: "id4", Title: "Gamma", Stage: "archived", Contacts: []string{}, Created: now, Updated: now})

	deals, err := ListDeals(buildDB(t, root), cfg)
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	var got []string
	for _, d := range deals {
		got = append(got, d.ID)
	}
	want := []string{"id3", "id1", "id2", "id4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestContactDeals_MatchesContactList(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	write(t, root, store.Deals, "id1", models.Deal{ID: "id1", Title: "With Ada", Stage: "lead",
		Contacts: []string{"ada12345"}, Value: floatPtr(500), Created: now, Updated: now})
	write(t, root, store.Deals, "id2", models.Deal{ID: "id2", Title: "Without", Stage: "lead",
		Contacts: []string{"bob12345"}, Created: now, Updated: now})

	deals, err := ContactDeals(buildDB(t, root), "ada12345")
	if err != nil {
		t.Fatalf("ContactDeals failed: %v", err)
	}
	if len(deals) != 1 || deals[0].ID != "id1" {
		t.Fatalf("expected [id1], got %v", deals)
	}
	if deals[0].Value == nil || *deals[0].Value != 500 {
		t.Errorf("expected value 500, got %v", deals[0].Value)
	}
}

func TestContactActivities_NewestFirstWithLimit(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	dates := []string{"2026-01-01T00:00:00Z", "2026-03-01T00:00:00Z", "2026-02-01T00:00:00Z"}
	for i, date := range dates {
		id := fmt.Sprintf("act%d2345", i)
		write(t, root, store.Activities, id, models.Activity{ID: id, Type: "call",
			Subject: "check-in", Contact: "ada12345", Date: date, Created: now, Updated: now})
	}

	db := buildDB(t, root)

	activities, err := ContactActivities(db, "ada12345", 2)
	if err != nil {
		t.Fatalf("ContactActivities failed: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(activities))
	}
	if activities[0].Date != "2026-03-01T00:00:00Z" || activities[1].Date != "2026-02-01T00:00:00Z" {
		t.Errorf("expected newest first, got %v", activities)
	}
}

func TestCompanyContactsAndDeals(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	write(t, root, store.Contacts, "id1", models.Contact{ID: "id1", Name: "Ada", Company: "acme1234", Created: now, Updated: now})
	write(t, root, store.Contacts, "id2", models.Contact{ID: "id2", Name: "Bob", Company: "other123", Created: now, Updated: now})
	write(t, root, store.Deals, "id3", models.Deal{ID: "id3", Title: "Big One", Company: "acme1234",
		Stage: "lead", Contacts: []string{}, Created: now, Updated: now})

	db := buildDB(t, root)

	contacts, err := CompanyContacts(db, "acme1234")
	if err != nil {
		t.Fatalf("CompanyContacts failed: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Ada" {
		t.Fatalf("expected [Ada], got %v", contacts)
	}

	deals, err := CompanyDeals(db, "acme1234")
	if err != nil {
		t.Fatalf("CompanyDeals failed: %v", err)
	}
	if len(deals) != 1 || deals[0].Title != "Big One" {
		t.Fatalf("expected [Big One], got %v", deals)
	}
}

func TestListTasks_Ordering(t *testing.T) {
	root := testRoot(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// A finished task due before a pending one still sorts after it.
	write(t, root, store.Tasks, "id1", models.Task{ID: "id1", Title: "done early", Due: "2026-01-05",
		Done: true, Created: base, Updated: base})
	write(t, root, store.Tasks, "id2", models.Task{ID: "id2", Title: "pending late", Due: "2026-02-01",
		Created: base.Add(time.Hour), Updated: base.Add(time.Hour)})
	write(t, root, store.Tasks, "id3", models.Task{ID: "id3", Title: "pending no due",
		Created: base.Add(2 * time.Hour), Updated: base.Add(2 * time.Hour)})
	write(t, root, store.Tasks, "id4", models.Task{ID: "id4", Title: "pending early", Due: "2026-01-10",
		Created: base.Add(3 * time.Hour), Updated: base.Add(3 * time.Hour)})

	tasks, err := ListTasks(buildDB(t, root))
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	var got []string
	for _, task := range tasks {
		got = append(got, task.ID)
	}
	// Pending first; missing due sorts earliest; done last regardless of due.
	want := []string{"id3", "id4", "id2", "id1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestPipeline_Aggregation(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	cfg := models.DefaultConfig()
	write(t, root, store.Deals, "id1", models.Deal{ID: "id1", Title: "A", Stage: "proposal",
		Contacts: []string{}, Value: floatPtr(100), Probability: floatPtr(50), Created: now, Updated: now})
	write(t, root, store.Deals, "id2", models.Deal{ID: "id2", Title: "B", Stage: "proposal",
		Contacts: []string{}, Value: floatPtr(200), Probability: floatPtr(50), Created: now, Updated: now})
	// No value and no probability: contributes to count only.
	write(t, root, store.Deals, "id3", models.Deal{ID: "id3", Title: "C", Stage: "proposal",
		Contacts: []string{}, Created: now, Updated: now})

	summary, err := Pipeline(buildDB(t, root), cfg)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	if summary.Currency != "USD" {
		t.Errorf("expected currency USD, got %q", summary.Currency)
	}
	if len(summary.Stages) != len(cfg.Stages) {
		t.Fatalf("expected %d stages, got %d", len(cfg.Stages), len(summary.Stages))
	}

	var proposal StageSummary
	for _, s := range summary.Stages {
		if s.Stage == "proposal" {
			proposal = s
		} else if s.Count != 0 || s.Total != 0 || s.Weighted != 0 {
			t.Errorf("expected empty stage %q, got %+v", s.Stage, s)
		}
	}
	if proposal.Count != 3 {
		t.Errorf("expected count 3, got %d", proposal.Count)
	}
	if proposal.Total != 300 {
		t.Errorf("expected total 300, got %v", proposal.Total)
	}
	if proposal.Weighted != 150 {
		t.Errorf("expected weighted 150, got %v", proposal.Weighted)
	}
	if summary.TotalDeals != 3 || summary.TotalValue != 300 || summary.TotalWeighted != 150 {
		t.Errorf("unexpected grand totals: %+v", summary)
	}
}

func TestPipeline_IgnoresUnconfiguredStage(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	write(t, root, store.Deals, "id1", models.Deal{ID: "id1", Title: "Old", Stage: "archived",
		Contacts: []string{}, Value: floatPtr(999), Created: now, Updated: now})

	summary, err := Pipeline(buildDB(t, root), models.DefaultConfig())
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	if summary.TotalDeals != 0 || summary.TotalValue != 0 {
		t.Errorf("expected unconfigured stage to be ignored, got %+v", summary)
	}
}

func TestSearchDeals_TitleAndStage(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	write(t, root, store.Deals, "id1", models.Deal{ID: "id1", Title: "Renewal 2027", Stage: "lead",
		Contacts: []string{}, Created: now, Updated: now})
	write(t, root, store.Deals, "id2", models.Deal{ID: "id2", Title: "New logo", Stage: "negotiation",
		Contacts: []string{}, Created: now, Updated: now})

	db := buildDB(t, root)

	byTitle, err := SearchDeals(db, "renewal")
	if err != nil {
		t.Fatalf("SearchDeals failed: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].ID != "id1" {
		t.Fatalf("expected [id1], got %v", byTitle)
	}

	byStage, err := SearchDeals(db, "negoti")
	if err != nil {
		t.Fatalf("SearchDeals failed: %v", err)
	}
	if len(byStage) != 1 || byStage[0].ID != "id2" {
		t.Fatalf("expected [id2], got %v", byStage)
	}
}

func TestListActivities_DateDescending(t *testing.T) {
	root := testRoot(t)
	now := time.Now()
	write(t, root, store.Activities, "id1", models.Activity{ID: "id1", Type: "call", Subject: "first",
		Date: "2026-01-01T00:00:00Z", Created: now, Updated: now})
	write(t, root, store.Activities, "id2", models.Activity{ID: "id2", Type: "email", Subject: "second",
		Body: "longer notes", Date: "2026-06-01T00:00:00Z", Created: now, Updated: now})

	activities, err := ListActivities(buildDB(t, root))
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(activities))
	}
	if activities[0].ID != "id2" || activities[1].ID != "id1" {
		t.Errorf("expected most recent first, got %v", []string{activities[0].ID, activities[1].ID})
	}
	if activities[0].Body != "longer notes" {
		t.Errorf("expected body round trip, got %q", activities[0].Body)
	}
}
