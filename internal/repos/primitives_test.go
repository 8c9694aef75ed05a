package repos

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openmcp/openmcp-backend/internal/domain"
	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/types"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.Prompt{}, &types.Resource{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newPromptRepo(t *testing.T) PrimitiveRepo[types.Prompt, *types.Prompt] {
	t.Helper()
	return NewPromptRepo(newTestDB(t), mustTestLogger(t))
}

func seedPrompt(t *testing.T, repo PrimitiveRepo[types.Prompt, *types.Prompt], name string, version int, status types.VersionStatus) *types.Prompt {
	t.Helper()
	rec := &types.Prompt{
		Name:      name,
		Version:   version,
		Status:    status,
		Title:     name + " title",
		CreatedAt: time.Now().UTC(),
		CreatedBy: "tester",
	}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("seed %s v%d: %v", name, version, err)
	}
	return rec
}

func TestInsertDuplicateVersionConflicts(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "greet", 1, types.StatusPending)

	dup := &types.Prompt{
		Name:      "greet",
		Version:   1,
		Status:    types.StatusPending,
		CreatedAt: time.Now().UTC(),
		CreatedBy: "tester",
	}
	err := repo.Insert(ctx, dup)
	if !domain.IsCode(err, domain.CodeConflict) {
		t.Fatalf("duplicate (name, version) must conflict, got %v", err)
	}
}

func TestGetActualPrefersLatestApproved(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "greet", 1, types.StatusApproved)
	seedPrompt(t, repo, "greet", 2, types.StatusApproved)
	seedPrompt(t, repo, "greet", 3, types.StatusPending)

	got, err := repo.GetActual(ctx, "greet")
	if err != nil {
		t.Fatalf("GetActual: %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("want approved v2, got v%d (%s)", got.Version, got.Status)
	}
}

func TestGetActualFallsBackToLatestAnyStatus(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "greet", 1, types.StatusPending)
	seedPrompt(t, repo, "greet", 2, types.StatusDeclined)

	got, err := repo.GetActual(ctx, "greet")
	if err != nil {
		t.Fatalf("GetActual: %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("without approvals want latest any-status v2, got v%d", got.Version)
	}
}

func TestGetActualUnknownNameNotFound(t *testing.T) {
	repo := newPromptRepo(t)

	_, err := repo.GetActual(context.Background(), "missing")
	if !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("want not_found, got %v", err)
	}
}

func TestListActualPicksWinnerPerName(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "alpha", 1, types.StatusApproved)
	seedPrompt(t, repo, "alpha", 2, types.StatusPending)
	seedPrompt(t, repo, "beta", 1, types.StatusDeclined)
	seedPrompt(t, repo, "beta", 2, types.StatusPending)

	got, err := repo.ListActual(ctx, "")
	if err != nil {
		t.Fatalf("ListActual: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want one winner per name, got %d rows", len(got))
	}
	if got[0].Name != "alpha" || got[0].Version != 1 {
		t.Fatalf("alpha winner must be approved v1, got %s v%d", got[0].Name, got[0].Version)
	}
	if got[1].Name != "beta" || got[1].Version != 2 {
		t.Fatalf("beta winner must be latest v2, got %s v%d", got[1].Name, got[1].Version)
	}
}

func TestListActualQueryMatchesNameAndTitle(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "greeting", 1, types.StatusApproved)
	seedPrompt(t, repo, "farewell", 1, types.StatusApproved)

	byName, err := repo.ListActual(ctx, "GREET")
	if err != nil {
		t.Fatalf("ListActual: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "greeting" {
		t.Fatalf("query must match name case-insensitively, got %v", byName)
	}

	byTitle, err := repo.ListActual(ctx, "well ti")
	if err != nil {
		t.Fatalf("ListActual: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].Name != "farewell" {
		t.Fatalf("query must match title substrings, got %v", byTitle)
	}
}

func TestListLatestApprovedSkipsUnapprovedFamilies(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "alpha", 1, types.StatusApproved)
	seedPrompt(t, repo, "alpha", 2, types.StatusApproved)
	seedPrompt(t, repo, "beta", 1, types.StatusPending)

	got, err := repo.ListLatestApproved(ctx, "")
	if err != nil {
		t.Fatalf("ListLatestApproved: %v", err)
	}
	if len(got) != 1 || got[0].Name != "alpha" || got[0].Version != 2 {
		t.Fatalf("want only alpha v2, got %v", got)
	}
}

func TestHistoryOrdersNewestFirst(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for v := 1; v <= 3; v++ {
		rec := &types.Prompt{
			Name:      "greet",
			Version:   v,
			Status:    types.StatusPending,
			CreatedAt: base.Add(time.Duration(v) * time.Minute),
			CreatedBy: "tester",
		}
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("insert v%d: %v", v, err)
		}
	}

	got, err := repo.History(ctx, "greet")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 versions, got %d", len(got))
	}
	for i, want := range []int{3, 2, 1} {
		if got[i].Version != want {
			t.Fatalf("history[%d]: want v%d got v%d", i, want, got[i].Version)
		}
	}
}

func TestUpdateStatusStampsApprovalAndClearsOtherwise(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "greet", 1, types.StatusPending)

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.UpdateStatus(ctx, "greet", 1, types.StatusApproved, "admin", now); err != nil {
		t.Fatalf("approve: %v", err)
	}
	rec, err := repo.GetByNameAndVersion(ctx, "greet", 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if rec.Status != types.StatusApproved {
		t.Fatalf("want approved, got %s", rec.Status)
	}
	if rec.UpdatedBy == nil || *rec.UpdatedBy != "admin" {
		t.Fatalf("approval must stamp updated_by, got %v", rec.UpdatedBy)
	}
	if rec.UpdatedAt == nil {
		t.Fatal("approval must stamp updated_at")
	}

	if err := repo.UpdateStatus(ctx, "greet", 1, types.StatusDeclined, "admin", now); err != nil {
		t.Fatalf("decline: %v", err)
	}
	rec, err = repo.GetByNameAndVersion(ctx, "greet", 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if rec.Status != types.StatusDeclined {
		t.Fatalf("want declined, got %s", rec.Status)
	}
	if rec.UpdatedAt != nil || rec.UpdatedBy != nil {
		t.Fatalf("decline must clear the stamp, got %v/%v", rec.UpdatedAt, rec.UpdatedBy)
	}
}

func TestUpdateStatusUnknownVersionNotFound(t *testing.T) {
	repo := newPromptRepo(t)

	err := repo.UpdateStatus(context.Background(), "greet", 99, types.StatusApproved, "admin", time.Now().UTC())
	if !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("want not_found, got %v", err)
	}
}

func TestDeleteOneRemovesSingleVersion(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "greet", 1, types.StatusApproved)
	seedPrompt(t, repo, "greet", 2, types.StatusPending)

	if err := repo.DeleteOne(ctx, "greet", 2); err != nil {
		t.Fatalf("DeleteOne: %v", err)
	}
	if _, err := repo.GetByNameAndVersion(ctx, "greet", 2); !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("v2 must be gone, got %v", err)
	}
	if _, err := repo.GetByNameAndVersion(ctx, "greet", 1); err != nil {
		t.Fatalf("v1 must survive: %v", err)
	}
}

func TestDeleteAllRemovesFamily(t *testing.T) {
	repo := newPromptRepo(t)
	ctx := context.Background()

	seedPrompt(t, repo, "greet", 1, types.StatusApproved)
	seedPrompt(t, repo, "greet", 2, types.StatusPending)
	seedPrompt(t, repo, "other", 1, types.StatusPending)

	if err := repo.DeleteAll(ctx, "greet"); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if _, err := repo.GetLatest(ctx, "greet"); !domain.IsCode(err, domain.CodeNotFound) {
		t.Fatalf("family must be gone, got %v", err)
	}
	if _, err := repo.GetLatest(ctx, "other"); err != nil {
		t.Fatalf("unrelated family must survive: %v", err)
	}
}

func TestResourceRepoSharesTheSameBehavior(t *testing.T) {
	db := newTestDB(t)
	repo := NewResourceRepo(db, mustTestLogger(t))
	ctx := context.Background()

	text := "body"
	rec := &types.Resource{
		Name:      "guidelines",
		Version:   1,
		Status:    types.StatusPending,
		Text:      &text,
		CreatedAt: time.Now().UTC(),
		CreatedBy: "tester",
	}
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.GetActual(ctx, "guidelines")
	if err != nil {
		t.Fatalf("GetActual: %v", err)
	}
	if got.Version != 1 || got.Text == nil || *got.Text != "body" {
		t.Fatalf("unexpected record: %+v", got)
	}

	dup := &types.Resource{Name: "guidelines", Version: 1, Status: types.StatusPending, CreatedAt: time.Now().UTC(), CreatedBy: "tester"}
	if err := repo.Insert(ctx, dup); !domain.IsCode(err, domain.CodeConflict) {
		t.Fatalf("duplicate resource version must conflict, got %v", err)
	}
}
