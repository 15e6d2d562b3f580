package candidacystore_test

import (
	"errors"
	"testing"

	candidacystore "github.com/dalemusser/placementhub/internal/app/store/candidacies"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/placementhub/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cand(id string, applicant primitive.ObjectID, posting uuid.UUID, status models.CandidacyStatus) models.Candidacy {
	return models.Candidacy{
		ID:          id,
		ApplicantID: applicant,
		PostingID:   posting,
		Status:      status,
		Withdrawn:   status == models.CandidacyWithdrawn,
	}
}

func TestStore_CreateRequiresID(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := candidacystore.New()

	_, err := s.Create(ctx, cand("", primitive.NewObjectID(), uuid.New(), models.CandidacyPending))
	if !errors.Is(err, candidacystore.ErrMissingID) {
		t.Errorf("err = %v, want ErrMissingID", err)
	}
}

func TestStore_CreateDuplicate(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := candidacystore.New()

	c := cand("APP-20261019-0001", primitive.NewObjectID(), uuid.New(), models.CandidacyPending)
	if _, err := s.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, c); !errors.Is(err, candidacystore.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
}

func TestStore_UpdateKeepsReferences(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := candidacystore.New()

	applicant := primitive.NewObjectID()
	posting := uuid.New()
	c, _ := s.Create(ctx, cand("APP-1", applicant, posting, models.CandidacyPending))

	c.Status = models.CandidacySuccessful
	c.ApplicantID = primitive.NewObjectID()
	c.PostingID = uuid.New()
	got, err := s.Update(ctx, c)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ApplicantID != applicant || got.PostingID != posting {
		t.Error("Update changed immutable references")
	}
	if got.Status != models.CandidacySuccessful {
		t.Errorf("Status = %s", got.Status)
	}
}

func TestStore_UpdateManyAllOrNothing(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := candidacystore.New()

	applicant := primitive.NewObjectID()
	a, _ := s.Create(ctx, cand("APP-1", applicant, uuid.New(), models.CandidacyPending))
	b, _ := s.Create(ctx, cand("APP-2", applicant, uuid.New(), models.CandidacyPending))

	a.Status = models.CandidacyWithdrawn
	missing := cand("APP-404", applicant, uuid.New(), models.CandidacyWithdrawn)
	if err := s.UpdateMany(ctx, []models.Candidacy{a, missing}); !errors.Is(err, candidacystore.ErrNotFound) {
		t.Fatalf("UpdateMany err = %v, want ErrNotFound", err)
	}
	got, _ := s.GetByID(ctx, "APP-1")
	if got.Status != models.CandidacyPending {
		t.Errorf("partial write: APP-1 status = %s", got.Status)
	}

	b.Status = models.CandidacyWithdrawn
	if err := s.UpdateMany(ctx, []models.Candidacy{a, b}); err != nil {
		t.Fatalf("UpdateMany: %v", err)
	}
	for _, id := range []string{"APP-1", "APP-2"} {
		got, _ := s.GetByID(ctx, id)
		if got.Status != models.CandidacyWithdrawn {
			t.Errorf("%s status = %s, want WITHDRAWN", id, got.Status)
		}
	}
}

func TestStore_Counts(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := candidacystore.New()

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	posting := uuid.New()
	other := uuid.New()

	rows := []models.Candidacy{
		cand("APP-1", alice, posting, models.CandidacySuccessful),
		cand("APP-2", alice, other, models.CandidacyPending),
		cand("APP-3", bob, posting, models.CandidacySuccessful),
		cand("APP-4", bob, posting, models.CandidacyWithdrawn),
		cand("APP-5", bob, other, models.CandidacyUnsuccessful),
	}
	for _, c := range rows {
		if _, err := s.Create(ctx, c); err != nil {
			t.Fatalf("Create %s: %v", c.ID, err)
		}
	}

	tests := []struct {
		name string
		fn   func() (int64, error)
		want int64
	}{
		{"filling", func() (int64, error) { return s.CountFilling(ctx, posting) }, 2},
		{"by posting", func() (int64, error) { return s.CountByPosting(ctx, posting) }, 3},
		{"active alice", func() (int64, error) { return s.CountActiveByApplicant(ctx, alice) }, 2},
		{"active bob", func() (int64, error) { return s.CountActiveByApplicant(ctx, bob) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStore_HasSuccessful(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := candidacystore.New()

	alice := primitive.NewObjectID()
	s.Create(ctx, cand("APP-1", alice, uuid.New(), models.CandidacySuccessful))
	s.Create(ctx, cand("APP-2", alice, uuid.New(), models.CandidacyPending))

	if ok, _ := s.HasSuccessful(ctx, alice, ""); !ok {
		t.Error("HasSuccessful(all) = false, want true")
	}
	if ok, _ := s.HasSuccessful(ctx, alice, "APP-1"); ok {
		t.Error("HasSuccessful(except APP-1) = true, want false")
	}
}

func TestStore_ListPendingWithdrawals(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := candidacystore.New()

	alice := primitive.NewObjectID()
	a := cand("APP-1", alice, uuid.New(), models.CandidacySuccessful)
	a.WithdrawalRequested = true
	b := cand("APP-2", alice, uuid.New(), models.CandidacyPending)
	c := cand("APP-3", alice, uuid.New(), models.CandidacyWithdrawn)
	c.WithdrawalRequested = true
	for _, x := range []models.Candidacy{a, b, c} {
		s.Create(ctx, x)
	}

	got, err := s.ListPendingWithdrawals(ctx)
	if err != nil {
		t.Fatalf("ListPendingWithdrawals: %v", err)
	}
	if len(got) != 1 || got[0].ID != "APP-1" {
		t.Errorf("got %+v, want only APP-1", got)
	}
}

func TestStore_ListByApplicantOrder(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := candidacystore.New()

	alice := primitive.NewObjectID()
	ids := []string{"APP-3", "APP-1", "APP-2"}
	for _, id := range ids {
		s.Create(ctx, cand(id, alice, uuid.New(), models.CandidacyPending))
	}
	s.Create(ctx, cand("APP-9", primitive.NewObjectID(), uuid.New(), models.CandidacyPending))

	got, _ := s.ListByApplicant(ctx, alice)
	if len(got) != len(ids) {
		t.Fatalf("len = %d, want %d", len(got), len(ids))
	}
	for i, c := range got {
		if c.ID != ids[i] {
			t.Errorf("got[%d] = %s, want %s (submission order)", i, c.ID, ids[i])
		}
	}
}
