package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/model"
)

type fakeTutorStore struct {
	tutors []*model.Tutor
	nextID int64
}

func (f *fakeTutorStore) Create(_ context.Context, tutor *model.Tutor) error {
	f.nextID++
	tutor.ID = f.nextID
	f.tutors = append(f.tutors, tutor)
	return nil
}

func (f *fakeTutorStore) GetByAuthID(_ context.Context, authID string) (*model.Tutor, error) {
	for _, tutor := range f.tutors {
		if tutor.AuthID == authID {
			return tutor, nil
		}
	}
	return nil, nil
}

func (f *fakeTutorStore) SetActivated(_ context.Context, id int64, activated bool) error {
	for _, tutor := range f.tutors {
		if tutor.ID == id {
			tutor.IsActivated = activated
			return nil
		}
	}
	return nil
}

func TestResolve(t *testing.T) {
	store := &fakeTutorStore{
		tutors: []*model.Tutor{{ID: 1, AuthID: "auth-1", Name: "Olga"}},
	}
	svc := NewTutorService(store, &fakeIdentity{}, zap.NewNop())

	tutor, err := svc.Resolve(context.Background(), "auth-1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if tutor.Name != "Olga" {
		t.Errorf("resolved tutor = %s, want Olga", tutor.Name)
	}

	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("empty auth id: error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Resolve(context.Background(), "auth-unknown"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown auth id: error = %v, want ErrNotFound", err)
	}
}

func TestActivateCreatesAccountFromProfile(t *testing.T) {
	store := &fakeTutorStore{}
	identity := &fakeIdentity{profiles: map[string]*Identity{
		"auth-2": {Name: "Pavel", Email: "pavel@example.com", Image: "https://img.example.com/p.png"},
	}}
	svc := NewTutorService(store, identity, zap.NewNop())

	tutor, err := svc.Activate(context.Background(), "auth-2")
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	if tutor.Name != "Pavel" || tutor.Email != "pavel@example.com" {
		t.Errorf("tutor profile = (%s, %s), want Pavel / pavel@example.com", tutor.Name, tutor.Email)
	}
	if !tutor.IsActivated {
		t.Error("new tutor is not activated")
	}
	if tutor.Color != defaultTutorColor {
		t.Errorf("tutor color = %s, want %s", tutor.Color, defaultTutorColor)
	}
	if tutor.Phone != "Unknown" || tutor.Bio != "Unknown" {
		t.Errorf("placeholder fields = (%s, %s), want Unknown / Unknown", tutor.Phone, tutor.Bio)
	}
}

func TestActivateExistingAccountIsIdempotent(t *testing.T) {
	store := &fakeTutorStore{
		tutors: []*model.Tutor{{ID: 1, AuthID: "auth-3", Name: "Inna", IsActivated: false}},
	}
	identity := &fakeIdentity{profiles: map[string]*Identity{
		"auth-3": {Name: "Inna Renamed", Email: "inna@example.com"},
	}}
	svc := NewTutorService(store, identity, zap.NewNop())

	tutor, err := svc.Activate(context.Background(), "auth-3")
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if !tutor.IsActivated {
		t.Error("existing tutor was not activated")
	}
	if tutor.Name != "Inna" {
		t.Errorf("existing profile was overwritten: name = %s, want Inna", tutor.Name)
	}
	if len(store.tutors) != 1 {
		t.Errorf("store has %d tutors, want 1", len(store.tutors))
	}

	again, err := svc.Activate(context.Background(), "auth-3")
	if err != nil {
		t.Fatalf("second Activate() error = %v", err)
	}
	if again.ID != tutor.ID {
		t.Errorf("second activation returned tutor %d, want %d", again.ID, tutor.ID)
	}
}

func TestActivateUnknownIdentity(t *testing.T) {
	svc := NewTutorService(&fakeTutorStore{}, &fakeIdentity{profiles: map[string]*Identity{}}, zap.NewNop())

	if _, err := svc.Activate(context.Background(), "auth-nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown identity: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Activate(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("empty auth id: error = %v, want ErrUnauthorized", err)
	}
}
