package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedulebot/internal/domain"
)

// fakeRoleStore is an in-memory RoleStore for tests.
type fakeRoleStore struct {
	roles   domain.RoleList
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeRoleStore) Load(ctx context.Context) (*domain.RoleList, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	cp := domain.RoleList{
		Admins:  append([]int64{}, f.roles.Admins...),
		Members: append([]int64{}, f.roles.Members...),
	}
	return &cp, nil
}

func (f *fakeRoleStore) Save(ctx context.Context, roles *domain.RoleList) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.roles = *roles
	f.saves++
	return nil
}

const ownerID = int64(100)

func TestRoleGate_RoleOf(t *testing.T) {
	store := &fakeRoleStore{roles: domain.RoleList{
		Admins:  []int64{200},
		Members: []int64{300},
	}}
	gate := NewRoleGate(store, ownerID, discardLogger())
	ctx := context.Background()

	tests := []struct {
		name   string
		userID int64
		want   domain.RoleCode
	}{
		{name: "owner", userID: 100, want: domain.RoleOwner},
		{name: "admin", userID: 200, want: domain.RoleAdmin},
		{name: "member", userID: 300, want: domain.RoleMember},
		{name: "unknown user is guest", userID: 400, want: domain.RoleGuest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.RoleOf(ctx, tt.userID))
		})
	}
}

func TestRoleGate_RoleOfStoreFailure(t *testing.T) {
	store := &fakeRoleStore{loadErr: errors.New("disk gone")}
	gate := NewRoleGate(store, ownerID, discardLogger())

	// The owner needs no store read; everyone else degrades to guest.
	assert.Equal(t, domain.RoleOwner, gate.RoleOf(context.Background(), ownerID))
	assert.Equal(t, domain.RoleGuest, gate.RoleOf(context.Background(), 200))
}

func TestRoleGate_AddAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("owner may add", func(t *testing.T) {
		store := &fakeRoleStore{}
		gate := NewRoleGate(store, ownerID, discardLogger())

		require.NoError(t, gate.AddAdmin(ctx, ownerID, 200))
		assert.Equal(t, []int64{200}, store.roles.Admins)
		assert.Equal(t, domain.RoleAdmin, gate.RoleOf(ctx, 200))
	})

	t.Run("adding twice is a no-op", func(t *testing.T) {
		store := &fakeRoleStore{}
		gate := NewRoleGate(store, ownerID, discardLogger())

		require.NoError(t, gate.AddAdmin(ctx, ownerID, 200))
		require.NoError(t, gate.AddAdmin(ctx, ownerID, 200))
		assert.Equal(t, []int64{200}, store.roles.Admins)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("admin may not add admins", func(t *testing.T) {
		store := &fakeRoleStore{roles: domain.RoleList{Admins: []int64{200}}}
		gate := NewRoleGate(store, ownerID, discardLogger())

		err := gate.AddAdmin(ctx, 200, 300)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		assert.Empty(t, store.roles.Members)
	})
}

func TestRoleGate_AddMember(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actorID int64
		wantErr error
	}{
		{name: "owner may add", actorID: ownerID},
		{name: "admin may add", actorID: 200},
		{name: "member may not add", actorID: 300, wantErr: domain.ErrAccessDenied},
		{name: "guest may not add", actorID: 999, wantErr: domain.ErrAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeRoleStore{roles: domain.RoleList{
				Admins:  []int64{200},
				Members: []int64{300},
			}}
			gate := NewRoleGate(store, ownerID, discardLogger())

			err := gate.AddMember(ctx, tt.actorID, 500)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotContains(t, store.roles.Members, int64(500))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, store.roles.Members, int64(500))
		})
	}
}

func TestRoleGate_AddMemberSaveFailure(t *testing.T) {
	store := &fakeRoleStore{saveErr: errors.New("read-only filesystem")}
	gate := NewRoleGate(store, ownerID, discardLogger())

	err := gate.AddMember(context.Background(), ownerID, 500)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAccessDenied)
}
