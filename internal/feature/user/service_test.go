package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"users-api/internal/domain"
)

type stubStore struct {
	created   []domain.User
	listErr   error
	createErr error
	nilList   bool
}

func (s *stubStore) Create(_ context.Context, u *domain.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	u.ID = "id-1"
	s.created = append(s.created, *u)
	return nil
}

func (s *stubStore) List(context.Context) ([]domain.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.nilList {
		return nil, nil
	}
	return s.created, nil
}

func (s *stubStore) Ping(context.Context) error  { return nil }
func (s *stubStore) Close(context.Context) error { return nil }

func TestService_ListStoreErrorIsServerFault(t *testing.T) {
	svc := NewService(&stubStore{listErr: errors.New("server selection timeout")}, false)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ServerFault, domain.KindOf(err))
	assert.Equal(t, "server selection timeout", err.Error())
}

func TestService_ListNeverNil(t *testing.T) {
	svc := NewService(&stubStore{nilList: true}, false)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Len(t, users, 0)
}

func TestService_CreateStoreErrorIsClientFault(t *testing.T) {
	svc := NewService(&stubStore{createErr: errors.New("document failed validation")}, false)

	_, err := svc.Create(context.Background(), CreateInput{Name: "a", Email: "b"})
	require.Error(t, err)
	assert.Equal(t, domain.ClientFault, domain.KindOf(err))
	assert.Equal(t, "document failed validation", err.Error())
}

func TestService_CreateAcceptsEmptyByDefault(t *testing.T) {
	st := &stubStore{}
	svc := NewService(st, false)

	u, err := svc.Create(context.Background(), CreateInput{})
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)
	assert.Len(t, st.created, 1)
}

func TestService_StrictValidation(t *testing.T) {
	cases := []struct {
		name string
		in   CreateInput
		want string
	}{
		{"missing both", CreateInput{}, "name is required; email is required"},
		{"bad email", CreateInput{Name: "John", Email: "not-an-email"}, "email must be a valid email address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := &stubStore{}
			svc := NewService(st, true)

			_, err := svc.Create(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, domain.ClientFault, domain.KindOf(err))
			assert.Equal(t, tc.want, err.Error())
			assert.Empty(t, st.created)
		})
	}

	svc := NewService(&stubStore{}, true)
	u, err := svc.Create(context.Background(), CreateInput{Name: "John Doe", Email: "john@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", u.Name)
}
