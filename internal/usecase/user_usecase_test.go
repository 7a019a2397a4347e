package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Run("успешное создание", func(t *testing.T) {
		uc := NewUserUC(&fakeUserRepo{}, testLogger())

		user, err := uc.CreateUser(context.Background(), &CreateUserReq{
			Name: "Anna", Email: "anna@example.com", Role: "manager",
		})

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.False(t, user.IsDeleted)
	})

	t.Run("занятый email отклоняется", func(t *testing.T) {
		repo := (&fakeUserRepo{}).add(domain.User{ID: 1, Email: "anna@example.com"})
		uc := NewUserUC(repo, testLogger())

		_, err := uc.CreateUser(context.Background(), &CreateUserReq{
			Name: "Anna", Email: "anna@example.com", Role: "manager",
		})

		assert.ErrorIs(t, err, e.ErrEmailTaken)
	})

	t.Run("email мягко удалённого пользователя свободен", func(t *testing.T) {
		repo := (&fakeUserRepo{}).add(domain.User{ID: 1, Email: "anna@example.com", IsDeleted: true})
		uc := NewUserUC(repo, testLogger())

		_, err := uc.CreateUser(context.Background(), &CreateUserReq{
			Name: "Anna", Email: "anna@example.com", Role: "manager",
		})

		assert.NoError(t, err)
	})

	t.Run("валидация собирает все нарушения", func(t *testing.T) {
		uc := NewUserUC(&fakeUserRepo{}, testLogger())

		_, err := uc.CreateUser(context.Background(), &CreateUserReq{Email: "bad"})

		require.ErrorIs(t, err, e.ErrValidationFailed)
		var vErr *e.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, vErr.Violations, 3)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("мягкое удаление скрывает пользователя из выборок", func(t *testing.T) {
		repo := (&fakeUserRepo{}).add(domain.User{ID: 1, Name: "Anna", Email: "anna@example.com"})
		uc := NewUserUC(repo, testLogger())

		require.NoError(t, uc.DeleteUser(context.Background(), 1))

		_, err := uc.GetUser(context.Background(), 1)
		assert.ErrorIs(t, err, e.ErrUserNotFound)

		users, err := uc.ListUsers(context.Background())
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("несуществующий пользователь", func(t *testing.T) {
		uc := NewUserUC(&fakeUserRepo{}, testLogger())
		assert.ErrorIs(t, uc.DeleteUser(context.Background(), 42), e.ErrUserNotFound)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("смена email на занятый отклоняется", func(t *testing.T) {
		repo := (&fakeUserRepo{}).
			add(domain.User{ID: 1, Name: "Anna", Email: "anna@example.com"}).
			add(domain.User{ID: 2, Name: "Boris", Email: "boris@example.com"})
		uc := NewUserUC(repo, testLogger())

		taken := "boris@example.com"
		_, err := uc.UpdateUser(context.Background(), 1, &UpdateUserReq{Email: &taken})

		assert.ErrorIs(t, err, e.ErrEmailTaken)
	})

	t.Run("частичное обновление", func(t *testing.T) {
		repo := (&fakeUserRepo{}).add(domain.User{ID: 1, Name: "Anna", Email: "anna@example.com", Role: "viewer"})
		uc := NewUserUC(repo, testLogger())

		role := "admin"
		updated, err := uc.UpdateUser(context.Background(), 1, &UpdateUserReq{Role: &role})

		require.NoError(t, err)
		assert.Equal(t, "admin", updated.Role)
		assert.Equal(t, "anna@example.com", updated.Email)
	})
}
