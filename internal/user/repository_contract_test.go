package user_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WiMProject/backend-test/internal/user"
)

// runRepositoryContract checks the behaviour every Repository implementation
// shares. newRepo must return an empty repository.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) user.Repository) {
	ctx := context.Background()
	approxTime := cmpopts.EquateApproxTime(time.Millisecond)

	newUser := func(email string) *user.User {
		return &user.User{
			Name:         "Contract User",
			Email:        email,
			Phone:        "081234567890",
			IsActive:     true,
			Department:   "QA",
			PasswordHash: "$2a$04$hash",
		}
	}

	t.Run("CreateAndGetByID", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, newUser("create@example.com"))
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Equal(t, "$2a$04$hash", created.PasswordHash)

		found, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)

		diff := cmp.Diff(*created, *found, approxTime)
		require.Empty(t, diff)
	})

	t.Run("CreateDuplicateEmail", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Create(ctx, newUser("dup@example.com"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newUser("dup@example.com"))
		require.ErrorIs(t, err, user.ErrEmailExists)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		repo := newRepo(t)

		found, err := repo.GetByID(ctx, 999999)
		require.Nil(t, found)
		require.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("ListAscendingByID", func(t *testing.T) {
		repo := newRepo(t)

		empty, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotNil(t, empty)
		require.Len(t, empty, 0)

		var ids []int64
		for i := 0; i < 3; i++ {
			created, err := repo.Create(ctx, newUser(fmt.Sprintf("list%d@example.com", i)))
			require.NoError(t, err)
			ids = append(ids, created.ID)
		}

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		for i, u := range users {
			assert.Equal(t, ids[i], u.ID)
		}
	})

	t.Run("UpdatePartial", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, newUser("partial@example.com"))
		require.NoError(t, err)

		name := "Renamed"
		inactive := false
		updated, err := repo.Update(ctx, created.ID, user.Patch{Name: &name, IsActive: &inactive})
		require.NoError(t, err)

		want := *created
		want.Name = "Renamed"
		want.IsActive = false
		want.UpdatedAt = updated.UpdatedAt

		diff := cmp.Diff(want, *updated, approxTime)
		require.Empty(t, diff)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt.Add(-time.Millisecond)))
	})

	t.Run("UpdateEmptyPatchIsNoop", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, newUser("noop@example.com"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, user.Patch{})
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(*created, *updated, approxTime))

		_, err = repo.Update(ctx, 999999, user.Patch{})
		require.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		repo := newRepo(t)

		name := "Ghost"
		_, err := repo.Update(ctx, 999999, user.Patch{Name: &name})
		require.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("UpdateEmailConflict", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Create(ctx, newUser("first@example.com"))
		require.NoError(t, err)
		second, err := repo.Create(ctx, newUser("second@example.com"))
		require.NoError(t, err)

		email := "first@example.com"
		_, err = repo.Update(ctx, second.ID, user.Patch{Email: &email})
		require.ErrorIs(t, err, user.ErrEmailExists)

		unchanged, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "second@example.com", unchanged.Email)
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, newUser("delete@example.com"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, user.ErrNotFound)

		require.ErrorIs(t, repo.Delete(ctx, created.ID), user.ErrNotFound)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 0)
	})

	t.Run("DeletedEmailCanBeReused", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, newUser("reuse@example.com"))
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.Create(ctx, newUser("reuse@example.com"))
		require.NoError(t, err)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, newUser("taken@example.com"))
		require.NoError(t, err)

		taken, err := repo.EmailTaken(ctx, "taken@example.com", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.EmailTaken(ctx, "taken@example.com", created.ID)
		require.NoError(t, err)
		assert.False(t, taken)

		taken, err = repo.EmailTaken(ctx, "free@example.com", 0)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("ConcurrentCreateSameEmail", func(t *testing.T) {
		repo := newRepo(t)

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			conflicts int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Create(ctx, newUser("race@example.com"))

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case assert.ErrorIs(t, err, user.ErrEmailExists):
					conflicts++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, workers-1, conflicts)
	})
}
