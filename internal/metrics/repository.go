package metrics

import (
	"context"

	"github.com/WiMProject/backend-test/internal/user"
)

type instrumentedRepository struct {
	next user.Repository
	prom *Prom
}

// InstrumentRepository wraps repo so every call is observed under "users.<op>".
func InstrumentRepository(repo user.Repository, prom *Prom) user.Repository {
	return &instrumentedRepository{next: repo, prom: prom}
}

func (r *instrumentedRepository) Create(ctx context.Context, u *user.User) (created *user.User, err error) {
	err = r.prom.ObserveStore("users.create", func() error {
		created, err = r.next.Create(ctx, u)
		return err
	})
	return created, err
}

func (r *instrumentedRepository) GetByID(ctx context.Context, id int64) (found *user.User, err error) {
	err = r.prom.ObserveStore("users.get", func() error {
		found, err = r.next.GetByID(ctx, id)
		return err
	})
	return found, err
}

func (r *instrumentedRepository) List(ctx context.Context) (users []user.User, err error) {
	err = r.prom.ObserveStore("users.list", func() error {
		users, err = r.next.List(ctx)
		return err
	})
	return users, err
}

func (r *instrumentedRepository) Update(ctx context.Context, id int64, patch user.Patch) (updated *user.User, err error) {
	err = r.prom.ObserveStore("users.update", func() error {
		updated, err = r.next.Update(ctx, id, patch)
		return err
	})
	return updated, err
}

func (r *instrumentedRepository) Delete(ctx context.Context, id int64) error {
	return r.prom.ObserveStore("users.delete", func() error {
		return r.next.Delete(ctx, id)
	})
}

func (r *instrumentedRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (taken bool, err error) {
	err = r.prom.ObserveStore("users.email_taken", func() error {
		taken, err = r.next.EmailTaken(ctx, email, exceptID)
		return err
	})
	return taken, err
}
