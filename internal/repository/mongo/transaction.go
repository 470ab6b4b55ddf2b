package mongo

import (
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs multi-document transactions. MongoDB transactions need a
// replica set or sharded cluster.
type Transactor struct {
	client *mongo.Client
}

// NewTransactor creates a Transactor bound to the database's client.
func NewTransactor(db *mongo.Database) *Transactor {
	return &Transactor{client: db.Client()}
}

// WithTransaction runs fn exactly once inside a transaction. Unlike
// mongo.Session.WithTransaction it never re-invokes fn on transient errors:
// write conflicts are reported as repository.ErrConflict.
func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session failed: %w", err)
	}
	defer session.EndSession(context.Background())

	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return fmt.Errorf("start transaction failed: %w", err)
		}
		if err := fn(sc); err != nil {
			_ = session.AbortTransaction(context.Background())
			return mapWriteError(err)
		}
		if err := session.CommitTransaction(sc); err != nil {
			_ = session.AbortTransaction(context.Background())
			return mapWriteError(err)
		}
		return nil
	})
}

// mapWriteError converts duplicate keys and transaction write conflicts into
// repository.ErrConflict.
func mapWriteError(err error) error {
	if err == nil || errors.Is(err, repository.ErrConflict) {
		return err
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrConflict
	}
	var se mongo.ServerError
	if errors.As(err, &se) && (se.HasErrorLabel("TransientTransactionError") || se.HasErrorCode(112)) {
		return repository.ErrConflict
	}
	return err
}
