package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/suby/pkg/apperr"
)

// TxRunner runs a function inside a MongoDB transaction when the deployment
// supports sessions (replica set), or plainly in sequence when it does not.
// The sequential mode preserves write order so a mid-sequence failure leaves
// the same partial state the individual writes would.
type TxRunner struct {
	client  *mongo.Client
	enabled bool
}

func NewTxRunner(client *mongo.Client, enabled bool) *TxRunner {
	return &TxRunner{client: client, enabled: enabled}
}

// WithinTx executes fn. With transactions enabled both writes commit or
// neither does; without, fn runs directly against the base context.
func (t *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return apperr.Dependency("session start failed", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
