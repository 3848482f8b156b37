package repositories

import "context"

// TxFn is a function executed within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager executes a function within a single store
// transaction. Repositories called with the resulting context join the
// transaction through GetTx.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
