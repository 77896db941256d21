package storage

import "context"

// TxRunner ejecuta fn dentro de una transacción del backend.
// Los repos toman la tx del ctx; commit si fn devuelve nil, rollback si no.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
