package repository

import "context"

// TxManager выполняет fn в одной транзакции. Репозитории, получившие ctx из fn,
// работают внутри этой транзакции.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
