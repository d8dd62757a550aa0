package database

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX é o subconjunto comum de *sql.DB e *sql.Tx usado pelos repositórios.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// txState é o que viaja no contexto: a transação aberta e os callbacks pós-commit.
type txState struct {
	tx          *sql.Tx
	afterCommit []func()
}

// TxManager abre transações e as propaga pelo context.Context.
type TxManager struct {
	DB *sql.DB
}

// NewTxManager cria um novo TxManager sobre o pool informado.
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{DB: db}
}

// WithinTransaction executa fn dentro de uma transação. Se o contexto já carrega
// uma transação, fn participa dela. Commit quando fn retorna nil, rollback caso contrário
// (inclusive em panic). Os callbacks de AfterCommit rodam só depois de um commit bem-sucedido.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao iniciar transação: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	state := &txState{tx: tx}
	if err = fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("falha ao confirmar transação: %w", err)
	}

	for _, hook := range state.afterCommit {
		hook()
	}
	return nil
}

// AfterCommit agenda fn para depois do commit da transação do contexto.
// Fora de uma transação fn roda imediatamente; em rollback nunca roda.
func AfterCommit(ctx context.Context, fn func()) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		state.afterCommit = append(state.afterCommit, fn)
		return
	}
	fn()
}

// InTransaction informa se o contexto carrega uma transação aberta.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*txState)
	return ok
}

// Executor retorna a transação do contexto ou, na ausência dela, o pool.
func Executor(ctx context.Context, db *sql.DB) DBTX {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state.tx
	}
	return db
}
