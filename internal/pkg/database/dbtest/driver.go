// Package dbtest fornece um driver database/sql em memória que apenas registra
// os eventos (begin, exec, query, commit, rollback), para testes de ordenação.
package dbtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"sync"
)

// Recorder acumula eventos em ordem; é seguro para uso concorrente.
type Recorder struct {
	mu      sync.Mutex
	events  []string
	execErr error
}

// FailExec faz os próximos Exec retornarem err.
func (r *Recorder) FailExec(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.execErr = err
}

// Add registra um evento.
func (r *Recorder) Add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events retorna uma cópia dos eventos registrados.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.events...)
}

// Open cria um *sql.DB sobre o driver de gravação.
// Exec sempre afeta uma linha; Query sempre devolve zero linhas.
func Open(rec *Recorder) *sql.DB {
	return sql.OpenDB(&connector{rec: rec})
}

type connector struct {
	rec *Recorder
}

func (c *connector) Connect(context.Context) (driver.Conn, error) { return &conn{rec: c.rec}, nil }
func (c *connector) Driver() driver.Driver                        { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return nil, driver.ErrSkip }

type conn struct {
	rec *Recorder
}

func (c *conn) Prepare(query string) (driver.Stmt, error) { return &stmt{rec: c.rec}, nil }
func (c *conn) Close() error                              { return nil }

func (c *conn) Begin() (driver.Tx, error) {
	c.rec.Add("begin")
	return &tx{rec: c.rec}, nil
}

type tx struct {
	rec *Recorder
}

func (t *tx) Commit() error {
	t.rec.Add("commit")
	return nil
}

func (t *tx) Rollback() error {
	t.rec.Add("rollback")
	return nil
}

type stmt struct {
	rec *Recorder
}

func (s *stmt) Close() error  { return nil }
func (s *stmt) NumInput() int { return -1 }

func (s *stmt) Exec([]driver.Value) (driver.Result, error) {
	s.rec.Add("exec")
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	if s.rec.execErr != nil {
		return nil, s.rec.execErr
	}
	return driver.RowsAffected(1), nil
}

func (s *stmt) Query([]driver.Value) (driver.Rows, error) {
	s.rec.Add("query")
	return emptyRows{}, nil
}

type emptyRows struct{}

func (emptyRows) Columns() []string         { return nil }
func (emptyRows) Close() error              { return nil }
func (emptyRows) Next([]driver.Value) error { return io.EOF }
