package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/jprint-api/internal/domain"
)

// Querier interfaz común de *pgxpool.Pool y pgx.Tx. Los repositorios reciben uno u otro.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Result resultado uniforme de Execute: filas como mapas columna → valor y filas afectadas.
type Result struct {
	Rows     []map[string]any
	RowCount int64
}

// Adapter capa de persistencia sobre pgx. Acepta SQL con placeholders "?" y los traduce a $n;
// clasifica los fallos de conexión como domain.ErrStoreUnavailable.
type Adapter struct {
	q Querier
}

// NewAdapter construye el adaptador sobre un pool o una tx.
func NewAdapter(q Querier) *Adapter {
	return &Adapter{q: q}
}

// Execute ejecuta cualquier sentencia y devuelve sus filas (vacío si no devuelve ninguna) y el conteo
// informado por el servidor (filas leídas en SELECT, afectadas en INSERT/UPDATE/DELETE).
func (a *Adapter) Execute(ctx context.Context, query string, params ...any) (Result, error) {
	rows, err := a.q.Query(ctx, Rebind(query), params...)
	if err != nil {
		return Result{}, classify(err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return Result{}, classify(err)
	}
	return Result{Rows: maps, RowCount: rows.CommandTag().RowsAffected()}, nil
}

// Exec ejecuta una sentencia sin filas de retorno.
func (a *Adapter) Exec(ctx context.Context, query string, params ...any) (int64, error) {
	tag, err := a.q.Exec(ctx, Rebind(query), params...)
	if err != nil {
		return 0, classify(err)
	}
	return tag.RowsAffected(), nil
}

// Query ejecuta una consulta y devuelve las filas para escaneo tipado.
func (a *Adapter) Query(ctx context.Context, query string, params ...any) (pgx.Rows, error) {
	rows, err := a.q.Query(ctx, Rebind(query), params...)
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

// QueryRow como Query pero para una sola fila. pgx.ErrNoRows se conserva tal cual.
func (a *Adapter) QueryRow(ctx context.Context, query string, params ...any) pgx.Row {
	return row{a.q.QueryRow(ctx, Rebind(query), params...)}
}

type row struct {
	pgx.Row
}

func (r row) Scan(dest ...any) error {
	return classify(r.Row.Scan(dest...))
}

// Rebind traduce los placeholders "?" a $1..$n. Ignora los "?" dentro de literales,
// identificadores entre comillas y comentarios de línea.
func Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote byte
	comment := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case comment:
			if c == '\n' {
				comment = false
			}
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			comment = true
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// classify marca como ErrStoreUnavailable los errores de transporte; el resto se devuelve sin cambios
// para que los repositorios puedan inspeccionar el PgError.
func classify(err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	if strings.Contains(err.Error(), "closed pool") || strings.Contains(err.Error(), "conn closed") {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Clase 08: connection exception; 57P01..57P03: servidor apagándose.
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}
	return pgconn.SafeToRetry(err)
}
