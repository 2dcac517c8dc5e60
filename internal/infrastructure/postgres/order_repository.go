package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/jprint-api/internal/domain"
	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, user_email, line_items, settings, total_amount, status, otp, created_at, updated_at`

// Más recientes primero; seq desempata por orden de inserción.
const orderOrdering = ` ORDER BY created_at DESC, seq DESC`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// La unicidad del OTP entre pedidos activos la impone el índice parcial orders_active_otp_key.
type OrderRepo struct {
	db *Adapter
}

// NewOrderRepository construye el adaptador. Pasar un Adapter sobre pool o tx.
func NewOrderRepository(db *Adapter) *OrderRepo {
	return &OrderRepo{db: db}
}

// lineItemRecord forma JSONB de un ítem en orders.line_items.
type lineItemRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Size       int64           `json:"size"`
	PageCount  int             `json:"pageCount"`
	Price      decimal.Decimal `json:"price"`
	DataVal    string          `json:"dataVal,omitempty"`
	ContentRef string          `json:"contentRef,omitempty"`
}

// settingsRecord forma JSONB de orders.settings.
type settingsRecord struct {
	Color       bool `json:"color"`
	DoubleSided bool `json:"doubleSided"`
	Copies      int  `json:"copies"`
}

// Create inserta el pedido con su OTP. Si el OTP ya está tomado por un pedido activo devuelve ErrOTPInUse.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	items := make([]lineItemRecord, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, lineItemRecord{
			ID: it.ID, Name: it.Name, Type: it.Kind, Size: it.Size, PageCount: it.PageCount,
			Price: it.Price, DataVal: it.Content, ContentRef: it.ContentRef,
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	settingsJSON, err := json.Marshal(settingsRecord{
		Color: o.Settings.Color, DoubleSided: o.Settings.DoubleSided, Copies: o.Settings.Copies,
	})
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, nullIfEmpty(o.UserID), o.UserEmail, itemsJSON, settingsJSON, o.TotalAmount,
		string(o.Status), o.OTP, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == constraintActiveOTP {
			return domain.ErrOTPInUse
		}
		if isNumericOutOfRange(err) {
			return fmt.Errorf("%w: total_amount fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido. (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
}

// ListAll todos los pedidos, más recientes primero.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders`+orderOrdering)
}

// ListByUser pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ?`+orderOrdering, userID)
}

// FindActiveByOTP pedido no retirado con ese código. (nil, nil) si no hay.
func (r *OrderRepo) FindActiveByOTP(ctx context.Context, code string) (*entity.Order, error) {
	return r.findOne(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE otp = ? AND status <> 'collected'`+orderOrdering+` LIMIT 1`, code)
}

// UpdateStatus compare-and-set: solo actualiza si el pedido sigue en from. Devuelve false si otro escritor ganó.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	n, err := r.db.Exec(ctx, `
		UPDATE orders SET status = ?, updated_at = NOW()
		WHERE id = ? AND status = ?`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return n == 1, nil
}

func (r *OrderRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", classify(err))
	}
	return list, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o            entity.Order
		userID       *string
		status       string
		itemsJSON    []byte
		settingsJSON []byte
	)
	if err := row.Scan(&o.ID, &userID, &o.UserEmail, &itemsJSON, &settingsJSON, &o.TotalAmount,
		&status, &o.OTP, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if userID != nil {
		o.UserID = *userID
	}
	o.Status = entity.OrderStatus(status)

	var items []lineItemRecord
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}
	o.Items = make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		o.Items = append(o.Items, entity.LineItem{
			ID: it.ID, Name: it.Name, Kind: it.Type, Size: it.Size, PageCount: it.PageCount,
			Price: it.Price, Content: it.DataVal, ContentRef: it.ContentRef,
		})
	}
	var s settingsRecord
	if err := json.Unmarshal(settingsJSON, &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	o.Settings = entity.PrintSettings{Color: s.Color, DoubleSided: s.DoubleSided, Copies: s.Copies}
	return &o, nil
}
