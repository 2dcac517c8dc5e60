package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/jprint-api/internal/application/dto"
	"github.com/jhoicas/jprint-api/internal/domain"
	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/otp"
	"github.com/jhoicas/jprint-api/internal/domain/printing"
	"github.com/jhoicas/jprint-api/internal/domain/repository"
	"github.com/jhoicas/jprint-api/pkg/logger"
)

// Options colaboradores opcionales del caso de uso. Los nil se reemplazan por no-ops.
type Options struct {
	Cache    ListCache
	Payloads PayloadStore // nil = el contenido queda en línea
	Metrics  Metrics
	Logger   *logger.Logger
}

// OrderUseCase ciclo de vida de pedidos: creación con OTP, listados, transiciones y verificación de retiro.
type OrderUseCase struct {
	orders   repository.OrderRepository
	codes    CodeGenerator
	cache    ListCache
	payloads PayloadStore
	metrics  Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, codes CodeGenerator, opts Options) *OrderUseCase {
	uc := &OrderUseCase{
		orders:   orders,
		codes:    codes,
		cache:    opts.Cache,
		payloads: opts.Payloads,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		now:      time.Now,
	}
	if uc.cache == nil {
		uc.cache = nopCache{}
	}
	if uc.metrics == nil {
		uc.metrics = nopMetrics{}
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// CreateOrder valida, calcula el total en servidor, asigna un OTP único entre pedidos activos y persiste en estado paid.
// El OTP lo garantiza el store (índice único parcial o sección crítica); aquí solo se reintenta con un código nuevo.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	email := entity.NormalizeEmail(in.UserEmail)
	if in.UserID == "" && email == "" {
		return nil, fmt.Errorf("%w: se requiere un usuario o un email de contacto", domain.ErrInvalidInput)
	}
	if len(in.Files) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene archivos", domain.ErrInvalidInput)
	}
	if in.Settings.Copies < 1 || in.Settings.Copies > printing.MaxCopies {
		return nil, fmt.Errorf("%w: copies debe estar entre 1 y %d", domain.ErrInvalidInput, printing.MaxCopies)
	}

	items := make([]entity.LineItem, 0, len(in.Files))
	for i, f := range in.Files {
		if f.PageCount < 0 || f.Size < 0 || f.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el ítem %d tiene valores negativos", domain.ErrInvalidInput, i+1)
		}
		if f.PageCount > printing.MaxPages {
			return nil, fmt.Errorf("%w: el ítem %d supera %d páginas", domain.ErrInvalidInput, i+1, printing.MaxPages)
		}
		// El id del cliente se conserva solo si es un segmento seguro; se usa como clave en S3.
		id := f.ID
		if id == "" {
			id = uuid.NewString()
		} else if !entity.ValidItemID(id) {
			return nil, fmt.Errorf("%w: id de ítem inválido %q", domain.ErrInvalidInput, id)
		}
		items = append(items, entity.LineItem{
			ID:        id,
			Name:      strings.TrimSpace(f.Name),
			Kind:      f.Type,
			Size:      f.Size,
			PageCount: f.PageCount,
			Price:     f.Price,
			Content:   f.DataVal,
		})
	}
	settings := entity.PrintSettings{
		Color:       in.Settings.Color,
		DoubleSided: in.Settings.DoubleSided,
		Copies:      in.Settings.Copies,
	}

	total := printing.CalculateTotal(items, settings)
	if total.GreaterThan(printing.MaxTotal) {
		return nil, fmt.Errorf("%w: el total %s supera el máximo permitido", domain.ErrInvalidInput, total)
	}
	if in.TotalAmount != nil && !in.TotalAmount.Equal(total) {
		uc.log.Warn().
			Str("cliente", in.TotalAmount.String()).
			Str("servidor", total.String()).
			Msg("total enviado por el cliente ignorado")
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generar id de pedido: %w", err)
	}
	now := uc.now().UTC()
	order := &entity.Order{
		ID:          orderID.String(),
		UserID:      in.UserID,
		UserEmail:   email,
		Items:       items,
		Settings:    settings,
		TotalAmount: total,
		Status:      entity.OrderStatusPaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.offloadPayloads(ctx, order); err != nil {
		return nil, err
	}
	if err := uc.insertWithUniqueOTP(ctx, order); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, cacheKeyAll, cacheKeyUser(order.UserID))
	uc.metrics.OrderCreated()
	uc.log.Info().Str("order_id", order.ID).Str("total", total.String()).Msg("pedido creado")
	return toOrderResponse(order), nil
}

func (uc *OrderUseCase) insertWithUniqueOTP(ctx context.Context, order *entity.Order) error {
	for attempt := 1; attempt <= otp.MaxAttempts; attempt++ {
		order.OTP = uc.codes.Next()
		err := uc.orders.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrOTPInUse) {
			return err
		}
		uc.metrics.OTPCollision()
		uc.log.Debug().Str("order_id", order.ID).Int("intento", attempt).Msg("OTP en uso, reintentando")
	}
	order.OTP = ""
	uc.metrics.OTPExhausted()
	return domain.ErrOTPExhausted
}

func (uc *OrderUseCase) offloadPayloads(ctx context.Context, order *entity.Order) error {
	if uc.payloads == nil {
		return nil
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.Content == "" {
			continue
		}
		ref, err := uc.payloads.Put(ctx, order.ID, *item)
		if err != nil {
			return fmt.Errorf("%w: almacenar archivo %q: %v", domain.ErrStoreUnavailable, item.Name, err)
		}
		item.ContentRef = ref
		item.Content = ""
	}
	return nil
}

// ListOrders vendedor: todos los pedidos; estudiante: solo los propios. Más recientes primero.
func (uc *OrderUseCase) ListOrders(ctx context.Context, req dto.Requester) ([]*dto.OrderResponse, error) {
	var key string
	switch req.Role {
	case entity.RoleVendor:
		key = cacheKeyAll
	case entity.RoleStudent:
		if req.UserID == "" {
			return []*dto.OrderResponse{}, nil
		}
		key = cacheKeyUser(req.UserID)
	default:
		return nil, domain.ErrForbidden
	}

	orders, hit := uc.cache.Get(ctx, key)
	if !hit {
		var err error
		if key == cacheKeyAll {
			orders, err = uc.orders.ListAll(ctx)
		} else {
			orders, err = uc.orders.ListByUser(ctx, req.UserID)
		}
		if err != nil {
			return nil, err
		}
		uc.cache.Set(ctx, key, orders)
	}

	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// GetOrder obtiene un pedido; un estudiante solo puede ver los suyos.
func (uc *OrderUseCase) GetOrder(ctx context.Context, req dto.Requester, id string) (*dto.OrderResponse, error) {
	o, err := loadReadable(ctx, uc.orders, req, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// UpdateStatus avanza el estado del pedido (solo vendedor). Únicas aristas: paid→printed, printed→collected.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, req dto.Requester, id, status string) (*dto.OrderResponse, error) {
	if req.Role != entity.RoleVendor {
		return nil, domain.ErrForbidden
	}
	to, ok := entity.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidTransition, status)
	}
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	from := o.Status
	if !entity.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
	}
	updated, err := uc.orders.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Otro vendedor movió el pedido entre la lectura y la escritura.
		return nil, fmt.Errorf("%w: el pedido ya no está en estado %s", domain.ErrInvalidTransition, from)
	}
	o.Status = to
	o.UpdatedAt = uc.now().UTC()

	uc.cache.Invalidate(ctx, cacheKeyAll, cacheKeyUser(o.UserID))
	uc.metrics.StatusChanged(from, to)
	uc.log.Info().Str("order_id", id).Str("from", string(from)).Str("to", string(to)).Msg("estado de pedido actualizado")
	return toOrderResponse(o), nil
}

// VerifyOTP busca el pedido activo con ese código. Solo lectura; el retiro se confirma con UpdateStatus.
func (uc *OrderUseCase) VerifyOTP(ctx context.Context, code string) (*dto.OrderResponse, error) {
	code = strings.TrimSpace(code)
	if !otp.Valid(code) {
		return nil, domain.ErrNotFound
	}
	o, err := uc.orders.FindActiveByOTP(ctx, code)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(o), nil
}

// loadReadable carga el pedido y aplica la regla de lectura por rol.
func loadReadable(ctx context.Context, orders repository.OrderRepository, req dto.Requester, id string) (*entity.Order, error) {
	o, err := orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	switch req.Role {
	case entity.RoleVendor:
		return o, nil
	case entity.RoleStudent:
		if o.OwnedBy(req.UserID, req.Email) {
			return o, nil
		}
	}
	return nil, domain.ErrForbidden
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	files := make([]dto.LineItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		files = append(files, dto.LineItemResponse{
			ID:         it.ID,
			Name:       it.Name,
			Type:       it.Kind,
			Size:       it.Size,
			PageCount:  it.PageCount,
			Price:      it.Price,
			DataVal:    it.Content,
			ContentRef: it.ContentRef,
		})
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		UserEmail: o.UserEmail,
		Files:     files,
		Settings: dto.PrintSettingsDTO{
			Color:       o.Settings.Color,
			DoubleSided: o.Settings.DoubleSided,
			Copies:      o.Settings.Copies,
		},
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		OTP:         o.OTP,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
