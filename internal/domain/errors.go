package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists       = errors.New("el email ya está registrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrInvalidCredentials       = errors.New("credenciales inválidas")
	ErrInvalidVendorCredentials = errors.New("credenciales de vendedor inválidas")
	ErrForbidden                = errors.New("acceso denegado")
	ErrInvalidTransition        = errors.New("transición de estado no permitida")
	ErrOTPExhausted             = errors.New("no se pudo generar un código de retiro único")
	ErrStoreUnavailable         = errors.New("almacenamiento no disponible")

	// ErrOTPInUse lo devuelve el store cuando el código ya pertenece a un pedido activo.
	// El servicio de pedidos lo consume y reintenta; no llega al cliente.
	ErrOTPInUse = errors.New("código de retiro en uso por un pedido activo")
)
