package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el usuario ya existe")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStorageFailure    = errors.New("fallo de almacenamiento")
)

// InsufficientStockError detalla el primer producto del lote sin stock suficiente.
// errors.Is(err, ErrInsufficientStock) es verdadero para este tipo.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d", name, e.Requested, e.Available)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidInputf construye un error de validación que envuelve ErrInvalidInput con un mensaje legible.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// StorageFailure envuelve un error de infraestructura como ErrStorageFailure, conservando la causa.
// Los errores de dominio se devuelven tal cual.
func StorageFailure(err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}

// IsDomainError indica si err es (o envuelve) un error de negocio conocido.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrUsernameTaken, ErrInvalidInput, ErrDuplicate,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrInsufficientStock, ErrStorageFailure,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
