package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation en la tabla de códigos de error de PostgreSQL.
const codeUniqueViolation = "23505"

// isUniqueViolation detecta si el error proviene de un constraint único
// (email, SKU, orderNumber...). Los repos lo traducen a errores de dominio.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	// Capas intermedias pueden envolver el error sin conservar el tipo.
	return strings.Contains(err.Error(), codeUniqueViolation)
}
