package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE que los repositorios traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505" // employee_id o nombre de rol repetido
	codeForeignKeyViolation = "23503" // users.role apunta a un rol inexistente
	codeNumericOutOfRange   = "22003" // quantity + delta supera INTEGER
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return sqlState(err) == codeUniqueViolation }

func isForeignKeyViolation(err error) bool { return sqlState(err) == codeForeignKeyViolation }

func isNumericOutOfRange(err error) bool { return sqlState(err) == codeNumericOutOfRange }
