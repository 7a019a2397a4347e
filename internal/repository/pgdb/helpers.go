package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Код нарушения уникального ограничения в PostgreSQL.
const uniqueViolationCode = "23505"

// postgresDuplicate распознаёт нарушение уникального ограничения.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
