package infra_pg_init

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mkhalturin/filmatch/core/internal/config"
	"github.com/mkhalturin/filmatch/core/pkg/retry"
)

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	return db
}

// Transient pq classes: connection failures (08), insufficient resources
// (53), operator intervention (57).
var transientClasses = map[string]bool{
	"08": true,
	"53": true,
	"57": true,
}

// WrapTransient tags retryable driver failures so the shared retry policy
// picks them up. Business and structural errors pass through untouched.
func WrapTransient(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(retry.ErrTransient, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Join(retry.ErrTransient, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		class := string(pqErr.Code.Class())
		if transientClasses[class] || pqErr.Code == "40001" {
			return errors.Join(retry.ErrTransient, err)
		}
	}
	return err
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
