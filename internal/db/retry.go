package db

import (
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	readRetries    = 2
	retryBaseDelay = 100 * time.Millisecond
)

// ReadWithRetry runs fn, retrying a bounded number of times when it fails
// with a transient connection error. Writes must never go through here:
// a retried insert could double-book.
func ReadWithRetry(fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) || attempt == readRetries {
			return err
		}
		zap.L().Warn("transient db error on read, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		time.Sleep(retryBaseDelay * time.Duration(attempt+1))
	}
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "57P01", // admin_shutdown
			"08006", // connection_failure
			"08001": // sqlclient_unable_to_establish_sqlconnection
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, io.EOF) ||
		strings.Contains(err.Error(), "connection reset") ||
		strings.Contains(err.Error(), "broken pipe") {
		return true
	}

	return false
}
