package pod

import (
	"context"
	"net"
	"net/url"
	"strconv"

	"github.com/devantler-tech/testpods/pkg/wait/postgres"
)

// PostgresPort is the port PostgreSQL listens on inside the pod.
const PostgresPort = 5432

// PostgresHandle is a Handle for a PostgreSQL pod. It provides the
// connection string the PostgreSQL wait strategy queries with.
type PostgresHandle struct {
	*Handle

	User     string
	Password string
	Database string
}

// DSN implements postgres.Target.
func (p PostgresHandle) DSN(ctx context.Context) (string, error) {
	host, err := p.ExternalHost(ctx)
	if err != nil {
		return "", err
	}

	port, err := p.MappedPort(ctx, PostgresPort)
	if err != nil {
		return "", err
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(host, strconv.Itoa(port)),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=disable",
	}

	return dsn.String(), nil
}

var _ postgres.Target = PostgresHandle{}
