// This file is a helper for running tests with testcontainers.
// It is used by the integration tests and by the cmd/testcontainers dev tool.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MariaDBContainer wraps a running MariaDB testcontainer and the credentials
// it was seeded with.
type MariaDBContainer struct {
	Container    testcontainers.Container
	Host         string
	Port         string
	Database     string
	User         string
	Password     string
	RootPassword string
}

// Terminate stops the container.
func (m *MariaDBContainer) Terminate(t *testing.T) {
	if m.Container == nil {
		return
	}
	if err := m.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate MariaDB container: %v", err)
	}
}

// StartMariaDB starts a MariaDB container with fresh credentials and waits
// until it accepts connections. Pass a nil *testing.T to use it outside a
// test process.
func StartMariaDB(t *testing.T) (*MariaDBContainer, error) {
	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	// Unique credentials per run so parallel containers never collide.
	suffix := strings.Split(uuid.New().String(), "-")[0]
	m := &MariaDBContainer{
		Database:     "strengthjournal_" + suffix,
		User:         "sj_" + suffix,
		Password:     uuid.New().String(),
		RootPassword: uuid.New().String(),
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		exitWithError(t, err, "Failed to create DB port")
		return nil, err
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": m.RootPassword,
				"MYSQL_DATABASE":      m.Database,
				"MYSQL_USER":          m.User,
				"MYSQL_PASSWORD":      m.Password,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start MariaDB container")
		return nil, err
	}
	m.Container = container

	host, err := container.Host(ctx)
	if err != nil {
		m.Terminate(t)
		exitWithError(t, err, "Failed to get container host")
		return nil, err
	}
	mappedPort, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		m.Terminate(t)
		exitWithError(t, err, "Failed to get container port")
		return nil, err
	}
	m.Host = host
	m.Port = mappedPort.Port()

	if err := waitForMariaDB(m); err != nil {
		m.Terminate(t)
		exitWithError(t, err, "MariaDB not ready")
		return nil, err
	}

	logMessage(t, "MariaDB running at %s:%s database=%s", m.Host, m.Port, m.Database)
	return m, nil
}

// waitForMariaDB pings until the server answers queries, not just the port.
func waitForMariaDB(m *MariaDBContainer) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", m.User, m.Password, m.Host, m.Port, m.Database)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
