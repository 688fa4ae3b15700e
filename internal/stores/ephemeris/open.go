package ephemeris

import (
	"fmt"
	"net"
	"strings"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/ethanbaker/ephemeris/pkg/utils"
	"github.com/go-sql-driver/mysql"
)

// Supported values of STORE_DRIVER
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Closer is a record store that holds a connection
type Closer interface {
	ephemeris.StoreInterface
	Close() error
}

// Open builds the record store selected by STORE_DRIVER (mysql when unset)
func Open(cfg *utils.Config) (Closer, error) {
	driver := strings.ToLower(cfg.GetWithDefault("STORE_DRIVER", DriverMySQL))

	switch driver {
	case DriverMySQL:
		dsn, err := MySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return NewStore(dsn)

	case DriverPostgres:
		url, err := cfg.Require("DATABASE_URL")
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(url)

	case DriverMemory:
		return NewInMemoryStore(), nil

	default:
		return nil, &utils.ConfigError{Key: "STORE_DRIVER", Reason: fmt.Sprintf("unknown driver %q", driver)}
	}
}

// MySQLDSN builds the MySQL connection string from the MYSQL_* settings
func MySQLDSN(cfg *utils.Config) (string, error) {
	if err := cfg.RequireAll("MYSQL_USER", "MYSQL_HOST", "MYSQL_DATABASE"); err != nil {
		return "", err
	}

	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Get("MYSQL_USER")
	mysqlCfg.Passwd = cfg.Get("MYSQL_PASSWORD")
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = net.JoinHostPort(cfg.Get("MYSQL_HOST"), cfg.GetWithDefault("MYSQL_PORT", "3306"))
	mysqlCfg.DBName = cfg.Get("MYSQL_DATABASE")
	mysqlCfg.ParseTime = true

	return mysqlCfg.FormatDSN(), nil
}
