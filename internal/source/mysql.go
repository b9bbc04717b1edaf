package source

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

type MySQLConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
}

// MySQLConnector returns a Connector for the RackTables MySQL database.
func MySQLConnector(cfg MySQLConfig) Connector {
	return func(ctx context.Context) (*sql.DB, error) {
		mc := mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Name
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Timeout = 10 * time.Second

		connector, err := mysql.NewConnector(mc)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql configuration: %w", err)
		}

		db := sql.OpenDB(connector)
		db.SetMaxOpenConns(2)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pinging %s: %w", mc.Addr, err)
		}
		return db, nil
	}
}
