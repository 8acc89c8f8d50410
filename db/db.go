package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"mrmelo_sanctuary/config"
)

var (
	DB *sql.DB // 数据库连接
)

// Open 按驱动名打开数据库连接并检查连通性
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("empty dsn for driver %s", driver)
	}
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// InitWithConfig 使用配置初始化数据库连接池
func InitWithConfig(cfg *config.Config) error {
	conn, err := Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}

	// 从配置读取连接池参数，提供默认值保护
	maxOpenConns := cfg.DB.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 50 // 默认最大连接数
	}

	maxIdleConns := cfg.DB.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10 // 默认最大空闲连接数
	}

	connMaxLifetime := cfg.DB.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 60 // 默认连接最大生命周期（分钟）
	}

	if cfg.DB.Driver == "sqlite" {
		// sqlite 只允许单写连接
		maxOpenConns = 1
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Minute)

	DB = conn
	return nil
}
