package model

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aig-studio/artist-image-generator/common"
	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func chooseDB(dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		PrepareStmt: true,
	}
	if !config.DebugSQLEnabled {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	switch {
	case strings.HasPrefix(dsn, "postgres://"):
		logger.SysLog("using PostgreSQL as database")
		common.UsingPostgreSQL = true
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormConfig)
	case dsn != "":
		logger.SysLog("using MySQL as database")
		common.UsingMySQL = true
		if !strings.Contains(dsn, "parseTime") {
			if strings.Contains(dsn, "?") {
				dsn += "&parseTime=true"
			} else {
				dsn += "?parseTime=true"
			}
		}
		return gorm.Open(mysql.Open(dsn), gormConfig)
	}
	logger.SysLog("SQL_DSN not set, using SQLite as database")
	common.UsingSQLite = true
	sqlitePath := fmt.Sprintf("%s?_busy_timeout=%d", config.SQLitePath, config.SQLiteBusyTimeout)
	return gorm.Open(sqlite.Open(sqlitePath), gormConfig)
}

// InitDB opens the database named by the given env variable and migrates the tables.
func InitDB(envName string) (db *gorm.DB, err error) {
	db, err = chooseDB(os.Getenv(envName))
	if err != nil {
		return nil, err
	}
	if config.DebugSQLEnabled {
		db = db.Debug()
	}
	if !common.UsingSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Minute * 5)
	}
	if err = migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	logger.SysLog("database migration started")
	if err := db.AutoMigrate(&Option{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&Media{}); err != nil {
		return err
	}
	logger.SysLog("database migrated")
	return nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	return closeDB(DB)
}
