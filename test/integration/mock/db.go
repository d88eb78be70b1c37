package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/self-focus/backend/internal/infra/db"
	"github.com/self-focus/backend/internal/integration/persistence/model"
)

var once sync.Once
var testDb *Db

type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	models   map[string]any
}

// NewDb opens the shared in-memory database used by every scenario.
func NewDb() *Db {
	once.Do(
		func() {
			testDb = open()
		},
	)

	return testDb
}

func open() *Db {
	database, err := db.NewSQLiteConnection(db.MemoryDSN)
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	models := map[string]any{}
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: database.DB()}
		if err := stmt.Parse(m); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", m, err.Error()))
		}
		models[stmt.Schema.Table] = m
	}

	newDbMock := &Db{
		Database: database,
		DbConn:   database.DB(),
		models:   models,
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB drops every table and migrates the schema again.
func (d *Db) ClearDB() error {
	for table := range d.models {
		if err := d.DbConn.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return err
		}
	}

	if err := d.Database.Migrate(); err != nil {
		return err
	}

	for table, m := range d.models {
		if !d.DbConn.Migrator().HasTable(m) {
			return fmt.Errorf("table %s was not created", table)
		}
	}

	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
