// Package migrate holds the ordered schema migrations. Append new entries;
// never edit one that has shipped.
package migrate

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202601010001_init",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&model.User{},
					&model.Workspace{},
					&model.WorkspaceMember{},
					&model.Project{},
					&model.ProjectMember{},
					&model.Task{},
					&model.Comment{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&model.Comment{},
					&model.Task{},
					&model.ProjectMember{},
					&model.Project{},
					&model.WorkspaceMember{},
					&model.Workspace{},
					&model.User{},
				)
			},
		},
		{
			ID: "202601150001_task_reminders",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.TaskReminder{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.TaskReminder{})
			},
		},
		{
			ID: "202601200001_sync_events",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.SyncEvent{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&model.SyncEvent{})
			},
		},
	}
}

// Migrate applies every pending migration.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	logutils.Log.Info("schema migration finished")
	return nil
}

// RollbackLast reverts the most recent migration.
func RollbackLast(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	return m.RollbackLast()
}
