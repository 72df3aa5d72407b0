package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"wellspring/internal/middleware"

	"gorm.io/gorm"
)

// Migration is one versioned SQL schema change, loaded from the embedded
// migrations directory (NNNNNN_name.up.sql with a matching .down.sql).
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

func (m Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrations = mustLoadMigrations()

func mustLoadMigrations() []Migration {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		panic(fmt.Sprintf("read embedded migrations: %v", err))
	}

	var out []Migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		base := strings.TrimSuffix(name, ".up.sql")
		prefix, title, ok := strings.Cut(base, "_")
		if !ok {
			panic(fmt.Sprintf("migration %q is not named NNNNNN_name.up.sql", name))
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			panic(fmt.Sprintf("migration %q has a non-numeric version: %v", name, err))
		}

		up, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			panic(fmt.Sprintf("read migration %q: %v", name, err))
		}
		down, err := migrationFS.ReadFile("migrations/" + base + ".down.sql")
		if err != nil {
			panic(fmt.Sprintf("migration %q has no matching down script: %v", name, err))
		}

		out = append(out, Migration{
			Version: version,
			Name:    title,
			UpSQL:   string(up),
			DownSQL: string(down),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// GetMigrations returns the embedded migrations, sorted by version.
func GetMigrations() []Migration {
	return migrations
}

// GetMigrationByVersion returns the migration with the given version, or nil.
func GetMigrationByVersion(version int) *Migration {
	for i := range migrations {
		if migrations[i].Version == version {
			return &migrations[i]
		}
	}
	return nil
}

// schemaMigration is the bookkeeping row for one applied migration.
type schemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// appliedMigrationVersions reads the bookkeeping table without creating it,
// so status queries stay read-only. A missing table means nothing applied.
func appliedMigrationVersions(ctx context.Context, db *gorm.DB) ([]int, error) {
	if !db.WithContext(ctx).Migrator().HasTable(&schemaMigration{}) {
		return nil, nil
	}
	var versions []int
	if err := db.WithContext(ctx).Model(&schemaMigration{}).Order("version ASC").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	return versions, nil
}

// RunMigrations applies every pending embedded migration in version order.
// Each migration and its bookkeeping row commit in one transaction.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	applied, err := appliedMigrationVersions(ctx, db)
	if err != nil {
		return err
	}
	for _, version := range applied {
		if GetMigrationByVersion(version) == nil {
			return fmt.Errorf("schema_migrations contains version %06d not present in code", version)
		}
	}

	for _, m := range migrations {
		if slices.Contains(applied, m.Version) {
			middleware.Logger.Debug("Migration already applied", slog.String("migration", m.String()))
			continue
		}

		middleware.Logger.Info("Applying migration", slog.String("migration", m.String()))
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(m.UpSQL).Error; err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.Version, Name: m.Name}).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.String(), err)
		}
	}

	return nil
}

// RollbackMigration reverts one applied migration by version.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	m := GetMigrationByVersion(version)
	if m == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	applied, err := appliedMigrationVersions(ctx, db)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("migration %s has not been applied", m)
	}

	middleware.Logger.Info("Rolling back migration", slog.String("migration", m.String()))
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.DownSQL).Error; err != nil {
			return err
		}
		return tx.Where("version = ?", version).Delete(&schemaMigration{}).Error
	})
	if err != nil {
		return fmt.Errorf("roll back migration %s: %w", m.String(), err)
	}
	return nil
}
