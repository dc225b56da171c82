package models

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Developer tooling, run from main:

	GENERATE_MODELS=true        migrate, print the column report, then write typed
	                            query helpers to ./generated
	GENERATE_COLUMN_REPORT=true only print the column report

The column report lists, per table, the database columns that no field of the
corresponding model maps to. A non-empty report usually means a column was
dropped from a struct without a migration.
*/

// All returns one zero value of every persisted entity, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&Skill{},
		&Project{},
		&Experience{},
		&Education{},
		&Category{},
		&Tag{},
		&BlogPost{},
		&Comment{},
		&ContactMessage{},
	}
}

func GenerateModels(db *gorm.DB, outPath string) error {
	db = db.Session(&gorm.Session{
		Logger:                 db.Logger.LogMode(logger.Info),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	log.Info().Msg("Migrating models...")
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	PrintColumnMismatchReport(report)

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	log.Info().Str("outPath", outPath).Msg("Model generation complete")
	return nil
}

// ColumnMismatchReport maps table name to the columns the model does not cover.
// Tables that do not exist yet are skipped.
func ColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	cache := &sync.Map{}

	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse schema of %T: %w", model, err)
		}
		if !db.Migrator().HasTable(s.Table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", s.Table, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}
		report[s.Table] = findColumnMismatches(dbColumns, s.DBNames)
	}
	return report, nil
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	mismatches := []string{}
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}

func PrintColumnMismatchReport(report map[string][]string) {
	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	total := 0
	for _, table := range tables {
		cols := report[table]
		total += len(cols)
		if len(cols) == 0 {
			log.Info().Str("table", table).Msg("All columns are accounted for in the model")
			continue
		}
		log.Warn().Str("table", table).Strs("columns", cols).Msg("Columns not accounted for in model")
	}
	log.Info().Int("total", total).Msg("Column mismatch report complete")
}
