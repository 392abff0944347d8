// Package gormstore is the gorm-backed StrategyDefinitionRepository
// implementation, grounded on the teacher's internal/store/gormstore
// (gorm.Open(sqlite.Open(dsn)) + AutoMigrate + clause.OnConflict upsert
// idiom), rewritten against core.StrategyDefinition rows instead of the
// teacher's strategy_instances/live_orders live-trading schema.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"barterbench/internal/core"
)

// strategyDefinitionModel is the row shape. Parameters and Risk are
// stored as JSON columns (gorm.io/datatypes.JSON), same as the teacher
// stores its decision-log payloads.
type strategyDefinitionModel struct {
	Name               string         `gorm:"column:name;primaryKey"`
	Version            int            `gorm:"column:version;primaryKey"`
	MainTimeframe      string         `gorm:"column:main_timeframe"`
	RequiredTimeframes datatypes.JSON `gorm:"column:required_timeframes"`
	Parameters         datatypes.JSON `gorm:"column:parameters"`
	Risk               datatypes.JSON `gorm:"column:risk"`
	Symbols            datatypes.JSON `gorm:"column:symbols"`
	Enabled            bool           `gorm:"column:enabled"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
}

func (strategyDefinitionModel) TableName() string { return "strategy_definitions" }

// Store implements store.StrategyDefinitionRepository.
type Store struct {
	db *gorm.DB
}

// NewStore opens (creating if absent) a SQLite-backed definition store at
// path and migrates its schema.
func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: gorm store path must not be empty", core.ErrInvalidArgument)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := ensureDir(dir); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrExternalFailure, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrExternalFailure, err)
	}
	if err := db.AutoMigrate(&strategyDefinitionModel{}); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrExternalFailure, err)
	}
	return &Store{db: db}, nil
}

// Upsert writes one (name, version) row, replacing it wholesale on
// conflict — the same "excluded.*" pattern the teacher uses for its
// strategy_instances upsert, minus the per-column COALESCE since a
// definition reload always supersedes the stored one entirely.
func (s *Store) Upsert(ctx context.Context, def core.StrategyDefinition) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("%w: gorm store not initialized", core.ErrInvalidArgument)
	}
	row, err := toModel(def)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}, {Name: "version"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"main_timeframe", "required_timeframes", "parameters", "risk", "symbols", "enabled", "updated_at",
			}),
		}).
		Create(&row).Error
}

// FindByName returns the highest-version row for name, or nil if absent.
func (s *Store) FindByName(ctx context.Context, name string) (*core.StrategyDefinition, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("%w: gorm store not initialized", core.ErrInvalidArgument)
	}
	var row strategyDefinitionModel
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Order("version DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrExternalFailure, err)
	}
	def, err := fromModel(row)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// ListAll returns every stored definition, any version, any name.
func (s *Store) ListAll(ctx context.Context) ([]core.StrategyDefinition, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("%w: gorm store not initialized", core.ErrInvalidArgument)
	}
	var rows []strategyDefinitionModel
	if err := s.db.WithContext(ctx).Order("name, version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrExternalFailure, err)
	}
	out := make([]core.StrategyDefinition, 0, len(rows))
	for _, row := range rows {
		def, err := fromModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

func toModel(def core.StrategyDefinition) (strategyDefinitionModel, error) {
	requiredTF, err := json.Marshal(def.RequiredTimeframes)
	if err != nil {
		return strategyDefinitionModel{}, fmt.Errorf("%w: marshal required_timeframes: %v", core.ErrInvalidArgument, err)
	}
	params, err := json.Marshal(def.Parameters)
	if err != nil {
		return strategyDefinitionModel{}, fmt.Errorf("%w: marshal parameters: %v", core.ErrInvalidArgument, err)
	}
	risk, err := json.Marshal(def.Risk)
	if err != nil {
		return strategyDefinitionModel{}, fmt.Errorf("%w: marshal risk: %v", core.ErrInvalidArgument, err)
	}
	symbols, err := json.Marshal(def.Symbols)
	if err != nil {
		return strategyDefinitionModel{}, fmt.Errorf("%w: marshal symbols: %v", core.ErrInvalidArgument, err)
	}
	return strategyDefinitionModel{
		Name:               def.Name,
		Version:            def.Version,
		MainTimeframe:      string(def.MainTimeframe),
		RequiredTimeframes: datatypes.JSON(requiredTF),
		Parameters:         datatypes.JSON(params),
		Risk:               datatypes.JSON(risk),
		Symbols:            datatypes.JSON(symbols),
		Enabled:            def.Enabled,
		UpdatedAt:          time.Unix(0, 0),
	}, nil
}

func fromModel(row strategyDefinitionModel) (core.StrategyDefinition, error) {
	def := core.StrategyDefinition{
		Name:          row.Name,
		Version:       row.Version,
		MainTimeframe: core.Timeframe(row.MainTimeframe),
		Enabled:       row.Enabled,
	}
	if len(row.RequiredTimeframes) > 0 {
		if err := json.Unmarshal(row.RequiredTimeframes, &def.RequiredTimeframes); err != nil {
			return core.StrategyDefinition{}, fmt.Errorf("%w: unmarshal required_timeframes: %v", core.ErrExternalFailure, err)
		}
	}
	if len(row.Parameters) > 0 {
		if err := json.Unmarshal(row.Parameters, &def.Parameters); err != nil {
			return core.StrategyDefinition{}, fmt.Errorf("%w: unmarshal parameters: %v", core.ErrExternalFailure, err)
		}
	}
	if len(row.Risk) > 0 {
		if err := json.Unmarshal(row.Risk, &def.Risk); err != nil {
			return core.StrategyDefinition{}, fmt.Errorf("%w: unmarshal risk: %v", core.ErrExternalFailure, err)
		}
	}
	if len(row.Symbols) > 0 {
		if err := json.Unmarshal(row.Symbols, &def.Symbols); err != nil {
			return core.StrategyDefinition{}, fmt.Errorf("%w: unmarshal symbols: %v", core.ErrExternalFailure, err)
		}
	}
	return def, nil
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
