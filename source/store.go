package source

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gogpu/welllog/internal/wlog"
	"github.com/gogpu/welllog/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// wellRecord is the wells table.
type wellRecord struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	RangeStart float64
	RangeStop  float64
	RangeUnit  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (wellRecord) TableName() string { return "wells" }

// curveRecord stores one curve. Depths and values are packed little-endian
// float64 arrays so NaN gaps survive the round trip.
type curveRecord struct {
	ID       uint   `gorm:"primaryKey"`
	WellID   string `gorm:"index;not null"`
	Position int
	Name     string
	Unit     string
	Scale    uint8
	Fill     uint8
	Color    string
	Depths   []byte
	Values   []byte
}

func (curveRecord) TableName() string { return "curves" }

type markerRecord struct {
	WellID    string `gorm:"primaryKey"`
	ID        string `gorm:"primaryKey"`
	Name      string
	Depth     float64
	Color     string
	HorizonID string
}

func (markerRecord) TableName() string { return "markers" }

type horizonRecord struct {
	WellID string `gorm:"primaryKey"`
	ID     string `gorm:"primaryKey"`
	Name   string
	Color  string
}

func (horizonRecord) TableName() string { return "horizons" }

// models lists the tables migrated by NewStore.
var models = []any{&wellRecord{}, &curveRecord{}, &markerRecord{}, &horizonRecord{}}

// Store is a Loader backed by a SQL database.
type Store struct {
	db *gorm.DB
}

// Open connects to the database named by dsn and migrates the schema.
//
// DSNs starting with "postgres://", "postgresql://" or containing
// "host=" use Postgres. "sqlite:" prefixed DSNs, ":memory:" and plain
// file paths use SQLite.
func Open(dsn string) (*Store, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", dialector.Name(), err)
	}
	return NewStore(db)
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedDSN)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite:")), nil
	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	default:
		return sqlite.Open(dsn), nil
	}
}

// NewStore wraps an open gorm connection and migrates the schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("source: migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// DB returns the underlying gorm connection.
func (s *Store) DB() *gorm.DB { return s.db }

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save writes w, replacing any stored well with the same ID.
func (s *Store) Save(ctx context.Context, w *model.Well) error {
	if w == nil || w.ID == "" {
		return fmt.Errorf("%w: well id is required", ErrInvalidSnapshot)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := wellRecord{
			ID:         w.ID,
			Name:       w.Name,
			RangeStart: w.Range.Start,
			RangeStop:  w.Range.Stop,
			RangeUnit:  w.Range.Unit,
		}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		for _, m := range []any{&curveRecord{}, &markerRecord{}, &horizonRecord{}} {
			if err := tx.Where("well_id = ?", w.ID).Delete(m).Error; err != nil {
				return err
			}
		}

		var curves []curveRecord
		for i, c := range w.Logs.Curves(model.OrderDeclared) {
			curves = append(curves, curveRecord{
				WellID:   w.ID,
				Position: i,
				Name:     c.Name,
				Unit:     c.Unit,
				Scale:    uint8(c.Style.Scale),
				Fill:     uint8(c.Style.Fill),
				Color:    c.Style.Color,
				Depths:   packFloats(c.Depths),
				Values:   packFloats(c.Values),
			})
		}
		if len(curves) > 0 {
			if err := tx.Create(&curves).Error; err != nil {
				return err
			}
		}

		markers := make([]markerRecord, 0, len(w.Markers))
		for _, m := range w.Markers {
			if m.WellID != "" && m.WellID != w.ID {
				continue
			}
			markers = append(markers, markerRecord{
				WellID: w.ID, ID: m.ID, Name: m.Name, Depth: m.Depth, Color: m.Color, HorizonID: m.HorizonID,
			})
		}
		if len(markers) > 0 {
			if err := tx.Create(&markers).Error; err != nil {
				return err
			}
		}

		horizons := make([]horizonRecord, 0, len(w.Horizons))
		for _, h := range w.Horizons {
			horizons = append(horizons, horizonRecord{WellID: w.ID, ID: h.ID, Name: h.Name, Color: h.Color})
		}
		if len(horizons) > 0 {
			return tx.Create(&horizons).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("source: save well %q: %w", w.ID, err)
	}
	wlog.Logger().Debug("source: well saved", "well", w.ID, "curves", w.Logs.Len(), "markers", len(w.Markers))
	return nil
}

// Load reads a well. Curves stored with identical depth arrays share one
// slice in the result.
func (s *Store) Load(ctx context.Context, wellID string) (*model.Well, error) {
	db := s.db.WithContext(ctx)

	var rec wellRecord
	if err := db.First(&rec, "id = ?", wellID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrWellNotFound, wellID)
		}
		return nil, fmt.Errorf("source: load well %q: %w", wellID, err)
	}
	w := &model.Well{
		ID:    rec.ID,
		Name:  rec.Name,
		Range: model.DepthRange{Start: rec.RangeStart, Stop: rec.RangeStop, Unit: rec.RangeUnit},
		Logs:  model.NewWellLogs(),
	}

	var curves []curveRecord
	if err := db.Where("well_id = ?", wellID).Order("position").Find(&curves).Error; err != nil {
		return nil, fmt.Errorf("source: load curves of %q: %w", wellID, err)
	}
	shared := make(map[string][]float64)
	for _, c := range curves {
		depths, ok := shared[string(c.Depths)]
		if !ok {
			depths = unpackFloats(c.Depths)
			shared[string(c.Depths)] = depths
		}
		w.Logs.Add(&model.Curve{
			Name:   c.Name,
			Unit:   c.Unit,
			Depths: depths,
			Values: unpackFloats(c.Values),
			Style: model.Style{
				Scale: model.ScaleKind(c.Scale),
				Fill:  model.FillMode(c.Fill),
				Color: c.Color,
			},
		})
	}

	var markers []markerRecord
	if err := db.Where("well_id = ?", wellID).Order("depth, id").Find(&markers).Error; err != nil {
		return nil, fmt.Errorf("source: load markers of %q: %w", wellID, err)
	}
	for _, m := range markers {
		w.Markers = append(w.Markers, model.Marker{
			ID: m.ID, Name: m.Name, Depth: m.Depth, Color: m.Color, HorizonID: m.HorizonID, WellID: m.WellID,
		})
	}

	var horizons []horizonRecord
	if err := db.Where("well_id = ?", wellID).Order("id").Find(&horizons).Error; err != nil {
		return nil, fmt.Errorf("source: load horizons of %q: %w", wellID, err)
	}
	for _, h := range horizons {
		w.Horizons = append(w.Horizons, model.Horizon{ID: h.ID, Name: h.Name, Color: h.Color})
	}
	return w, nil
}

// List returns the stored well IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&wellRecord{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("source: list wells: %w", err)
	}
	return ids, nil
}

// Delete removes a well and its curves, markers and horizons.
func (s *Store) Delete(ctx context.Context, wellID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&wellRecord{}, "id = ?", wellID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %q", ErrWellNotFound, wellID)
		}
		for _, m := range []any{&curveRecord{}, &markerRecord{}, &horizonRecord{}} {
			if err := tx.Where("well_id = ?", wellID).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func packFloats(v []float64) []byte {
	if len(v) == 0 {
		return nil
	}
	out := make([]byte, 0, 8*len(v))
	for _, f := range v {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(f))
	}
	return out
}

func unpackFloats(b []byte) []float64 {
	if len(b) < 8 {
		return nil
	}
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return out
}
