package metrics

import (
	"time"

	"gorm.io/gorm"
)

const startedAtKey = "metrics:started_at"

// InstrumentGorm times every create, query, update, delete and raw statement
// issued through db.
func (m *Registry) InstrumentGorm(db *gorm.DB) error {
	if m == nil || db == nil {
		return nil
	}
	cb := db.Callback()
	hooks := []struct {
		operation string
		before    func(name string, fn func(*gorm.DB)) error
		after     func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		operation := h.operation
		if err := h.before("metrics:before_"+operation, startTimer); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+operation, func(tx *gorm.DB) {
			m.observeStatement(operation, tx)
		}); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(tx *gorm.DB) {
	tx.InstanceSet(startedAtKey, time.Now())
}

func (m *Registry) observeStatement(operation string, tx *gorm.DB) {
	v, ok := tx.InstanceGet(startedAtKey)
	if !ok {
		return
	}
	started, ok := v.(time.Time)
	if !ok {
		return
	}
	table := ""
	if tx.Statement != nil {
		table = tx.Statement.Table
	}
	m.ObserveDBQuery(operation, table, time.Since(started))
}
