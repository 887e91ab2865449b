package orders

import (
	"github.com/shopspring/decimal"
	types "github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"gorm.io/gorm"
)

// active restricts a query to ACTIVE rows of table. Every read in this package
// goes through it; archived rows are never returned.
func active(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".lifecycle = ?", types.LifecycleActive)
	}
}

func archiveUpdates() map[string]any {
	return map[string]any{"lifecycle": types.LifecycleArchived}
}

// money normalizes driver sums to cents; SQLite returns REAL for decimal columns.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
