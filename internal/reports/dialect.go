package reports

import (
	"fmt"

	"gorm.io/gorm"
)

// Aggregates over timestamps cannot be written portably across the two
// supported dialects, so the two expressions that need date math switch
// on the dialector. Everything else is plain SQL.

func fulfillmentSecondsExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "(julianday(order_items.updated_at) - julianday(order_items.created_at)) * 86400.0"
	}
	return "EXTRACT(EPOCH FROM (order_items.updated_at - order_items.created_at))"
}

func monthExpr(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", column)
	}
	return fmt.Sprintf("CAST(EXTRACT(MONTH FROM %s) AS INTEGER)", column)
}
