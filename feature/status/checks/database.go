package checks

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Database verifies the machine registry database answers a ping.
func Database(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
