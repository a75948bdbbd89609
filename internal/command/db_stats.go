package command

import (
	"encoding/json"
	"fmt"

	"vaulttx/internal/config"
	"vaulttx/internal/db"
	"vaulttx/internal/service"
)

type DbStatsCommand struct {
	Svc *service.Service
}

func (c *DbStatsCommand) Name() string {
	return "db-stats"
}

func (c *DbStatsCommand) Synopsis() string {
	return "Show operation log statistics for the current session"
}

func (c *DbStatsCommand) Execute() error {
	dbPath := config.GetConfig().GetDbPath()
	if dbPath == "" {
		return fmt.Errorf("operation log not configured (use --db flag or VAULT_DB_PATH)")
	}

	sessionID := c.Svc.SessionID()

	stats, err := db.GetOperationStats(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get operation stats: %w", err)
	}

	fmt.Printf("Operation Log Statistics for Session: %s\n", sessionID)
	fmt.Printf("=====================================\n")
	fmt.Printf("Total Operations: %v\n", stats["total_operations"])
	fmt.Printf("Successful Operations: %v\n", stats["successful_operations"])
	fmt.Printf("Failed Operations: %v\n", stats["failed_operations"])
	fmt.Printf("Average Duration: %.1f ms\n", stats["average_duration_ms"])

	if dist, ok := stats["status_code_distribution"].(map[string]int); ok && len(dist) > 0 {
		data, err := json.MarshalIndent(dist, "", "  ")
		if err == nil {
			fmt.Printf("Status Codes: %s\n", data)
		}
	}

	if dist, ok := stats["operation_distribution"].(map[string]int); ok && len(dist) > 0 {
		data, err := json.MarshalIndent(dist, "", "  ")
		if err == nil {
			fmt.Printf("Operations: %s\n", data)
		}
	}

	return nil
}
