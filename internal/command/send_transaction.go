package command

import (
	"context"
	"fmt"
	"time"

	"vaulttx/internal/service"
	"vaulttx/internal/transactions"
	"vaulttx/internal/view"
)

type SendCommand struct {
	Svc      *service.Service
	Renderer *view.TransactionRenderer
}

func (c *SendCommand) Name() string {
	return "send"
}

func (c *SendCommand) Synopsis() string {
	return "Generate one transaction and write it to the vault"
}

func (c *SendCommand) Execute() error {
	txn := c.Svc.Generate()

	start := time.Now()
	if err := c.Svc.Submit(context.Background(), txn); err != nil {
		return fmt.Errorf("submitting transaction: %w", err)
	}
	elapsed := time.Since(start)

	c.Renderer.RenderSubmitted([]transactions.Transaction{txn}, elapsed)
	return nil
}
