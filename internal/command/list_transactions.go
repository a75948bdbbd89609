package command

import (
	"context"
	"fmt"

	"vaulttx/internal/service"
	"vaulttx/internal/view"
)

type ListCommand struct {
	Svc      *service.Service
	Renderer *view.TransactionRenderer
}

func (c *ListCommand) Name() string {
	return "list"
}

func (c *ListCommand) Synopsis() string {
	return "Fetch and flatten every document currently in the collection"
}

func (c *ListCommand) Execute() error {
	all, err := c.Svc.Transactions(context.Background())
	if err != nil {
		return fmt.Errorf("fetching transactions: %w", err)
	}

	c.Renderer.RenderTransactions(all)
	return nil
}
