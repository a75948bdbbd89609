package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"vaulttx/internal/service"
	"vaulttx/internal/view"
)

type BulkCommand struct {
	Svc      *service.Service
	Renderer *view.TransactionRenderer
}

func (c *BulkCommand) Name() string {
	return "bulk"
}

func (c *BulkCommand) Synopsis() string {
	return "Generate a batch of transactions and write them in one call"
}

func (c *BulkCommand) Execute() error {
	qs := []*survey.Question{
		{
			Name: "count",
			Prompt: &survey.Input{
				Message: "Batch size:",
				Default: "10",
			},
			Validate: func(ans interface{}) error {
				str, ok := ans.(string)
				if !ok {
					return fmt.Errorf("invalid input")
				}
				n, err := strconv.Atoi(str)
				if err != nil || n <= 0 {
					return fmt.Errorf("batch size must be a positive number")
				}
				return nil
			},
		},
	}

	var countStr string
	if err := survey.Ask(qs, &countStr); err != nil {
		return err
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return fmt.Errorf("parsing batch size: %w", err)
	}

	batch := c.Svc.GenerateBatch(count)

	start := time.Now()
	if err := c.Svc.Submit(context.Background(), batch...); err != nil {
		return fmt.Errorf("submitting batch: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("Batch of %d transaction(s) written as one revision\n", count)
	fmt.Printf("Elapsed time: %s\n", elapsed.Round(time.Millisecond))
	return nil
}
