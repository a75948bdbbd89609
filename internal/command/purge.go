package command

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"vaulttx/internal/service"
)

type PurgeCommand struct {
	Svc *service.Service
}

func (c *PurgeCommand) Name() string {
	return "purge"
}

func (c *PurgeCommand) Synopsis() string {
	return "Delete every document in the collection (irreversible)"
}

func (c *PurgeCommand) Execute() error {
	var confirmed bool
	err := survey.AskOne(&survey.Confirm{
		Message: "Delete ALL documents in the collection? This cannot be undone.",
		Default: false,
	}, &confirmed)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Purge cancelled")
		return nil
	}

	if err := c.Svc.Purge(context.Background()); err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}

	fmt.Println("Collection purged")
	return nil
}
