package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"

	"vaulttx/internal/service"
	"vaulttx/internal/view"
)

type PageCommand struct {
	Svc      *service.Service
	Renderer *view.TransactionRenderer
}

func (c *PageCommand) Name() string {
	return "page"
}

func (c *PageCommand) Synopsis() string {
	return "Fetch one raw search page with revision metadata"
}

func (c *PageCommand) Execute() error {
	var pageStr string
	err := survey.Ask([]*survey.Question{
		{
			Name: "page",
			Prompt: &survey.Input{
				Message: "Page number:",
				Default: "1",
			},
		},
	}, &pageStr)
	if err != nil {
		return err
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		return fmt.Errorf("page must be a positive number")
	}

	resp, err := c.Svc.Page(context.Background(), page)
	if err != nil {
		return fmt.Errorf("fetching page %d: %w", page, err)
	}

	c.Renderer.RenderPage(resp)
	return nil
}
