package command

import (
	"fmt"

	cfg "vaulttx/internal/config"

	"github.com/AlecAivazis/survey/v2"
)

type CollectArgsCommand struct {
}

func (c *CollectArgsCommand) Name() string {
	return "collect-args"
}

func (c *CollectArgsCommand) Synopsis() string {
	return "Collect missing arguments interactively"
}

func (c *CollectArgsCommand) Execute() error {
	questions := []*survey.Question{}

	if cfg.GetConfig().GetBaseURL() == "" {
		questions = append(questions, &survey.Question{
			Name: "baseurl",
			Prompt: &survey.Input{
				Default: "https://vault.immudb.io/ics/api/v1",
				Message: "Enter vault API base URL:",
			},
			Validate: survey.Required,
		})
	}

	if cfg.GetConfig().GetAPIKey() == "" {
		questions = append(questions, &survey.Question{
			Name: "apikey",
			Prompt: &survey.Password{
				Message: "Enter vault API key:",
			},
			Validate: survey.Required,
		})
	}

	if len(questions) == 0 {
		fmt.Println("No missing arguments")
		return nil
	}

	answers := struct {
		BaseURL string `survey:"baseurl"`
		APIKey  string `survey:"apikey"`
	}{}

	err := survey.Ask(questions, &answers)
	if err != nil {
		return err
	}

	if answers.BaseURL != "" {
		cfg.GetConfig().SetBaseURL(answers.BaseURL)
	}
	if answers.APIKey != "" {
		cfg.GetConfig().SetAPIKey(answers.APIKey)
	}
	fmt.Println("Arguments collected successfully")

	return nil
}
