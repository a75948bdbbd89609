package cli

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"

	cmd "vaulttx/internal/command"
	cfg "vaulttx/internal/config"
	"vaulttx/internal/db"
	"vaulttx/internal/service"
	"vaulttx/internal/view"
)

var Version string = "v0.2.0"

type CLI struct {
	commands map[string]cmd.Command
	svc      *service.Service
	renderer *view.TransactionRenderer
	factory  *cmd.Factory
}

func NewCLI() *CLI {
	return &CLI{
		commands: make(map[string]cmd.Command),
		renderer: view.NewTransactionRenderer(os.Stdout),
	}
}

func (cli *CLI) AddCommand(command cmd.Command) {
	if _, exists := cli.commands[command.Name()]; exists {
		log.Fatalf("Command '%s' is already registered", command.Name())
	}
	cli.commands[command.Name()] = command
}

func (cli *CLI) Run() error {
	if collectArgsCommand, ok := cli.commands["collect-args"]; ok {
		err := collectArgsCommand.Execute()
		if err != nil {
			return err
		}
	}
	err := cli.InitService()
	if err != nil {
		return err
	}

	// Create command factory
	cli.factory = cmd.NewFactory(cli.svc, cli.renderer)

	// Add commands using the factory
	cli.AddCommand(cli.factory.CreateSendCommand())
	cli.AddCommand(cli.factory.CreateBulkCommand())
	cli.AddCommand(cli.factory.CreateListCommand())
	cli.AddCommand(cli.factory.CreatePageCommand())
	cli.AddCommand(cli.factory.CreatePurgeCommand())
	cli.AddCommand(cli.factory.CreateDbStatsCommand())

	return cli.runWithHistory()
}

func (cli *CLI) ClearTerminal() {
	var clearCmd *exec.Cmd
	if runtime.GOOS == "windows" {
		clearCmd = exec.Command("cmd", "/c", "cls")
	} else {
		clearCmd = exec.Command("clear")
	}
	clearCmd.Stdout = os.Stdout
	if err := clearCmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to clear terminal: %v\n", err)
	}
}

func (cli *CLI) Close() {
	if cli.svc != nil {
		cli.svc.Close()
	}

	// Close database connection
	db.Close()
}

func (cli *CLI) printHelp() {
	fmt.Println("VAULTTX CLI Commands:")
	fmt.Println("  help, h, ?     - Display this help message")
	fmt.Println("  version, v     - Display version information")
	fmt.Println("  clear, cls     - Clear terminal")
	fmt.Println("  quit, exit     - Exit the program")
	fmt.Println("  stats, status  - Show session operation statistics")
	fmt.Println("  reload         - Reload vault client with current configuration")
	fmt.Println("")

	if len(cli.commands) > 0 {
		fmt.Println("Available commands:")
		for name, command := range cli.commands {
			fmt.Printf("  %-14s - %s\n", name, command.Synopsis())
		}
	}
}

func (cli *CLI) printVersion() {
	fmt.Printf("VAULTTX CLI (immudb Vault transactions) tool version %s\n", Version)
}

func (cli *CLI) InitService() error {
	svc, err := service.NewService(cfg.GetConfig())
	if err != nil {
		return err
	}

	cli.setService(svc)

	// Initialize the operation log database
	dbPath := cfg.GetConfig().GetDbPath()
	if dbPath != "" {
		if err := db.InitDB(dbPath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return nil
}

// Reload rebuilds the service from the current configuration
func (cli *CLI) Reload() error {
	fmt.Println("Reloading service...")

	if cli.svc != nil {
		fmt.Println("Closing existing service...")
		if err := cli.svc.Close(); err != nil {
			fmt.Printf("Warning: Failed to close service: %v\n", err)
			// Continue with reload
		}
		cli.svc = nil
	}

	fmt.Println("Closing database connection...")
	if err := db.Close(); err != nil {
		fmt.Printf("Warning: Failed to close database: %v\n", err)
		// Continue with reload
	}

	fmt.Println("Reinitializing service...")
	if err := cli.InitService(); err != nil {
		return fmt.Errorf("failed to reinitialize service: %w", err)
	}

	fmt.Println("Updating command factory...")
	cli.factory = cmd.NewFactory(cli.svc, cli.renderer)

	cli.commands = make(map[string]cmd.Command) // Clear existing commands
	cli.AddCommand(cli.factory.CreateSendCommand())
	cli.AddCommand(cli.factory.CreateBulkCommand())
	cli.AddCommand(cli.factory.CreateListCommand())
	cli.AddCommand(cli.factory.CreatePageCommand())
	cli.AddCommand(cli.factory.CreatePurgeCommand())
	cli.AddCommand(cli.factory.CreateDbStatsCommand())

	fmt.Println("Service reloaded successfully")
	return nil
}

// Set service instance
func (cli *CLI) setService(svc *service.Service) {
	cli.svc = svc
}
