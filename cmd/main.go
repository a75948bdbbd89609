package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vaulttx/internal/cli"
	cmd "vaulttx/internal/command"
	cfg "vaulttx/internal/config"
	"vaulttx/internal/db"
	"vaulttx/internal/logger"
)

func main() {
	err := cfg.GetConfig().Parse()
	if err != nil {
		fmt.Printf("Error parsing config: %s\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.GetConfig().GetLogLevel()); err != nil {
		fmt.Printf("Error initializing logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.GetConfig().GetDbPath() != "" {
		db.InitAsyncLogger(256, 16, 2*time.Second)
	}

	cli := cli.NewCLI()

	// Handle kill and interrupt signals to flush logs gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cli.Close()
		fmt.Println("Exiting CLI tool")
		os.Exit(0)
	}()

	cli.ClearTerminal()

	if cfg.GetConfig().GetAPIKey() == "" ||
		cfg.GetConfig().GetBaseURL() == "" {
		cli.AddCommand(&cmd.CollectArgsCommand{})
	}

	err = cli.Run()
	if err != nil {
		fmt.Printf("Error running CLI: %s\n", err)
	}
}
