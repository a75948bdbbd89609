package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

func (cli *CLI) printSessionStats() {
	if cli.svc == nil {
		fmt.Println("Service not initialized")
		return
	}

	stats := cli.svc.Stats()
	if stats.OperationCount() == 0 {
		fmt.Println("No vault operations recorded in this session")
		return
	}

	fmt.Println("\n--- Session Statistics ---")
	fmt.Printf("Session ID: %s\n", cli.svc.SessionID())

	summaryTable := tablewriter.NewWriter(os.Stdout)
	summaryTable.SetHeader([]string{"Operations", "Session Time", "Mean Call Time", "Std Dev"})
	summaryTable.Append([]string{
		strconv.Itoa(stats.OperationCount()),
		stats.Duration().Round(time.Millisecond).String(),
		stats.MeanExecutionTime().Round(time.Millisecond).String(),
		stats.StandardDeviation().Round(time.Millisecond).String(),
	})
	summaryTable.Render()

	codes := stats.StatusCodes()
	if len(codes) == 0 {
		return
	}

	fmt.Println("\n--- HTTP Status Codes ---")
	codeTable := tablewriter.NewWriter(os.Stdout)
	codeTable.SetHeader([]string{"Status", "Count"})

	var sorted []string
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	for _, code := range sorted {
		codeTable.Append([]string{code, strconv.FormatUint(codes[code], 10)})
	}
	codeTable.Render()
	fmt.Println()
}
