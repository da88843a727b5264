package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func (g *Generator) generateTextSummary(outputDir string, hours int) error {
	stats, err := g.store.EndpointStats(hours)
	if err != nil {
		return err
	}

	filename := filepath.Join(outputDir, "summary.txt")

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Endpoint Connectivity Report\n")
	fmt.Fprintf(file, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Period: Last %d hours\n\n", hours)
	fmt.Fprintln(file, strings.Repeat("=", 60))

	group := ""

	for _, st := range stats {
		if st.Group != group {
			group = st.Group
			fmt.Fprintf(file, "\nGROUP: %s\n\n", group)
		}

		uptime := float64(st.PingsOK) / float64(st.PingsSent) * 100

		fmt.Fprintf(file, "Endpoint: %s (%s)\n", st.Hostname, st.TargetIP)
		fmt.Fprintf(file, "  Total Pings: %d\n", st.PingsSent)
		fmt.Fprintf(file, "  Successful: %d (%.2f%%)\n", st.PingsOK, uptime)
		fmt.Fprintf(file, "  Packet Loss: %.2f%%\n", st.PacketLossPct)

		if st.PingsOK > 0 {
			fmt.Fprintf(file, "  Average Latency: %.2f ms\n", st.AvgLatencyMS)
			fmt.Fprintf(file, "  Min Latency: %.0f ms\n", st.MinLatencyMS)
			fmt.Fprintf(file, "  Max Latency: %.0f ms\n", st.MaxLatencyMS)
		}
		fmt.Fprintln(file)
	}

	fmt.Fprintln(file, strings.Repeat("=", 60))

	return nil
}
