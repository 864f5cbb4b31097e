package iohistory

import (
	"fmt"

	"github.com/huangsam/compass/schema"
)

// PrintHistoryStatus prints snapshot history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Snapshots: %d\n", status.TotalSnapshots)
	fmt.Printf("Tracked Projects: %d\n", status.TotalProjects)
	if status.TotalSnapshots > 0 {
		fmt.Printf("Last Snapshot: %s\n", status.LastSnapshotTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Snapshot: %s\n", status.OldestSnapshot.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}
