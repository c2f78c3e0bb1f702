// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package baginfo

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/rosbag-converter/pkg/types"
)

// Write prints a human-readable report of s to w.
func Write(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "Bag:      %s\n", s.Path)
	fmt.Fprintf(w, "Files:    %d (%s)\n", len(s.Files), humanize.IBytes(uint64(s.Size())))
	if hasSQLite3(s) {
		fmt.Fprintf(w, "Messages: %s\n", humanize.Comma(s.MessageCount()))
	}

	for _, f := range s.Files {
		fmt.Fprintf(w, "\n%s  [%s, %s]\n", f.Path, f.Storage, humanize.IBytes(uint64(f.Size)))
		if f.Storage != types.BackendSQLite3 {
			continue
		}
		if !f.Start.IsZero() {
			fmt.Fprintf(w, "  Start:    %s\n", f.Start.Format(time.RFC3339Nano))
			fmt.Fprintf(w, "  End:      %s\n", f.End.Format(time.RFC3339Nano))
			fmt.Fprintf(w, "  Duration: %s\n", f.End.Sub(f.Start))
		}
		if len(f.Topics) == 0 {
			fmt.Fprintln(w, "  No topics.")
			continue
		}
		fmt.Fprintf(w, "  %-30s  %-30s  %-6s  %s\n", "Topic", "Type", "Format", "Messages")
		fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 80))
		for _, t := range f.Topics {
			fmt.Fprintf(w, "  %-30s  %-30s  %-6s  %s\n",
				t.Name, t.Type, t.SerializationFormat, humanize.Comma(t.MessageCount))
		}
	}
}

func hasSQLite3(s *Summary) bool {
	for _, f := range s.Files {
		if f.Storage == types.BackendSQLite3 {
			return true
		}
	}
	return false
}
