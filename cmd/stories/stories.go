// Package stories lists the published impact stories
package stories

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ieee-sl/relief-ledger/cmd/root"
	"github.com/ieee-sl/relief-ledger/internal/ledger"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/spf13/cobra"
)

var mappedOnly bool

// Cmd represents the stories command
var Cmd = &cobra.Command{
	Use:   "stories",
	Short: "List the impact stories that would be published",
	Long: `Fetch the impact-story feed and list every story that survives
validation, with its slug, dates, location and primary media.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := root.GetContainer().GetService().Load(cmd.Context())
		list := snap.Stories
		if mappedOnly {
			list = ledger.MapPoints(list)
		}
		if dups := ledger.DuplicateSlugs(list); len(dups) > 0 {
			root.Log.Warn("Several stories share a slug", logging.F(logging.FieldSlug, dups))
		}
		return Write(cmd.OutOrStdout(), list)
	},
}

func init() {
	Cmd.Flags().BoolVarP(&mappedOnly, "mapped", "m", false, "Only list stories with map coordinates")
}

// Write prints one line per story.
func Write(w io.Writer, list []models.ImpactStory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tDATE\tTITLE\tLOCATION\tMEDIA")
	for _, s := range list {
		date := s.Date
		if s.EndDate != "" {
			date += " - " + s.EndDate
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Slug, date, s.Title, s.Location, mediaLabel(s))
	}
	return tw.Flush()
}

func mediaLabel(s models.ImpactStory) string {
	label := "-"
	if s.Image != nil {
		label = fmt.Sprintf("%s/%s", s.Image.Kind, s.Image.Platform)
	}
	if n := len(s.Gallery); n > 0 {
		label += fmt.Sprintf(" +%d img", n)
	}
	if n := len(s.VideoLinks); n > 0 {
		label += fmt.Sprintf(" +%d video", n)
	}
	return label
}
