package report

import (
	"fmt"
	"io"
	"time"

	"github.com/babarot/diet/internal/drive"
	"github.com/babarot/diet/internal/retention"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// FormatSize renders a byte count in KB with one decimal, or "N/A"
func FormatSize(size *int64) string {
	if size == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f KB", float64(*size)/1024)
}

// Reporter prints progress to the console and mirrors every event worth
// keeping into the journal.
type Reporter struct {
	out     io.Writer
	journal *Journal
	verbose bool
	now     func() time.Time
}

// NewReporter creates a Reporter. journal may be nil.
func NewReporter(out io.Writer, journal *Journal, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		journal: journal,
		verbose: verbose,
		now:     time.Now,
	}
}

var (
	headerColor = color.New(color.FgHiGreen, color.Bold).SprintfFunc()
	folderColor = color.New(color.FgHiCyan).SprintFunc()
	warnColor   = color.New(color.FgYellow).SprintfFunc()
	errorColor  = color.New(color.FgRed).SprintfFunc()
	okColor     = color.New(color.FgGreen).SprintfFunc()
)

func (r *Reporter) BeginContainer(c drive.Container) {
	fmt.Fprintf(r.out, "\nCleaning folder: %s (ID: %s)\n", folderColor(c.Name), c.ID)
}

// Filtered reports how many items the filters dropped, in verbose mode only
func (r *Reporter) Filtered(c drive.Container, filtered, tooRecent int) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "Filtered %d files due to extension/exclude filters.\n", filtered)
	if tooRecent > 0 {
		fmt.Fprintf(r.out, "Skipped %d files newer than the age cutoff.\n", tooRecent)
	}
}

// Pending lists the remove set and journals every entry
func (r *Reporter) Pending(c drive.Container, items []drive.Item) {
	if len(items) == 0 {
		fmt.Fprintf(r.out, "[%s] No files to remove.\n", c)
		return
	}

	fmt.Fprintf(r.out, "\n[%s] Files that will be deleted:\n", c)

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Name", "ID", "Modified", "Created", "Size", "Age"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, item := range items {
		table.Append([]string{
			item.Name,
			item.ID,
			item.ModifiedTime,
			item.CreatedTime,
			FormatSize(item.Size),
			r.age(item.ModifiedTime),
		})
		r.journal.Pending(c, item)
	}
	table.Render()
}

func (r *Reporter) age(ts string) string {
	t, ok := retention.ParseTimestamp(ts)
	if !ok {
		return "-"
	}
	return humanize.RelTime(t, r.now(), "ago", "from now")
}

func (r *Reporter) DryRun(c drive.Container, pending int) {
	fmt.Fprintln(r.out, warnColor("--- DRY RUN --- Skipping file deletion."))
	if pending > 0 {
		r.journal.Aborted(c, "dry run", pending)
	}
}

func (r *Reporter) Declined(c drive.Container, pending int) {
	fmt.Fprintln(r.out, warnColor("Aborting deletion."))
	r.journal.Aborted(c, "declined", pending)
}

func (r *Reporter) Deleting(c drive.Container, item drive.Item) {
	if r.verbose {
		fmt.Fprintf(r.out, "Deleting %s (ID: %s)\n", item.Name, item.ID)
	}
}

func (r *Reporter) Deleted(c drive.Container, item drive.Item) {
	r.journal.Deleted(c, item)
}

func (r *Reporter) DeleteFailed(c drive.Container, item drive.Item, err error) {
	fmt.Fprintln(r.out, errorColor("Error deleting %s: %v", item.Name, err))
	r.journal.DeleteFailed(c, item, err)
}

// ContainerFailed reports a folder that could not be processed at all
func (r *Reporter) ContainerFailed(c drive.Container, err error) {
	fmt.Fprintln(r.out, errorColor("[%s] %v", c, err))
	r.journal.ContainerFailed(c, err)
}

// MetadataFailed reports a name lookup that fell back to the id
func (r *Reporter) MetadataFailed(id string, err error) {
	fmt.Fprintln(r.out, warnColor("Could not retrieve folder name for %s: %v", id, err))
}

// EnumerationFailed reports a subtree whose subfolders could not be listed
func (r *Reporter) EnumerationFailed(c drive.Container, err error) {
	fmt.Fprintln(r.out, errorColor("An error occurred during folder fetch in %s: %v", c, err))
	r.journal.ContainerFailed(c, fmt.Errorf("folder fetch: %w", err))
}

func (r *Reporter) ContainerSummary(c drive.Container, s Summary) {
	fmt.Fprintf(r.out, "Kept %d files. Deleted %d files. Skipped %d. Errors %d.\n",
		s.Kept, s.Deleted, s.Skipped, s.Errors)
	r.journal.Summary(c, s)
}

func (r *Reporter) Total(s Summary) {
	fmt.Fprintf(r.out, "\n%s\n", headerColor("=== SUMMARY ==="))
	fmt.Fprintf(r.out, "Total files found: %d\n", s.Found)
	fmt.Fprintf(r.out, "Total kept: %d\n", s.Kept)
	fmt.Fprintf(r.out, "Total deleted: %s\n", okColor("%d", s.Deleted))
	fmt.Fprintf(r.out, "Total skipped: %d\n", s.Skipped)
	if s.Errors > 0 {
		fmt.Fprintf(r.out, "Total errors: %s\n", errorColor("%d", s.Errors))
	} else {
		fmt.Fprintf(r.out, "Total errors: %d\n", s.Errors)
	}
	r.journal.Total(s)
}
