// Browse command: interactive paging and live search over one resource.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/resource"
	"github.com/webdekho/schoolctl/pkg/types"
)

var browseCmd = &cobra.Command{
	Use:   "browse <resource>",
	Short: "Browse a resource interactively",
	Long: `Browse opens an interactive prompt over the named resource. Typed text
becomes the search term (applied after the input settles); commands move
between pages:

  :n          next page
  :p          previous page
  :page N     jump to page N
  :size N     set page size (returns to page 1)
  :q          quit

Example:
  schoolctl browse complaints`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

// browser drives one interactive session: the query state requeries and
// redraws whenever the effective query changes.
type browser struct {
	mu       sync.Mutex
	session  *session
	resource string
	state    *resource.QueryState
	total    int
}

func runBrowse(cmd *cobra.Command, args []string) error {
	resourceName := args[0]
	if !types.KnownResource(resourceName) {
		return fmt.Errorf("unknown resource %q (valid: %s)", resourceName, types.ResourceNamesString())
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	b := &browser{
		session:  s,
		resource: resourceName,
		state:    resource.NewQueryState(types.DefaultPageSize, resource.SearchDelay),
	}
	b.state.OnChange = func(q types.ListQuery) { b.show(cmd, q) }
	defer b.state.Stop()

	// Initial page.
	b.show(cmd, b.state.Query())

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == ":q" {
			break
		}
		if err := b.handle(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

// handle interprets one input line: a command when it starts with ':',
// otherwise new search input.
func (b *browser) handle(line string) error {
	switch {
	case line == ":n":
		b.state.SetPage(b.state.Query().Page+1, b.lastTotal())
	case line == ":p":
		b.state.SetPage(b.state.Query().Page-1, b.lastTotal())
	case strings.HasPrefix(line, ":page "):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":page ")))
		if err != nil {
			return fmt.Errorf("invalid page %q", line)
		}
		b.state.SetPage(n, b.lastTotal())
	case strings.HasPrefix(line, ":size "):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":size ")))
		if err != nil || n < 1 {
			return fmt.Errorf("invalid page size %q", line)
		}
		b.state.SetPageSize(n)
	case strings.HasPrefix(line, ":"):
		return fmt.Errorf("unknown command %q", line)
	default:
		b.state.SetSearch(line)
	}
	return nil
}

// show fetches the page for q and redraws the table.
func (b *browser) show(cmd *cobra.Command, q types.ListQuery) {
	page, err := b.session.manager.Query(cmd.Context(), b.resource, q)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}

	b.mu.Lock()
	b.total = page.Total
	b.mu.Unlock()

	fmt.Println()
	if q.Search != "" {
		fmt.Printf("search: %q\n", q.Search)
	}
	if err := printListPage(b.resource, page, q); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
}

func (b *browser) lastTotal() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}
