package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/sendgate/internal/ports/primary"
)

// CreatorAdapter is a thin adapter that translates CLI operations to
// CreatorService calls.
type CreatorAdapter struct {
	service primary.CreatorService
	out     io.Writer
}

// NewCreatorAdapter creates a new CreatorAdapter with the given service.
func NewCreatorAdapter(service primary.CreatorService, out io.Writer) *CreatorAdapter {
	return &CreatorAdapter{
		service: service,
		out:     out,
	}
}

// Add registers a creator.
func (a *CreatorAdapter) Add(ctx context.Context, req primary.AddCreatorRequest) error {
	if err := a.service.AddCreator(ctx, req); err != nil {
		return fmt.Errorf("failed to add creator: %w", err)
	}

	fmt.Fprintf(a.out, "%s Creator %s registered (%s page)\n", color.GreenString("✓"), req.ID, req.PageType)
	return nil
}

// List renders all registered creators.
func (a *CreatorAdapter) List(ctx context.Context) ([]primary.Creator, error) {
	creators, err := a.service.ListCreators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}

	if len(creators) == 0 {
		fmt.Fprintln(a.out, "No creators registered.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Register your first creator:")
		fmt.Fprintln(a.out, "  sendgate creator add creator-001 --page-type paid")
		return creators, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPAGE\tREGISTERED")
	fmt.Fprintln(w, "--\t----\t----\t----------")
	for _, c := range creators {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.DisplayName, c.PageType, c.CreatedAt)
	}
	w.Flush()

	return creators, nil
}
