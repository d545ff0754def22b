package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/gutwise/internal/browse"
	"github.com/HerbHall/gutwise/pkg/catalog"
	"github.com/HerbHall/gutwise/pkg/source"
)

// tagList is a repeatable -tag flag.
type tagList []string

func (t *tagList) String() string { return strings.Join(*t, ",") }

func (t *tagList) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*t = append(*t, s)
		}
	}
	return nil
}

type browseOptions struct {
	search string
	tags   []string
	id     string
	home   bool
}

func runBrowse(args []string) {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	api := fs.String("api", "http://localhost:8001", "base URL of a running GutWise API")
	fixture := fs.Bool("fixture", false, "browse the embedded catalog instead of an API")
	search := fs.String("search", "", "case-insensitive search term")
	id := fs.String("id", "", "show a single recipe")
	home := fs.Bool("home", false, "show the home page")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	var tags tagList
	fs.Var(&tags, "tag", "dietary tag to require (repeatable)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	var src source.DataSource
	if *fixture {
		src = source.NewFixture(catalog.NewCatalog())
	} else {
		src = source.NewHTTP(*api)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	opts := browseOptions{search: *search, tags: tags, id: *id, home: *home}
	if err := render(ctx, src, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "browse failed: %v\n", err)
		if source.IsRetryable(err) {
			fmt.Fprintln(os.Stderr, "the request may succeed if retried")
		}
		os.Exit(1)
	}
}

func render(ctx context.Context, src source.DataSource, opts browseOptions, w io.Writer) error {
	switch {
	case opts.id != "":
		return printDetail(ctx, src, opts.id, w)
	case opts.home:
		return printHome(ctx, src, w)
	default:
		return printListing(ctx, src, opts, w)
	}
}

func printListing(ctx context.Context, src source.DataSource, opts browseOptions, w io.Writer) error {
	view := browse.NewListingView(src, zap.NewNop())
	if err := view.Mount(ctx); err != nil {
		return err
	}
	defer view.Unmount()

	view.SetSearchTerm(opts.search)
	for _, tag := range opts.tags {
		if !view.State().IsSelected(tag) {
			view.ToggleFilter(tag)
		}
	}

	results := view.Results()
	sum := view.Summary()
	if sum.Active {
		fmt.Fprintf(w, "%d of %d recipes found\n", sum.Matched, sum.Total)
	} else {
		fmt.Fprintf(w, "%d recipes\n", sum.Total)
	}
	for i := range results {
		r := &results[i]
		fmt.Fprintf(w, "  [%s] %s (%s, %s) %s\n", r.ID, r.Title, r.Difficulty, r.CookTime, strings.Join(r.DietaryTags, ", "))
	}
	if len(results) == 0 && sum.Active {
		fmt.Fprintln(w, "  no recipes match; try clearing filters")
	}
	return nil
}

func printDetail(ctx context.Context, src source.DataSource, id string, w io.Writer) error {
	view := browse.NewDetailView(src)
	r, err := view.Load(ctx, id)
	if view.NotFound() {
		fmt.Fprintf(w, "Recipe not found: %s\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\n%s\n\n", r.Title, r.Description)
	fmt.Fprintf(w, "Prep: %s  Cook: %s  Serves: %d  Difficulty: %s\n", r.PrepTime, r.CookTime, r.Servings, r.Difficulty)
	if len(r.DietaryTags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.DietaryTags, ", "))
	}
	fmt.Fprintln(w, "\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}
	fmt.Fprintln(w, "\nInstructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
	if r.Story != "" {
		fmt.Fprintf(w, "\n%s\n", r.Story)
	}
	return nil
}

func printHome(ctx context.Context, src source.DataSource, w io.Writer) error {
	home, err := browse.LoadHome(ctx, src)
	if err != nil {
		return err
	}
	if home.Story != nil {
		fmt.Fprintf(w, "%s\n%s\n\n", home.Story.Title, home.Story.Subtitle)
	}
	fmt.Fprintln(w, "Featured recipes:")
	for i := range home.Featured {
		fmt.Fprintf(w, "  [%s] %s\n", home.Featured[i].ID, home.Featured[i].Title)
	}
	return nil
}
