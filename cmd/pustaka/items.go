package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pustaka-app/pustaka/internal/models"
	"github.com/pustaka-app/pustaka/internal/repository"
	"github.com/pustaka-app/pustaka/internal/service"
)

// itemFlags binds the item field flags shared by add and edit.
type itemFlags struct {
	name      string
	details   string
	category  string
	author    string
	published string
	image     string
	publisher string
	format    string
	rating    string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "title")
	cmd.Flags().StringVar(&f.details, "details", "", "description")
	cmd.Flags().StringVar(&f.category, "category", "", "category label")
	cmd.Flags().StringVar(&f.author, "author", "", "author")
	cmd.Flags().StringVar(&f.published, "published", "", "publication date")
	cmd.Flags().StringVar(&f.image, "image", "", "cover image URL")
	cmd.Flags().StringVar(&f.publisher, "publisher", "", "publisher")
	cmd.Flags().StringVar(&f.format, "format", "", "format")
	cmd.Flags().StringVar(&f.rating, "rating", "", "rating")
}

// patch builds an ItemPatch from the flags the user actually set, so an
// edit leaves untouched fields alone.
func (f *itemFlags) patch(cmd *cobra.Command) models.ItemPatch {
	var p models.ItemPatch
	if cmd.Flags().Changed("name") {
		p.Name = &f.name
	}
	if cmd.Flags().Changed("details") {
		p.Details = &f.details
	}
	if cmd.Flags().Changed("category") {
		p.Category = &f.category
	}
	if cmd.Flags().Changed("author") {
		p.Author = &f.author
	}
	if cmd.Flags().Changed("published") {
		p.PublicationDate = &f.published
	}
	if cmd.Flags().Changed("image") {
		p.ImageURL = &f.image
	}
	if cmd.Flags().Changed("publisher") {
		p.Penerbit = &f.publisher
	}
	if cmd.Flags().Changed("format") {
		p.Format = &f.format
	}
	if cmd.Flags().Changed("rating") {
		p.Rating = &f.rating
	}
	return p
}

// friendlyErr maps service errors onto the messages shown to the user.
func friendlyErr(err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return errors.New("not signed in; run 'pustaka login' first")
	case errors.Is(err, repository.ErrNotFound):
		return errors.New("no item with that id")
	default:
		return err
	}
}

func printItem(it *models.Item) {
	fmt.Printf("ID:        %s\n", it.ID)
	fmt.Printf("Name:      %s\n", it.Name)
	fmt.Printf("Author:    %s\n", it.Author)
	fmt.Printf("Category:  %s\n", it.Category)
	fmt.Printf("Details:   %s\n", it.Details)
	fmt.Printf("Publisher: %s\n", it.Penerbit)
	fmt.Printf("Format:    %s\n", it.Format)
	fmt.Printf("Published: %s\n", it.PublicationDate)
	fmt.Printf("Rating:    %s\n", it.Rating)
	fmt.Printf("Image:     %s\n", it.ImageURL)
}

func printItemTable(cmd *cobra.Command, items []models.Item) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAUTHOR\tCATEGORY")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Author, it.Category)
	}
	w.Flush()
}

func newAddCmd(a *app) *cobra.Command {
	f := &itemFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.catalog.Create(cmd.Context(), f.patch(cmd))
			if err != nil {
				a.log.Error("create failed", zap.Error(err))
				return friendlyErr(err)
			}
			fmt.Printf("Created item %s\n", it.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.catalog.Search(cmd.Context(), query)
			if err != nil {
				a.log.Error("list failed", zap.Error(err))
				return friendlyErr(err)
			}
			if len(items) == 0 {
				fmt.Println("No items")
				return nil
			}
			printItemTable(cmd, items)
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "search", "", "filter by name, details, or category")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.catalog.Get(cmd.Context(), args[0])
			if err != nil {
				a.log.Error("get failed", zap.String("id", args[0]), zap.Error(err))
				return friendlyErr(err)
			}
			printItem(it)
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	f := &itemFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an item's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.catalog.Update(cmd.Context(), args[0], f.patch(cmd))
			if err != nil {
				a.log.Error("update failed", zap.String("id", args[0]), zap.Error(err))
				return friendlyErr(err)
			}
			fmt.Printf("Updated item %s\n", it.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.catalog.Delete(cmd.Context(), args[0]); err != nil {
				a.log.Error("delete failed", zap.String("id", args[0]), zap.Error(err))
				return friendlyErr(err)
			}
			fmt.Println("Item deleted")
			return nil
		},
	}
}
