package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pustaka-app/pustaka/internal/models"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive catalog shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl(cmd.Context(), a)
			return nil
		},
	}
}

// repl runs the interactive loop, accepting commands to manage the
// catalog until exit or end of input.
func repl(ctx context.Context, a *app) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("pustaka> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register <user>, login <user>, logout, whoami, add, list, search <query>, get <id>, edit <id>, delete <id>, exit")
		case "register":
			if len(args) < 2 {
				fmt.Println("Usage: register <username>")
				continue
			}
			pw, err := promptPassword("Password: ")
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := a.auth.Register(ctx, args[1], pw); err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			fmt.Println("Registered and signed in as", args[1])
		case "login":
			if len(args) < 2 {
				fmt.Println("Usage: login <username>")
				continue
			}
			pw, err := promptPassword("Password: ")
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := a.auth.Login(ctx, args[1], pw); err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			fmt.Println("Signed in as", args[1])
		case "logout":
			if err := a.auth.Logout(ctx); err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			fmt.Println("Signed out")
		case "whoami":
			user, ok, err := a.auth.CurrentUser(ctx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if !ok {
				fmt.Println("Not signed in")
				continue
			}
			fmt.Println(user)
		case "add":
			patch := promptForItem(scanner)
			it, err := a.catalog.Create(ctx, patch)
			if err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			fmt.Println("Created item", it.ID)
		case "list":
			items, err := a.catalog.List(ctx)
			if err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			listItems(items)
		case "search":
			if len(args) < 2 {
				fmt.Println("Usage: search <query>")
				continue
			}
			items, err := a.catalog.Search(ctx, strings.Join(args[1:], " "))
			if err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			listItems(items)
		case "get":
			if len(args) < 2 {
				fmt.Println("Usage: get <id>")
				continue
			}
			it, err := a.catalog.Get(ctx, args[1])
			if err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			printItem(it)
		case "edit":
			if len(args) < 2 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			patch := promptForItem(scanner)
			if _, err := a.catalog.Update(ctx, args[1], patch); err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			fmt.Println("Item updated")
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if err := a.catalog.Delete(ctx, args[1]); err != nil {
				fmt.Println(friendlyErr(err))
				continue
			}
			fmt.Println("Item deleted")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func listItems(items []models.Item) {
	if len(items) == 0 {
		fmt.Println("No items")
		return
	}
	for _, it := range items {
		fmt.Printf("%s  %s — %s\n", it.ID, it.Name, it.Author)
	}
}

// promptForItem reads item fields one per line. Blank answers leave the
// field unset, so an edit keeps the stored value.
func promptForItem(scanner *bufio.Scanner) models.ItemPatch {
	var p models.ItemPatch
	prompt := func(label string, dst **string) {
		fmt.Printf("%s: ", label)
		if !scanner.Scan() {
			return
		}
		v := strings.TrimSpace(scanner.Text())
		if v != "" {
			*dst = &v
		}
	}
	prompt("Name", &p.Name)
	prompt("Author", &p.Author)
	prompt("Category", &p.Category)
	prompt("Details", &p.Details)
	prompt("Publisher", &p.Penerbit)
	prompt("Format", &p.Format)
	prompt("Publication date", &p.PublicationDate)
	prompt("Image URL", &p.ImageURL)
	prompt("Rating", &p.Rating)
	return p
}
