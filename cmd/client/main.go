// Package main is the local winslog client: an interactive shell for
// managing profiles and journaling wins, losses and opportunities for
// growth against an on-disk store.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akulikov/winslog/internal/logger"
	"github.com/akulikov/winslog/internal/models"
	"github.com/akulikov/winslog/internal/repository"
	"github.com/akulikov/winslog/internal/service"
)

var (
	version   string
	buildDate string
)

func main() {
	var (
		dataDir string
		showVer bool
	)

	flag.StringVar(&dataDir, "data", "./winslog-data", "directory holding journal data")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("winslog Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	// Persistence failures are logged, never shown as errors; keep the
	// shell quiet below Error level.
	log := logger.New()
	if err := log.Init("Error"); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	store, err := repository.NewFile(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open data dir: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	profiles := service.NewProfileService(store, log.Log)
	journal := service.NewJournalService(store, log.Log)
	profiles.Load(ctx)
	journal.SetActiveProfile(ctx, profiles.ActiveID())

	repl(ctx, profiles, journal)
}

// repl runs the interactive shell loop, accepting commands to manage
// profiles and entries.
func repl(ctx context.Context, profiles *service.ProfileService, journal *service.JournalService) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("%s> ", promptName(profiles))
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
			fmt.Println("Available commands: help, profiles, create, switch <name>, lock, add, list [win|loss|ofg], today, week, stats, delete <id>, exit")
		case "profiles":
			printProfiles(profiles)
		case "create":
			p := promptProfile(scanner)
			if _, err := profiles.Create(ctx, p.Name, p.Emoji, p.PIN); err != nil {
				fmt.Printf("Failed to create profile: %v\n", err)
			} else {
				fmt.Printf("Profile %q created\n", p.Name)
			}
		case "switch":
			if len(args) < 2 {
				fmt.Println("Usage: switch <name>")
				continue
			}
			switchProfile(ctx, scanner, profiles, journal, strings.Join(args[1:], " "))
		case "lock":
			profiles.Deactivate(ctx)
			journal.SetActiveProfile(ctx, "")
			fmt.Println("Profile locked")
		case "add":
			if profiles.ActiveID() == "" {
				fmt.Println("No active profile: the entry will not be saved. Use 'switch' first.")
			}
			e, ok := promptEntry(scanner)
			if !ok {
				continue
			}
			journal.AddEntry(ctx, e)
			fmt.Printf("Entry %s added\n", e.ID)
		case "list":
			if len(args) > 1 {
				t, err := models.ParseEntryType(args[1])
				if err != nil {
					fmt.Println(err)
					continue
				}
				printEntries(journal.EntriesForType(t))
			} else {
				printEntries(journal.Entries())
			}
		case "today":
			printEntries(journal.EntriesForDay(time.Now()))
		case "week":
			printEntries(journal.EntriesThisWeek())
		case "stats":
			printStats(journal)
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			journal.DeleteEntry(ctx, args[1])
			fmt.Println("Entry deleted")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// promptName returns the shell prompt label: the active profile's name,
// or the app name when no profile is active.
func promptName(profiles *service.ProfileService) string {
	activeID := profiles.ActiveID()
	for _, p := range profiles.List() {
		if p.ID == activeID {
			return p.Name
		}
	}
	return "winslog"
}

func printProfiles(profiles *service.ProfileService) {
	list := profiles.List()
	if len(list) == 0 {
		fmt.Println("No profiles yet. Use 'create' to add one.")
		return
	}
	activeID := profiles.ActiveID()
	for _, p := range list {
		marker := " "
		if p.ID == activeID {
			marker = "*"
		}
		lock := ""
		if p.PIN != "" {
			lock = " [pin]"
		}
		fmt.Printf("%s %s %s%s\n", marker, p.Emoji, p.Name, lock)
	}
}

func promptProfile(scanner *bufio.Scanner) models.Profile {
	fmt.Print("Enter name: ")
	scanner.Scan()
	name := strings.TrimSpace(scanner.Text())

	fmt.Print("Enter emoji: ")
	scanner.Scan()
	emoji := strings.TrimSpace(scanner.Text())

	fmt.Print("Enter PIN (leave empty for none): ")
	scanner.Scan()
	pin := strings.TrimSpace(scanner.Text())

	return models.Profile{Name: name, Emoji: emoji, PIN: pin}
}

// switchProfile activates the profile with the given name, prompting for
// a PIN when the profile sets one, and swaps the engine to its bucket.
func switchProfile(ctx context.Context, scanner *bufio.Scanner, profiles *service.ProfileService, journal *service.JournalService, name string) {
	var target *models.Profile
	for _, p := range profiles.List() {
		if p.Name == name {
			target = &p
			break
		}
	}
	if target == nil {
		fmt.Printf("No profile named %q\n", name)
		return
	}

	pin := ""
	if target.PIN != "" {
		fmt.Print("PIN: ")
		scanner.Scan()
		pin = strings.TrimSpace(scanner.Text())
	}

	if err := profiles.Activate(ctx, target.ID, pin); err != nil {
		fmt.Printf("Cannot switch: %v\n", err)
		return
	}
	journal.SetActiveProfile(ctx, target.ID)
	fmt.Printf("Switched to %s %s\n", target.Emoji, target.Name)
}

func promptEntry(scanner *bufio.Scanner) (models.JournalEntry, bool) {
	fmt.Print("Enter type (win/loss/ofg): ")
	scanner.Scan()
	t, err := models.ParseEntryType(strings.TrimSpace(scanner.Text()))
	if err != nil {
		fmt.Println(err)
		return models.JournalEntry{}, false
	}

	fmt.Print("Enter text: ")
	scanner.Scan()
	content := strings.TrimSpace(scanner.Text())
	if content == "" {
		fmt.Println("Entry text must not be empty")
		return models.JournalEntry{}, false
	}

	return models.JournalEntry{
		ID:      uuid.NewString(),
		Type:    t,
		Content: content,
		Date:    time.Now(),
	}, true
}

func printEntries(entries []models.JournalEntry) {
	if len(entries) == 0 {
		fmt.Println("No entries")
		return
	}
	for _, e := range entries {
		meta, _ := models.MetaFor(e.Type)
		fmt.Printf("%s  %s  [%s]  %s\n  id: %s\n",
			e.Date.In(time.Local).Format("2006-01-02 15:04"),
			meta.Icon, e.Type, e.Content, e.ID)
	}
}

func printStats(journal *service.JournalService) {
	fmt.Printf("Current streak: %d day(s)\n", journal.CurrentStreak())
	fmt.Printf("Best weekday: %s\n", journal.BestWeekday())

	breakdown := journal.EntryBreakdown()
	for _, t := range models.EntryTypes {
		b := breakdown[t]
		fmt.Printf("  %-5s %3d  (%.0f%%)\n", t, b.Count, b.Share*100)
	}

	fmt.Println("This week:")
	for _, day := range journal.WeeklyActivity() {
		fmt.Printf("  %s  %s\n", day.Day.Format("Mon 02"), strings.Repeat("#", day.Count))
	}
}
