// Command palette is the client-side driver for the draft slot store: it
// previews and edits the working palette, manages the six local draft slots,
// exports the resource file and runs the backup/restore/sync flows against
// the remote draft service.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/debemdeboas/palette-drafts/internal/config"
	"github.com/debemdeboas/palette-drafts/internal/db"
	"github.com/debemdeboas/palette-drafts/internal/draft"
	"github.com/debemdeboas/palette-drafts/internal/logger"
	"github.com/debemdeboas/palette-drafts/internal/persist"
	"github.com/debemdeboas/palette-drafts/internal/syncer"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: palette <command> [flags]

Commands:
  preview       render card mockups for the working palette or a slot
  list          list the six draft slots
  save          save the working palette into the first empty slot
  load          print a saved draft and make it current
  rename        rename a draft slot
  delete        clear a draft slot
  export        write the palette resource XML
  backup        push all non-empty slots to the draft service
  restore       pull the remote drafts and merge them into local slots
  sync          push a single slot to the draft service (replaces remote list)
  switch        load a single draft from the draft service into its slot
  clear-remote  clear all drafts on the draft service
  status        check draft service health`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]
	args := os.Args[2:]

	log := logger.New(envOr("PALETTE_LOG_LEVEL", "warn"))
	config.SetLogger(log)
	db.SetLogger(log)
	persist.SetLogger(log)
	draft.SetLogger(log)
	syncer.SetLogger(log)

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file loaded")
	}
	if err := config.LoadConfig(envOr("PALETTE_CONFIG", "config.yaml")); err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	cfg := config.AppConfig

	store := draft.New(openMirror(cfg))
	if err := store.Hydrate(); err != nil {
		log.Warn().Err(err).Msg("Could not hydrate drafts from local storage")
	}

	client := syncer.NewClient(cfg.Remote.URL, time.Duration(cfg.Remote.TimeoutSeconds)*time.Second)
	coord := syncer.NewCoordinator(store, client)

	ctx := context.Background()

	var err error
	switch command {
	case "preview":
		err = cmdPreview(store, args)
	case "list":
		err = cmdList(store)
	case "save":
		err = cmdSave(store, args)
	case "load":
		err = cmdLoad(store, args)
	case "rename":
		err = cmdRename(store, args)
	case "delete":
		err = cmdDelete(store, args)
	case "export":
		err = cmdExport(store, args)
	case "backup":
		err = cmdBackup(ctx, coord)
	case "restore":
		err = cmdRestore(ctx, coord, args)
	case "sync":
		err = cmdSync(ctx, coord, args)
	case "switch":
		err = cmdSwitch(ctx, coord, args)
	case "clear-remote":
		err = cmdClearRemote(ctx, coord, args)
	case "status":
		err = cmdStatus(ctx, client)
	default:
		usage()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openMirror(cfg *config.Config) persist.Store {
	switch cfg.Storage.Type {
	case "sqlite":
		database := db.NewSQLite(cfg.Storage.Path)
		if err := database.Init(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return persist.NewSQLiteStore(database)
	case "memory":
		return persist.NewMemoryStore()
	default:
		return persist.NewFileStore(cfg.Storage.Path)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// confirm asks the user on the terminal. Core operations never prompt; they
// take the answer produced here.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
