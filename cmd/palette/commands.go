package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/debemdeboas/palette-drafts/internal/draft"
	"github.com/debemdeboas/palette-drafts/internal/export"
	"github.com/debemdeboas/palette-drafts/internal/render"
	"github.com/debemdeboas/palette-drafts/internal/syncer"
)

// colorFlags collects repeated -set key=hex flags.
type colorFlags []string

func (c *colorFlags) String() string { return fmt.Sprint([]string(*c)) }
func (c *colorFlags) Set(v string) error {
	*c = append(*c, v)
	return nil
}

func applyColors(store *draft.Store, sets colorFlags) error {
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid -set value %q, want key=hex", kv)
		}
		if err := store.SetColor(key, value); err != nil {
			return err
		}
	}
	return nil
}

func cmdPreview(store *draft.Store, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	slot := fs.Int("slot", 0, "preview a saved slot instead of the working palette")
	var sets colorFlags
	fs.Var(&sets, "set", "override a color, key=hex (repeatable)")
	fs.Parse(args)

	if *slot != 0 {
		if _, err := store.LoadDraft(*slot); err != nil {
			return err
		}
	}
	if err := applyColors(store, sets); err != nil {
		return err
	}

	fmt.Println(render.Cards(store.Colors()))
	return nil
}

func cmdList(store *draft.Store) error {
	current := store.Current()
	for _, d := range store.GetAll() {
		marker := " "
		if d.ID == current {
			marker = "*"
		}
		if d.IsEmpty() {
			fmt.Printf("%s #%d  %-20s (empty)\n", marker, d.ID, d.Name)
			continue
		}
		fmt.Printf("%s #%d  %-20s saved %s\n", marker, d.ID, d.Name,
			time.UnixMilli(d.Timestamp).Format("2006-01-02 15:04"))
	}
	return nil
}

func cmdSave(store *draft.Store, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	name := fs.String("name", "", "draft name")
	overwrite := fs.Bool("overwrite", false, "overwrite slot 1 when all slots are full")
	var sets colorFlags
	fs.Var(&sets, "set", "override a color, key=hex (repeatable)")
	fs.Parse(args)

	if err := applyColors(store, sets); err != nil {
		return err
	}

	decision := *overwrite
	if !decision && store.FirstEmptySlot() == -1 {
		decision = confirm("All draft slots are full. Overwrite draft 1?")
	}

	id, err := store.SaveDraft(*name, decision)
	if errors.Is(err, draft.ErrSlotsFull) {
		fmt.Println("Save aborted.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Draft saved to slot #%d\n", id)
	return nil
}

func cmdLoad(store *draft.Store, args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	slot := fs.Int("slot", 0, "slot id to load")
	fs.Parse(args)

	d, err := store.LoadDraft(*slot)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded draft: %s\n\n", d.Name)
	fmt.Println(render.Cards(store.Colors()))
	return nil
}

func cmdRename(store *draft.Store, args []string) error {
	fs := flag.NewFlagSet("rename", flag.ExitOnError)
	slot := fs.Int("slot", 0, "slot id to rename")
	name := fs.String("name", "", "new draft name")
	fs.Parse(args)

	if err := store.RenameDraft(*slot, *name); err != nil {
		return err
	}
	fmt.Println("Draft renamed")
	return nil
}

func cmdDelete(store *draft.Store, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	slot := fs.Int("slot", 0, "slot id to clear")
	yes := fs.Bool("yes", false, "skip confirmation")
	fs.Parse(args)

	d, ok := store.Get(*slot)
	if !ok || d.IsEmpty() {
		return draft.ErrEmptySlot
	}

	if !*yes && !confirm(fmt.Sprintf("Delete draft %q?", d.Name)) {
		fmt.Println("Delete aborted.")
		return nil
	}

	if err := store.DeleteDraft(*slot); err != nil {
		return err
	}
	fmt.Println("Draft deleted")
	return nil
}

func cmdExport(store *draft.Store, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	slot := fs.Int("slot", 0, "export a saved slot instead of the working palette")
	out := fs.String("o", "", "output file (default stdout)")
	highlight := fs.Bool("highlight", false, "print with syntax highlighting")
	style := fs.String("style", "gruvbox", "chroma style for -highlight")
	fs.Parse(args)

	if *slot != 0 {
		if _, err := store.LoadDraft(*slot); err != nil {
			return err
		}
	}

	xml := export.GenerateXML(store.Colors())

	if *out != "" {
		if err := os.WriteFile(*out, []byte(xml+"\n"), 0644); err != nil {
			return fmt.Errorf("error writing export: %w", err)
		}
		fmt.Printf("Exported to %s\n", *out)
		return nil
	}

	if *highlight {
		return export.HighlightTerminal(os.Stdout, xml, *style)
	}
	fmt.Println(xml)
	return nil
}

func cmdBackup(ctx context.Context, coord *syncer.Coordinator) error {
	count, err := coord.Backup(ctx)
	if errors.Is(err, syncer.ErrNothingToBackup) {
		fmt.Println("No drafts to back up.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Backed up %d drafts to the server\n", count)
	return nil
}

func cmdRestore(ctx context.Context, coord *syncer.Coordinator, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip confirmation")
	fs.Parse(args)

	if !*yes && !confirm("Restoring from the server overwrites local drafts. Continue?") {
		fmt.Println("Restore aborted.")
		return nil
	}

	count, err := coord.Restore(ctx)
	if errors.Is(err, syncer.ErrRemoteEmpty) {
		fmt.Println("No drafts stored on the server.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Restored %d drafts from the server\n", count)
	return nil
}

func cmdSync(ctx context.Context, coord *syncer.Coordinator, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	slot := fs.Int("slot", 0, "slot id to sync")
	yes := fs.Bool("yes", false, "skip confirmation")
	fs.Parse(args)

	// Single-slot sync replaces the whole remote list; make sure the user
	// knows other remote drafts are discarded.
	if !*yes && !confirm("Syncing one draft replaces all drafts on the server. Continue?") {
		fmt.Println("Sync aborted.")
		return nil
	}

	if err := coord.SyncDraft(ctx, *slot); err != nil {
		return err
	}
	fmt.Printf("Slot #%d synced to the server\n", *slot)
	return nil
}

func cmdSwitch(ctx context.Context, coord *syncer.Coordinator, args []string) error {
	fs := flag.NewFlagSet("switch", flag.ExitOnError)
	slot := fs.Int("slot", 0, "slot id to load from the server")
	fs.Parse(args)

	d, err := coord.SwitchDraft(ctx, *slot)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded draft from server: %s\n", d.Name)
	return nil
}

func cmdClearRemote(ctx context.Context, coord *syncer.Coordinator, args []string) error {
	fs := flag.NewFlagSet("clear-remote", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip confirmation")
	fs.Parse(args)

	if !*yes && !confirm("Clear all drafts on the server? This cannot be undone.") {
		fmt.Println("Clear aborted.")
		return nil
	}

	if err := coord.ClearRemote(ctx); err != nil {
		return err
	}
	fmt.Println("Server drafts cleared")
	return nil
}

func cmdStatus(ctx context.Context, client *syncer.Client) error {
	if client.Ping(ctx) {
		fmt.Println("Draft service: ok")
		return nil
	}
	fmt.Println("Draft service: unreachable")
	return nil
}
