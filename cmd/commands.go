package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"photo_album/pkg/config"
	"photo_album/pkg/metrics"
	"photo_album/pkg/middleware"
	"photo_album/pkg/models"
	"photo_album/pkg/people"
)

// Capture sources accepted by add. The store does not care which one it was.
const (
	sourceCamera  = "camera"
	sourceLibrary = "library"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	reg := metrics.NewRegistry()
	var showMetrics bool

	// withStore opens the album for the duration of one command.
	withStore := func(run func(cmd *cobra.Command, args []string, store *people.Store) error) middleware.RunE {
		return middleware.CommandLogger(reg, func(cmd *cobra.Command, args []string) (err error) {
			a, err := openApp(cmd.Context(), cfg, reg)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			return run(cmd, args, a.store)
		})
	}

	root := &cobra.Command{
		Use:          "album",
		Short:        "Keep a photo album of people",
		SilenceUsage: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !showMetrics {
				return nil
			}
			return reg.WriteText(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print counters to stderr after the command")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List people in display order",
		Long: `List people as index, quoted name and image reference, separated by tabs.
Names are quoted Go-style so tabs and newlines in a name stay on one line.`,
		Args: cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *people.Store) error {
			out := cmd.OutOrStdout()
			for i, p := range store.List() {
				if err := printPerson(out, i, p); err != nil {
					return err
				}
			}
			return nil
		}),
	}

	var source string
	addCmd := &cobra.Command{
		Use:   "add [file|-]",
		Short: "Add a person from a photo",
		Long: `Add a person from a photo file, or from stdin when the file is "-" or omitted.
The photo is stored as JPEG and the person is named "Unknown" until renamed.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if source != sourceCamera && source != sourceLibrary {
				return fmt.Errorf("unknown source %q: want %s or %s", source, sourceCamera, sourceLibrary)
			}
			return nil
		},
		RunE: withStore(func(cmd *cobra.Command, args []string, store *people.Store) error {
			data, err := readCapture(cmd, args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			index, person, err := store.Add(ctx, data)
			if err != nil {
				return err
			}
			log.Ctx(ctx).Debug().Str("source", source).Int("index", index).Msg("capture stored")
			return printPerson(cmd.OutOrStdout(), index, person)
		}),
	}
	addCmd.Flags().StringVar(&source, "source", sourceLibrary, "where the photo came from: camera or library")

	renameCmd := &cobra.Command{
		Use:   "rename <index> <name...>",
		Short: "Rename the person at index",
		Long: `Rename the person at index. Everything after the index is the new name,
joined by spaces, so names may start with "-". Pass "" for an empty name.
Flags must come before the index; use "--" before a negative index.`,
		Args: cobra.MinimumNArgs(2),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *people.Store) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return store.Rename(cmd.Context(), index, strings.Join(args[1:], " "))
		}),
	}

	removeCmd := &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete the person at index and their photo",
		Long: `Delete the person at index and their photo. Later people move up by one.
Use "--" before a negative index.`,
		Args: cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *people.Store) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			_, err = store.Remove(cmd.Context(), index)
			return err
		}),
	}

	var outPath string
	showCmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Write the photo of the person at index",
		Long: `Write the stored JPEG of the person at index to stdout or to --output.
Use "--" before a negative index.`,
		Args: cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *people.Store) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			data, err := store.Image(cmd.Context(), index)
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(outPath, data, 0o644)
		}),
	}
	showCmd.Flags().StringVarP(&outPath, "output", "o", "", "file to write the JPEG to (default stdout)")

	// Positional arguments after the index are data, not flags.
	renameCmd.Flags().SetInterspersed(false)
	removeCmd.Flags().SetInterspersed(false)

	root.AddCommand(listCmd, addCmd, renameCmd, removeCmd, showCmd)
	return root
}

// printPerson writes one tab-separated line with the name quoted.
func printPerson(w io.Writer, index int, p models.Person) error {
	_, err := fmt.Fprintf(w, "%d\t%q\t%s\n", index, p.Name, p.Image)
	return err
}

func readCapture(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read photo from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return data, nil
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return index, nil
}
