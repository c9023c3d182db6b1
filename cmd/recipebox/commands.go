package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipebox/internal/dataset"
	"github.com/hammamikhairi/recipebox/internal/display"
)

func newListCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the recipe cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				rt.ctrl.SetSearchQuery(query)
				out := cmd.OutOrStdout()
				visible := rt.ctrl.ListVisible()
				if len(visible) == 0 {
					fmt.Fprintln(out, "no recipes")
					return nil
				}
				for i, r := range visible {
					shown := rt.ctrl.IngredientsShown(r.ID)
					if rt.styled {
						fmt.Fprintln(out, display.RenderCard(i+1, r, shown, display.TermWidth()))
					} else {
						fmt.Fprint(out, display.PlainCard(i+1, r, shown))
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "only show recipes whose name contains text")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Print one recipe in full",
		Long:  "Print one recipe in full. <ref> is a card number from 'list' or a recipe id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				r, ok := resolveRef(rt.ctrl, args[0])
				if !ok {
					return fmt.Errorf("no recipe %q", args[0])
				}
				fmt.Fprint(cmd.OutOrStdout(), display.RenderMarkdown(display.RecipeMarkdown(r), rt.styled))
				return nil
			})
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a dataset file without starting the editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := dataset.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d recipes ok\n", args[0], len(recipes))
			return nil
		},
	}
}
