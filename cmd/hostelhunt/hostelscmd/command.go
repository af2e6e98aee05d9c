// Package hostelscmd implements hostel browsing and the favorite
// toggle.
package hostelscmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/Mitch2826/Hostel-Hunt/internal/api"
	"github.com/Mitch2826/Hostel-Hunt/internal/cmdutils"
	"github.com/Mitch2826/Hostel-Hunt/internal/model"
)

func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hostels",
		Aliases: []string{"hostel"},
		Short:   "Browse hostels and manage favorites",
	}

	cmd.AddCommand(listCmd(), searchCmd(), showCmd(), favoriteCmd(), favoritesCmd())

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all hostels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			hostels, err := a.Catalog.List(ctx)
			if err != nil {
				return oops.In("hostels").Wrapf(err, "Failed to list hostels")
			}

			favorites := a.Bookings.Favorites()
			for _, h := range hostels {
				printHostel(cmd, h, slices.Contains(favorites, h.ID))
			}

			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	var (
		location string
		maxPrice float64
		page     int
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search hostels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Catalog.Search(ctx, api.SearchQuery{
				Location: location,
				MaxPrice: maxPrice,
				Page:     page,
				PerPage:  perPage,
			})
			if err != nil {
				return oops.In("hostels").Wrapf(err, "Search failed")
			}

			favorites := a.Bookings.Favorites()
			for _, h := range result.Hostels {
				printHostel(cmd, h, slices.Contains(favorites, h.ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d match(es), page %d\n", result.Total, result.Page)

			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "filter by location")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum nightly price")
	cmd.Flags().IntVar(&page, "page", 1, "result page")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "results per page")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <hostel-id>",
		Short: "Show one hostel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.In("hostels").Wrapf(err, "Invalid hostel id")
			}

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			hostel := a.Bookings.HostelByID(ctx, id)
			if hostel == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No hostel %d\n", id)
				return nil
			}

			printHostel(cmd, *hostel, slices.Contains(a.Bookings.Favorites(), hostel.ID))
			if hostel.Description != "" {
				fmt.Fprintln(cmd.OutOrStdout(), hostel.Description)
			}
			if len(hostel.Amenities) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Amenities:", strings.Join(hostel.Amenities, ", "))
			}

			return nil
		},
	}
}

func favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <hostel-id>",
		Short: "Toggle a hostel in your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.In("hostels").Wrapf(err, "Invalid hostel id")
			}

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Bookings.ToggleFavorite(ctx, id); err != nil {
				return oops.In("hostels").Wrapf(err, "Failed to save favorites")
			}

			if slices.Contains(a.Bookings.Favorites(), id) {
				fmt.Fprintf(cmd.OutOrStdout(), "Added hostel %d to favorites\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed hostel %d from favorites\n", id)
			}

			return nil
		},
	}
}

func favoritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List favorite hostel ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			favorites := a.Bookings.Favorites()
			if len(favorites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites")
				return nil
			}

			for _, id := range favorites {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}

			return nil
		},
	}
}

func printHostel(cmd *cobra.Command, h model.Hostel, favorite bool) {
	marker := " "
	if favorite {
		marker = "*"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s #%d  %s  %s  %.2f/night  %.1f\n",
		marker, h.ID, h.Name, h.Location, h.Price, h.Rating)
}
