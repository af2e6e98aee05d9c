// Package bookingscmd implements the booking list/create/cancel/show
// subcommands.
package bookingscmd

import (
	"fmt"
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/Mitch2826/Hostel-Hunt/internal/cmdutils"
	"github.com/Mitch2826/Hostel-Hunt/internal/model"
)

func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"booking"},
		Short:   "Manage bookings",
	}

	cmd.AddCommand(listCmd(), createCmd(), cancelCmd(), showCmd())

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			bookings := a.Bookings.Bookings()
			if len(bookings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bookings")
				return nil
			}

			for _, b := range bookings {
				printBooking(cmd, b)
			}

			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var (
		hostelID          int
		checkIn, checkOut string
		guests            int
		totalPrice        float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a booking",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			in, err := model.ParseDate(checkIn)
			if err != nil {
				return oops.In("bookings").Wrapf(err, "Invalid check-in date")
			}
			out, err := model.ParseDate(checkOut)
			if err != nil {
				return oops.In("bookings").Wrapf(err, "Invalid check-out date")
			}
			if !out.After(in.Time) {
				return oops.In("bookings").Errorf("check-out must be after check-in")
			}
			if guests < 1 {
				return oops.In("bookings").Errorf("at least one guest is required")
			}

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Bookings.CreateBooking(ctx, model.BookingRequest{
				HostelID:   hostelID,
				CheckIn:    in,
				CheckOut:   out,
				Guests:     guests,
				TotalPrice: totalPrice,
			})
			if err != nil {
				return oops.In("bookings").Wrapf(err, "Failed to create booking")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created booking %d\n", id)

			return nil
		},
	}

	cmd.Flags().IntVar(&hostelID, "hostel", 0, "hostel id")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&guests, "guests", 1, "number of guests")
	cmd.Flags().Float64Var(&totalPrice, "total", 0, "total price")
	_ = cmd.MarkFlagRequired("hostel")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")

	return cmd
}

func cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.In("bookings").Wrapf(err, "Invalid booking id")
			}

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cancelled, err := a.Bookings.CancelBooking(ctx, id)
			if err != nil {
				return oops.In("bookings").Wrapf(err, "Failed to cancel booking")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Booking %d is now %s\n", cancelled.ID, cancelled.Status)

			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <booking-id>",
		Short: "Show one booking from the local list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.In("bookings").Wrapf(err, "Invalid booking id")
			}

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			b, ok := a.Bookings.BookingByID(id)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No booking %d\n", id)
				return nil
			}

			printBooking(cmd, b)

			return nil
		},
	}
}

func printBooking(cmd *cobra.Command, b model.Booking) {
	fmt.Fprintf(cmd.OutOrStdout(), "#%d  hostel %d  %s -> %s  %d guest(s)  %.2f  %s\n",
		b.ID, b.HostelID, b.CheckIn, b.CheckOut, b.Guests, b.TotalPrice, b.Status)
}
