package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/martijn/garage/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage client records",
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		client, err := services.ClientService.CreateClient(cmd.Context(), patch)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Println("Client created successfully")
		fmt.Printf("Client ID: %s\n", client.ID)
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show <client-id>",
	Short: "Show one client as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		client, err := services.ClientService.GetClient(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(client)
	},
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update <client-id>",
	Short: "Update the given fields of a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := patchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		if _, err := services.ClientService.UpdateClient(cmd.Context(), args[0], patch); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("Client '%s' updated successfully\n", args[0])
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("refusing to delete without confirmation; pass --yes")
			}
			if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Are you sure you want to delete client '%s'? (yes/no): ", clientID)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.ClientService.DeleteClient(cmd.Context(), clientID); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("Client '%s' deleted successfully\n", clientID)
		return nil
	},
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		clients, err := services.ClientService.ListClients(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CLIENT ID\tNAME\tVEHICLE\tQUOTE\tATTACHMENT\tCREATED AT")
		for _, client := range clients {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
				client.ID,
				client.FirstName,
				client.LastName,
				strings.TrimSpace(client.Vehicle.Make+" "+client.Vehicle.Model),
				client.Quote.Status,
				client.AttachmentName,
				client.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	var answer string
	fmt.Fscanln(in, &answer)
	return answer == "yes"
}

func addClientFlags(fs *pflag.FlagSet) {
	fs.String("last-name", "", "last name")
	fs.String("first-name", "", "first name")
	fs.String("email", "", "email address")
	fs.String("phone", "", "phone number")
	fs.String("address", "", "postal address")
	fs.String("make", "", "vehicle make")
	fs.String("model", "", "vehicle model")
	fs.String("plate", "", "vehicle registration plate")
	fs.Int("year", 0, "vehicle manufacture year")
	fs.Int("odometer", 0, "vehicle odometer in km")
	fs.String("inspection-date", "", "last technical inspection (YYYY-MM-DD)")
	fs.String("quote-number", "", "quote number")
	fs.String("quote-date", "", "quote date (YYYY-MM-DD)")
	fs.String("quote-amount", "", "quote total amount")
	fs.String("quote-work", "", "work described by the quote")
	fs.String("quote-status", "", "quote status: pending, accepted or rejected")
	fs.String("contact", "", "preferred contact: email, phone or sms")
	fs.String("payment", "", "preferred payment: card, check or cash")
}

// patchFromFlags builds a patch holding only the flags set on the command line.
func patchFromFlags(fs *pflag.FlagSet) (domain.ClientPatch, error) {
	var patch domain.ClientPatch

	patch.LastName = changedString(fs, "last-name")
	patch.FirstName = changedString(fs, "first-name")
	patch.Email = changedString(fs, "email")
	patch.Phone = changedString(fs, "phone")
	patch.PostalAddress = changedString(fs, "address")

	vehicle := domain.VehiclePatch{
		Make:              changedString(fs, "make"),
		Model:             changedString(fs, "model"),
		RegistrationPlate: changedString(fs, "plate"),
		ManufactureYear:   changedInt(fs, "year"),
		OdometerKm:        changedInt(fs, "odometer"),
	}
	if s := changedString(fs, "inspection-date"); s != nil {
		d, err := domain.ParseDate(*s)
		if err != nil {
			return patch, fmt.Errorf("--inspection-date: %w", err)
		}
		vehicle.LastInspectionDate = &d
	}
	if vehicle != (domain.VehiclePatch{}) {
		patch.Vehicle = &vehicle
	}

	quote := domain.QuotePatch{
		Number:          changedString(fs, "quote-number"),
		WorkDescription: changedString(fs, "quote-work"),
	}
	if s := changedString(fs, "quote-date"); s != nil {
		d, err := domain.ParseDate(*s)
		if err != nil {
			return patch, fmt.Errorf("--quote-date: %w", err)
		}
		quote.Date = &d
	}
	if s := changedString(fs, "quote-amount"); s != nil {
		amount, err := decimal.NewFromString(*s)
		if err != nil {
			return patch, fmt.Errorf("--quote-amount: %w", err)
		}
		quote.TotalAmount = &amount
	}
	if s := changedString(fs, "quote-status"); s != nil {
		status := domain.QuoteStatus(*s)
		quote.Status = &status
	}
	if quote != (domain.QuotePatch{}) {
		patch.Quote = &quote
	}

	var prefs domain.PreferencesPatch
	if s := changedString(fs, "contact"); s != nil {
		cm := domain.ContactMethod(*s)
		prefs.ContactMethod = &cm
	}
	if s := changedString(fs, "payment"); s != nil {
		pm := domain.PaymentMethod(*s)
		prefs.PaymentMethod = &pm
	}
	if prefs != (domain.PreferencesPatch{}) {
		patch.Preferences = &prefs
	}

	return patch, nil
}

func changedString(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetString(name)
	return &v
}

func changedInt(fs *pflag.FlagSet, name string) *int {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetInt(name)
	return &v
}

func init() {
	addClientFlags(clientsAddCmd.Flags())
	addClientFlags(clientsUpdateCmd.Flags())
	clientsDeleteCmd.Flags().Bool("yes", false, "delete without asking for confirmation")

	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsUpdateCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
	clientsCmd.AddCommand(clientsListCmd)
}
