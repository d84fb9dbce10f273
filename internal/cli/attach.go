package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach <client-id> <file>",
	Short: "Attach a document to a client",
	Long:  "Attach a scanned document (JPEG, PNG or PDF) to a client, replacing the previous one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, path := args[0], args[1]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		mediaType, _ := cmd.Flags().GetString("type")
		if mediaType == "" {
			mediaType = mime.TypeByExtension(filepath.Ext(path))
		}
		if mediaType == "" {
			return fmt.Errorf("cannot tell the media type of %s; pass --type", path)
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		storedName, err := services.AttachmentService.Attach(cmd.Context(), clientID, data, mediaType, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("failed to attach %s: %w", path, err)
		}

		fmt.Printf("Attached %s to client '%s' as %s\n", filepath.Base(path), clientID, storedName)
		return nil
	},
}

func init() {
	attachCmd.Flags().String("type", "", "media type of the file (default: guessed from the extension)")
	rootCmd.AddCommand(attachCmd)
}
