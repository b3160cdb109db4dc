package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/client"
)

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its public URL",
		Long:  "Uploads a listing or post image to the image host. The API key comes from IMGBB_API_KEY or imgbb_key in the config file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := client.NewImageHost(getImgBBKey())
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening image: %w", err)
			}
			defer func() { _ = f.Close() }()

			url, err := host.Upload(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(map[string]string{"url": url})
			}
			fmt.Println(url)
			return nil
		},
	}
}
