package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"physiq/internal/imagestore"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <dir>",
	Short: "Upload diagram images from a local directory to S3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, _ := cmd.Flags().GetString("s3-bucket")
		prefix, _ := cmd.Flags().GetString("s3-prefix")
		region, _ := cmd.Flags().GetString("aws-region")
		if bucket == "" {
			return fmt.Errorf("--s3-bucket is required")
		}

		ctx := cmd.Context()
		st, err := imagestore.NewS3Store(ctx, bucket, prefix, region)
		if err != nil {
			return fmt.Errorf("open S3: %w", err)
		}

		refs, err := st.UploadDir(ctx, args[0])
		if err != nil {
			return fmt.Errorf("upload: %w", err)
		}

		for _, ref := range refs {
			fmt.Println(ref.URL)
		}
		fmt.Printf("Uploaded %d images to %s\n", len(refs), st.Source())
		return nil
	},
}

func init() {
	uploadCmd.Flags().String("s3-bucket", "", "Destination S3 bucket")
	uploadCmd.Flags().String("s3-prefix", "", "Key prefix for uploaded images")
	uploadCmd.Flags().String("aws-region", "", "AWS region (defaults to the SDK chain)")
}
