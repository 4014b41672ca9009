package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/bootstrap"
	"github.com/bucketlist/server/pkg/catalog"
	infrapubsub "github.com/bucketlist/server/pkg/infrastructure/pubsub"
	"github.com/bucketlist/server/pkg/types"
)

var seedPublish bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the embedded catalog to Firestore if the remote catalog is empty",
	Long: "Seeds directly by default. With --publish a seed request is sent to the " +
		"catalog seeder function instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap.NewService(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if seedPublish {
			e, err := infrapubsub.NewCloudEvent(infrapubsub.SourceCLI, shared.EventTypeCatalogSeedRequested, "", types.CatalogSeedRequest{
				Requester: os.Getenv("USER"),
			})
			if err != nil {
				return err
			}
			id, err := svc.Pub.PublishCloudEvent(cmd.Context(), infrapubsub.TopicFor(e.Type()), e)
			if err != nil {
				return fmt.Errorf("publish seed request: %w", err)
			}
			fmt.Fprintf(out, "Seed request published (message %s).\n", id)
			return nil
		}

		records, err := catalog.Seed()
		if err != nil {
			return err
		}
		res, err := catalog.NewSeeder(svc.DB, records, bootstrap.NewLogger("bucketlist-cli")).SeedIfEmpty(cmd.Context())
		if err != nil {
			return err
		}
		if res.AlreadySeeded {
			fmt.Fprintf(out, "Catalog for app %s already populated, nothing written.\n", svc.Config.AppID)
			return nil
		}
		fmt.Fprintf(out, "Wrote %d activities (%d already existed).\n", res.Written, res.Existing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedPublish, "publish", false, "Ask the catalog seeder function to seed via Pub/Sub")
}
