package main

import (
	"os"

	"github.com/ReconfigureIO/asset-gateway/config"
	"github.com/ReconfigureIO/asset-gateway/routes"
	"github.com/ReconfigureIO/asset-gateway/service/assets"
	"github.com/ReconfigureIO/asset-gateway/service/storage"
	"github.com/ReconfigureIO/asset-gateway/service/storage/s3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	RootCmd = &cobra.Command{
		Use:   "asset-gateway",
		Short: "Brokers signed upload and download URLs for a storage bucket",
	}

	server string

	version string
)

func main() {
	RootCmd.PersistentFlags().StringVar(&server, "server", serverFromEnv(), "gateway address for client commands")
	RootCmd.AddCommand(commands...)

	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var commands = []*cobra.Command{
	// serve
	&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		Run: func(*cobra.Command, []string) {
			serveCmd()
		},
	},
	healthCommand,
	uploadCommand,
	downloadCommand,
}

func serveCmd() {
	conf, err := config.ParseEnvConfig()
	if err != nil {
		log.Fatal(err)
	}

	err = config.SetupLogging(version, conf)
	if err != nil {
		log.Fatal(err)
	}

	gw := assets.New(newProvider(conf.Reco.Storage))

	r := routes.NewEngine(conf.Reco.AllowedOrigins)
	routes.SetupRoutes(r, gw)

	log.WithField("port", conf.Port).Info("starting asset gateway")
	if err := r.Run(":" + conf.Port); err != nil {
		log.Fatal(err)
	}
}

// newProvider builds the storage provider exactly once. On failure the
// gateway still serves, answering 403 to every asset request.
func newProvider(conf s3.ServiceConfig) storage.Provider {
	provider, err := s3.New(conf)
	if err != nil {
		log.WithError(err).WithField("bucket", conf.Bucket).Error("storage unavailable, all asset requests will be forbidden")
		return nil
	}
	return provider
}

func exitWithErr(err interface{}) {
	log.Println(err)
	os.Exit(1)
}
