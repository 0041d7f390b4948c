package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ReconfigureIO/asset-gateway/client"
	"github.com/spf13/cobra"
)

var downloadTimeout int

var healthCommand = &cobra.Command{
	Use:   "health",
	Short: "Check that a gateway is answering",
	Run: func(*cobra.Command, []string) {
		c := client.New(server)
		resp, err := c.HTTP.Get(c.Server + "/ping")
		if err != nil {
			exitWithErr(err)
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			exitWithErr(fmt.Sprintf("unhealthy: %s", resp.Status))
		}
	},
}

var uploadCommand = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a file and print its asset id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		contents, err := ioutil.ReadFile(args[0])
		if err != nil {
			exitWithErr(err)
		}
		id, err := client.New(server).Upload(context.Background(), contents)
		if err != nil {
			exitWithErr(err)
		}
		fmt.Println("Upload OK, asset-id: " + id)
	},
}

var downloadCommand = &cobra.Command{
	Use:   "download ASSET_ID",
	Short: "Download an asset into a file named after its id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		contents, err := client.New(server).Download(context.Background(), id, downloadTimeout)
		if err != nil {
			exitWithErr(err)
		}
		if err := ioutil.WriteFile(id, contents, 0644); err != nil {
			exitWithErr(err)
		}
		fmt.Println("Asset " + id + " content was saved to file")
	},
}

func init() {
	downloadCommand.Flags().IntVar(&downloadTimeout, "timeout", 0, "download URL lifetime in seconds (gateway default when 0)")
}

func serverFromEnv() string {
	if s := os.Getenv("UPLOAD_SERVER"); s != "" {
		return s
	}
	return client.DefaultServer
}
