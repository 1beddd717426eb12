package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aionhq/gate"
	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/pkg/log"
)

func main() {
	logrus.SetLevel(logrus.InfoLevel)

	err := os.Setenv("TZ", "") // Use UTC by default
	if err != nil {
		logrus.Fatal("failed to set env - ", err)
	}

	cmd := &cobra.Command{
		Use:     "gate",
		Short:   "Authentication gateway for the platform API",
		Version: gate.GetVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			return config.LoadConfig(cfgPath)
		},
	}

	cmd.PersistentFlags().StringP("config", "", "./gate.json", "Configuration file for gate")

	cmd.AddCommand(addServerCommand())
	cmd.AddCommand(addMigrateCommand())

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
