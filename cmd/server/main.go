package main

import (
    "context"
    "fmt"
    "os"

    "github.com/spf13/cobra"
    "github.com/spf13/viper"
)

// v carries flags, environment and the optional config file for every command.
var v = viper.New()

var rootCmd = &cobra.Command{
    Use:           "server",
    Short:         "PIN issuance and scan result service",
    Long:          "Issues short-lived PINs, accepts scan uploads from the agent, scores them and serves results to requesters.",
    SilenceUsage:  true,
    SilenceErrors: true,
    RunE:          serve,
}

func init() {
    rootCmd.PersistentFlags().StringP("config", "c", "", "config file (yaml, optional)")
    rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
    rootCmd.Flags().String("listen", "", "listen address (default :8080)")

    _ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
    _ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
    _ = v.BindPFlag("listen_addr", rootCmd.Flags().Lookup("listen"))

    rootCmd.AddCommand(newMigrateCommand())
}

func main() {
    if err := rootCmd.ExecuteContext(context.Background()); err != nil {
        fmt.Fprintf(os.Stderr, "Error: %v\n", err)
        os.Exit(1)
    }
}
