package main

import (
	"github.com/spf13/cobra"
	"github.com/vertex-lab/ssppr/pkg/database/redisdb"
	"github.com/vertex-lab/ssppr/pkg/graph"
	"github.com/vertex-lab/ssppr/pkg/utils/redisutils"
)

var importCmd = &cobra.Command{
	Use:   "import <edgelist> <name>",
	Short: "Store the graph of an edge-list file into Redis",
	Long:  "Store the graph of <edgelist> into Redis under <name>, replacing any graph with that name. Use it later with run --from-redis <name>.",
	Args:  cobra.ExactArgs(2),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().Bool("symmetric", false, "add the reverse of every edge read from the edge-list")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	config, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	log, logFile, err := config.Logger()
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	var opts []graph.Option
	if config.Symmetric {
		opts = append(opts, graph.WithSymmetric())
	}

	G, err := graph.LoadEdgeList(args[0], opts...)
	if err != nil {
		return err
	}
	log.Info("loaded %s: %d nodes, %d edges", args[0], G.NodeCount(), G.EdgeCount())

	client := redisutils.SetupProdClient(config.RedisAddress)
	defer client.Close()

	DB, err := redisdb.NewDatabase(client)
	if err != nil {
		return err
	}

	if err := DB.SaveGraph(cmd.Context(), args[1], G); err != nil {
		log.Error("failed to import %s: %v", args[1], err)
		return err
	}

	log.Info("imported %s as %s", args[0], args[1])
	return nil
}
