package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vertex-lab/ssppr/pkg/database/redisdb"
	"github.com/vertex-lab/ssppr/pkg/graph"
	"github.com/vertex-lab/ssppr/pkg/metrics"
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/ppr"
	"github.com/vertex-lab/ssppr/pkg/random"
	"github.com/vertex-lab/ssppr/pkg/store/redistore"
	"github.com/vertex-lab/ssppr/pkg/utils/logger"
	"github.com/vertex-lab/ssppr/pkg/utils/redisutils"
)

var runCmd = &cobra.Command{
	Use:   "run <graph> <source> <alpha> <method>",
	Short: "Estimate the personalized pagerank of a source node",
	Long: "Estimate the personalized pagerank of <source> on <graph> (an edge-list file, or the name of a graph in Redis with --from-redis).\n" +
		"Supported methods: forwardpush (alias push), rw, fora_skeleton, fora, speedppr, ppw.",
	Args: cobra.ExactArgs(4),
	RunE: runEstimate,
}

func init() {
	addRunFlags(runCmd.Flags())
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.Float64("eps", 0, "relative error of fora and speedppr (default 0.1)")
	flags.Float64("delta", 0, "minimum ppr of interest of fora and speedppr (default 1/n)")
	flags.Float64("pf", 0, "failure probability of fora and speedppr (default 1/n)")
	flags.Float64("rmax", 0, "residual threshold of forwardpush and fora_skeleton (default 1e-4)")
	flags.Int("rw-num", 0, "number of walks of rw and fora_skeleton (default 1000)")
	flags.Int("pi-num", 0, "number of power iterations of ppw (default 10)")
	flags.Int("sample-size", 0, "number of samples of ppw (default 100)")
	flags.Int("batch-size", 0, "number of batches of ppw (default 10)")
	flags.Uint64("seed", 0, "seed of the random generator, 0 means time-seeded")

	flags.String("output", OutputDisplay, "what to do with the result: display, save or none")
	flags.String("save-path", "", "file where the result is saved with --output save")
	flags.Int("top", 0, "only display the top k nodes, 0 means every node")
	flags.String("report", "", "file where a TOML report of the run is written")
	flags.Bool("symmetric", false, "add the reverse of every edge read from the edge-list")
	flags.Bool("from-redis", false, "load the graph from Redis instead of an edge-list file")
	flags.String("cache", CacheNone, "where results are cached: none or redis")
	flags.String("metrics", "", "file where the prometheus metrics of the run are written")
}

// Run groups the inputs of one estimation.
type Run struct {
	Graph     *graph.Graph
	GraphName string
	GraphID   string
	Source    uint32
	Method    ppr.Method
	Params    ppr.Params
	Seed      uint64
}

type Result struct {
	Vector  models.Vector
	Cached  bool
	Elapsed time.Duration
}

// CacheKey() returns the key of the result of the run, and whether the result can be cached.
// Randomized methods are cacheable only with a fixed seed, and a run without GraphID is never cacheable.
func (r Run) CacheKey() (string, bool) {
	if r.GraphID == "" {
		return "", false
	}

	key := r.Params.Key(r.GraphID, r.Source, r.Method)
	if r.Method.IsDeterministic() {
		return key, true
	}

	if r.Seed == 0 {
		return "", false
	}
	return key + ":seed=" + strconv.FormatUint(r.Seed, 10), true
}

// Execute() estimates the ppr of the run. If store is not nil, a cached result is returned
// when present, and a new result is cached.
func (r Run) Execute(ctx context.Context, store models.ResultStore, log *logger.Aggregate) (Result, error) {
	start := time.Now()
	key, cacheable := r.CacheKey()
	useCache := cacheable && store != nil

	if useCache && store.Contains(ctx, key) {
		vector, err := store.Load(ctx, key)
		if err == nil {
			return Result{Vector: vector, Cached: true, Elapsed: time.Since(start)}, nil
		}
		log.Warn("failed to load the cached result %s: %v", key, err)
	}

	var rng models.Rand
	if r.Seed != 0 {
		rng = random.NewGenerator(r.Seed)
	}

	vector, err := ppr.Estimate(r.Graph, r.Source, string(r.Method), r.Params, rng)
	if err != nil {
		return Result{}, err
	}

	if useCache {
		if err := store.Save(ctx, key, vector); err != nil {
			log.Warn("failed to cache the result %s: %v", key, err)
		}
	}

	return Result{Vector: vector, Elapsed: time.Since(start)}, nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
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

	if config.Metrics != "" {
		defer func() {
			if err := metrics.WriteTextfile(config.Metrics); err != nil {
				log.Warn("failed to write the metrics: %v", err)
			}
		}()
	}

	source, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: source %q is not a nodeID", models.ErrInvalidArgument, args[1])
	}

	config.Alpha, err = strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("%w: alpha %q is not a number", models.ErrInvalidArgument, args[2])
	}

	method, err := ppr.ParseMethod(args[3])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var client *redis.Client
	if config.FromRedis || config.Cache == CacheRedis {
		client = redisutils.SetupProdClient(config.RedisAddress)
		defer client.Close()
	}

	G, name, ID, err := loadGraph(ctx, config, client, args[0])
	if err != nil {
		return err
	}
	log.Info("loaded graph %s: %d nodes, %d edges", name, G.NodeCount(), G.EdgeCount())

	store, err := newResultStore(config, client)
	if err != nil {
		return err
	}

	run := Run{
		Graph:     G,
		GraphName: name,
		GraphID:   ID,
		Source:    uint32(source),
		Method:    method,
		Params:    config.Params.WithDefaults(G.NodeCount()),
		Seed:      config.Seed,
	}

	result, err := run.Execute(ctx, store, log)
	if err != nil {
		log.Error("%s from %d failed: %v", method, source, err)
		return err
	}
	log.Info("%s from %d done in %v (cached: %t, sum: %.6f)", method, source, result.Elapsed, result.Cached, ppr.Sum(result.Vector))

	switch config.Output {
	case OutputDisplay:
		if err := Display(os.Stdout, result.Vector, config.Top); err != nil {
			return err
		}

	case OutputSave:
		if err := SaveVector(config.SavePath, result.Vector); err != nil {
			return err
		}
		log.Info("saved the result to %s", config.SavePath)
	}

	if config.Report != "" {
		if err := WriteReport(config.Report, NewReport(run, result, config.Top)); err != nil {
			return err
		}
		log.Info("wrote the report to %s", config.Report)
	}

	return nil
}

/*
loadGraph() returns the graph, its name and its ID, reading it from Redis or from the edge-list at path.

The ID identifies the content of the graph in the cache keys:
  - edge-lists: "edgelist=<absolute path>;size=<bytes>;mtime=<unix nano>;symmetric=<bool>"
  - Redis: "redis=<name>;version=<version>;symmetric=<bool>"
*/
func loadGraph(ctx context.Context, config *Config, client *redis.Client, path string) (G *graph.Graph, name, ID string, err error) {
	if config.FromRedis {
		DB, err := redisdb.NewDatabase(client)
		if err != nil {
			return nil, "", "", err
		}

		fields, err := DB.Fields(ctx, path)
		if err != nil {
			return nil, "", "", err
		}

		G, err := DB.LoadGraph(ctx, path)
		if err != nil {
			return nil, "", "", err
		}
		return G, path, RedisGraphID(path, fields), nil
	}

	ID, err = EdgeListID(path, config.Symmetric)
	if err != nil {
		return nil, "", "", err
	}

	var opts []graph.Option
	if config.Symmetric {
		opts = append(opts, graph.WithSymmetric())
	}

	G, err = graph.LoadEdgeList(path, opts...)
	if err != nil {
		return nil, "", "", err
	}
	return G, GraphName(path), ID, nil
}

// EdgeListID() returns the ID of the graph read from the edge-list at path.
func EdgeListID(path string, symmetric bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("edgelist=%s;size=%d;mtime=%d;symmetric=%t", abs, info.Size(), info.ModTime().UnixNano(), symmetric), nil
}

// RedisGraphID() returns the ID of the graph stored in Redis under name.
func RedisGraphID(name string, fields redisdb.GraphFields) string {
	return fmt.Sprintf("redis=%s;version=%d;symmetric=%t", name, fields.Version, fields.Symmetric)
}

// GraphName() returns the name of the graph stored at path, which is the file name without extension.
func GraphName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// newResultStore() returns the result store chosen in the config, or nil if results are not cached.
func newResultStore(config *Config, client *redis.Client) (models.ResultStore, error) {
	switch config.Cache {
	case CacheRedis:
		return redistore.NewResultStore(client, config.CacheTTL)

	default:
		return nil, nil
	}
}
