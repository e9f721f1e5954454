// The redisdb package stores graphs in Redis, so that a graph imported once can be
// loaded by later runs without parsing its edge-list again.
//
// A graph named "karate" is stored as the hash "graph:karate", holding its counts,
// and one list "graph:karate:adj:<u>" per non-dangling node u, holding its ordered out-neighbors.
package redisdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/ssppr/pkg/graph"
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/utils/redisutils"
)

const (
	KeyGraphs      string = "graphs"
	KeyVersion     string = "graphs:version"
	KeyGraphPrefix string = "graph:"
	KeyNodes       string = "nodes"
	KeyEdges       string = "edges"
	KeySymmetric   string = "symmetric"

	// the number of adjacency lists written or read in a single pipeline
	batchSize int = 10000
)

// Database stores and loads graphs with a Redis client.
type Database struct {
	client *redis.Client
}

// GraphFields are the fields of the graph hash in Redis. This struct is used for serialize and deserialize.
type GraphFields struct {
	Nodes     int  `redis:"nodes"`
	Edges     int  `redis:"edges"`
	Symmetric bool `redis:"symmetric"`

	// incremented on every save, so a replaced graph never has the version of its predecessor
	Version int64 `redis:"version"`
}

// NewDatabase() returns a Database using the client.
func NewDatabase(cl *redis.Client) (*Database, error) {
	if cl == nil {
		return nil, models.ErrNilClientPointer
	}
	return &Database{client: cl}, nil
}

// Validate() checks if DB and client are nil and returns the appropriate error
func (DB *Database) Validate() error {
	if DB == nil {
		return ErrNilDBPointer
	}

	if DB.client == nil {
		return models.ErrNilClientPointer
	}

	return nil
}

// SaveGraph() stores the graph under name, replacing any graph previously stored under it.
func (DB *Database) SaveGraph(ctx context.Context, name string, G *graph.Graph) error {
	if err := DB.Validate(); err != nil {
		return err
	}

	if err := G.Validate(); err != nil {
		return err
	}

	if err := DB.DeleteGraph(ctx, name); err != nil && !errors.Is(err, ErrGraphNotFound) {
		return err
	}

	n := G.NodeCount()
	for start := 0; start < n; start += batchSize {
		pipe := DB.client.Pipeline()
		for u := start; u < min(start+batchSize, n); u++ {
			neighbors := G.Neighbors(uint32(u))
			if len(neighbors) > 0 {
				pipe.RPush(ctx, KeyAdjacency(name, u), redisutils.FormatIDs(neighbors)...)
			}
		}

		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to save the adjacency of %s: %w", name, err)
		}
	}

	version, err := DB.client.Incr(ctx, KeyVersion).Result()
	if err != nil {
		return fmt.Errorf("failed to version the graph %s: %w", name, err)
	}

	// the hash is written last, so a graph is visible only when complete
	fields := GraphFields{Nodes: n, Edges: G.EdgeCount(), Symmetric: G.IsSymmetric(), Version: version}
	pipe := DB.client.TxPipeline()
	pipe.HSet(ctx, KeyGraph(name), fields)
	pipe.SAdd(ctx, KeyGraphs, name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save the graph %s: %w", name, err)
	}

	return nil
}

// Fields() returns the counts and version stored in the hash of the graph, or ErrGraphNotFound.
func (DB *Database) Fields(ctx context.Context, name string) (GraphFields, error) {
	if err := DB.Validate(); err != nil {
		return GraphFields{}, err
	}

	cmd := DB.client.HGetAll(ctx, KeyGraph(name))
	if cmd.Err() != nil {
		return GraphFields{}, cmd.Err()
	}

	// if an empty map is returned, it means the graph was not found
	if len(cmd.Val()) == 0 {
		return GraphFields{}, fmt.Errorf("%w: %s", ErrGraphNotFound, name)
	}

	var fields GraphFields
	if err := cmd.Scan(&fields); err != nil {
		return GraphFields{}, err
	}

	return fields, nil
}

// LoadGraph() returns the graph stored under name, or ErrGraphNotFound.
func (DB *Database) LoadGraph(ctx context.Context, name string) (*graph.Graph, error) {
	fields, err := DB.Fields(ctx, name)
	if err != nil {
		return nil, err
	}

	adj := make([][]uint32, fields.Nodes)
	for start := 0; start < fields.Nodes; start += batchSize {
		end := min(start+batchSize, fields.Nodes)

		pipe := DB.client.Pipeline()
		cmds := make([]*redis.StringSliceCmd, end-start)
		for u := start; u < end; u++ {
			cmds[u-start] = pipe.LRange(ctx, KeyAdjacency(name, u), 0, -1)
		}

		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to load the adjacency of %s: %w", name, err)
		}

		for i, cmd := range cmds {
			neighbors, err := redisutils.ParseIDs(cmd.Val())
			if err != nil {
				return nil, fmt.Errorf("node %d of %s: %w", start+i, name, err)
			}
			adj[start+i] = neighbors
		}
	}

	var opts []graph.Option
	if fields.Symmetric {
		opts = append(opts, graph.WithSymmetric())
	}

	G, err := graph.FromAdjacency(adj, opts...)
	if err != nil {
		return nil, err
	}

	if G.EdgeCount() != fields.Edges {
		return nil, fmt.Errorf("%w: %s has %d edges, but its hash declares %d", ErrCorruptedGraph, name, G.EdgeCount(), fields.Edges)
	}

	return G, nil
}

// DeleteGraph() removes the graph stored under name, or returns ErrGraphNotFound.
func (DB *Database) DeleteGraph(ctx context.Context, name string) error {
	fields, err := DB.Fields(ctx, name)
	if err != nil {
		return err
	}

	for start := 0; start < fields.Nodes; start += batchSize {
		end := min(start+batchSize, fields.Nodes)
		keys := make([]string, 0, end-start)
		for u := start; u < end; u++ {
			keys = append(keys, KeyAdjacency(name, u))
		}

		if err := DB.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete the adjacency of %s: %w", name, err)
		}
	}

	pipe := DB.client.TxPipeline()
	pipe.Del(ctx, KeyGraph(name))
	pipe.SRem(ctx, KeyGraphs, name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete the graph %s: %w", name, err)
	}

	return nil
}

// ContainsGraph() returns whether a graph is stored under name (ignores errors).
func (DB *Database) ContainsGraph(ctx context.Context, name string) bool {
	if DB.Validate() != nil {
		return false
	}

	isMember, err := DB.client.SIsMember(ctx, KeyGraphs, name).Result()
	return err == nil && isMember
}

// Graphs() returns the names of the stored graphs.
func (DB *Database) Graphs(ctx context.Context) ([]string, error) {
	if err := DB.Validate(); err != nil {
		return nil, err
	}

	return DB.client.SMembers(ctx, KeyGraphs).Result()
}

// KeyGraph() returns the Redis key of the hash of the named graph
func KeyGraph(name string) string {
	return KeyGraphPrefix + name
}

// KeyAdjacency() returns the Redis key of the out-neighbors of nodeID in the named graph
func KeyAdjacency(name string, nodeID interface{}) string {
	return fmt.Sprintf("%v%s:adj:%d", KeyGraphPrefix, name, nodeID)
}

//---------------------------------ERROR-CODES---------------------------------

var ErrNilDBPointer = errors.New("database pointer is nil")
var ErrGraphNotFound = errors.New("graph not found in the database")
var ErrCorruptedGraph = errors.New("stored graph is corrupted")
