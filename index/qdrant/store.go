package qdrant

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strconv"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/index"
)

// Store owns all Qdrant operations for one collection.
type Store struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
	apiKey      string
	efSearch    uint64
	logger      *slog.Logger
}

var _ index.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithEfSearch sets the HNSW candidate list size sent with queries.
// CreateOrUpdateIndex overrides it with the schema's value.
func WithEfSearch(ef int) Option {
	return func(s *Store) {
		if ef > 0 {
			s.efSearch = uint64(ef)
		}
	}
}

// New connects to the Qdrant gRPC endpoint in config and binds to config.IndexName.
func New(config *index.Config, opts ...Option) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Backend != index.BackendQdrant {
		return nil, fmt.Errorf("qdrant: %w: %q", index.ErrUnknownBackend, config.Backend)
	}

	conn, err := grpc.NewClient(config.Endpoint, grpc.WithTransportCredentials(transportCredentials(config)))
	if err != nil {
		return nil, fmt.Errorf("qdrant: dial %s: %w", config.Endpoint, err)
	}
	s := newStore(pb.NewPointsClient(conn), pb.NewCollectionsClient(conn), config.IndexName, config.APIKey, opts...)
	s.conn = conn
	return s, nil
}

// transportCredentials returns TLS credentials when TLS is requested or an API
// key is configured. The key is never sent over a plaintext connection.
func transportCredentials(config *index.Config) credentials.TransportCredentials {
	if config.TLS || config.APIKey != "" {
		return credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	return insecure.NewCredentials()
}

func newStore(points pb.PointsClient, collections pb.CollectionsClient, collection, apiKey string, opts ...Option) *Store {
	s := &Store{
		points:      points,
		collections: collections,
		collection:  collection,
		apiKey:      apiKey,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "qdrant", "collection", collection)
	return s
}

// Close closes the underlying gRPC connection.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *Store) withAuth(ctx context.Context) context.Context {
	if s.apiKey == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "api-key", s.apiKey)
}

// CreateOrUpdateIndex converges the collection to schema. A missing collection
// is created; one with a different vector size or metric is dropped and
// recreated; otherwise only the HNSW parameters are updated.
func (s *Store) CreateOrUpdateIndex(ctx context.Context, schema *index.Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if schema.Name != s.collection {
		return fmt.Errorf("%w: schema %q, store %q", index.ErrIndexMismatch, schema.Name, s.collection)
	}
	algo, _ := schema.Algorithm()
	distance, err := toDistance(algo.HNSW.Metric)
	if err != nil {
		return err
	}
	size := uint64(schema.Dimensions())
	hnsw := toHNSWConfig(algo.HNSW)
	s.efSearch = uint64(algo.HNSW.EfSearch)

	ctx = s.withAuth(ctx)
	exists, err := s.exists(ctx)
	if err != nil {
		return err
	}

	if exists {
		info, err := s.collections.Get(ctx, &pb.GetCollectionInfoRequest{CollectionName: s.collection})
		if err != nil {
			return &index.ServiceError{Op: "get collection", Message: err.Error()}
		}
		params := info.GetResult().GetConfig().GetParams().GetVectorsConfig().GetParams()
		if params.GetSize() == size && params.GetDistance() == distance {
			if _, err := s.collections.Update(ctx, &pb.UpdateCollection{
				CollectionName: s.collection,
				HnswConfig:     hnsw,
			}); err != nil {
				return &index.ServiceError{Op: "update collection", Message: err.Error()}
			}
			s.logger.Info("updated collection", "size", size)
			return nil
		}

		s.logger.Warn("recreating collection with new vector parameters",
			"old_size", params.GetSize(), "new_size", size,
			"old_distance", params.GetDistance().String(), "new_distance", distance.String())
		if _, err := s.collections.Delete(ctx, &pb.DeleteCollection{CollectionName: s.collection}); err != nil {
			return &index.ServiceError{Op: "delete collection", Message: err.Error()}
		}
	}

	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		HnswConfig:     hnsw,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     size,
					Distance: distance,
				},
			},
		},
	})
	if err != nil {
		return &index.ServiceError{Op: "create collection", Message: err.Error()}
	}
	s.logger.Info("created collection", "size", size)
	return nil
}

func (s *Store) exists(ctx context.Context) (bool, error) {
	list, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return false, &index.ServiceError{Op: "list collections", Message: err.Error()}
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == s.collection {
			return true, nil
		}
	}
	return false, nil
}

// UploadDocuments upserts docs as points and waits for the write to apply.
// Qdrant applies a batch atomically, so a nil error means every document succeeded.
func (s *Store) UploadDocuments(ctx context.Context, docs []core.Document) (*index.UploadResult, error) {
	if len(docs) == 0 {
		return &index.UploadResult{}, nil
	}

	points := make([]*pb.PointStruct, len(docs))
	for i, d := range docs {
		points[i] = &pb.PointStruct{
			Id: pointID(d.ID),
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: d.Vector},
				},
			},
			Payload: map[string]*pb.Value{
				index.FieldID:       {Kind: &pb.Value_StringValue{StringValue: d.ID}},
				index.FieldJSONData: {Kind: &pb.Value_StringValue{StringValue: d.JSONData}},
			},
		}
	}

	wait := true
	_, err := s.points.Upsert(s.withAuth(ctx), &pb.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return nil, &index.ServiceError{Op: "upload", Message: err.Error()}
	}
	s.logger.Debug("upserted points", "count", len(points))
	return &index.UploadResult{Succeeded: len(docs)}, nil
}

// SearchVector performs k-NN similarity search.
func (s *Store) SearchVector(ctx context.Context, vector []float32, k int) ([]core.SearchHit, error) {
	if k < 1 {
		return nil, nil
	}
	req := &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	}
	if s.efSearch > 0 {
		ef := s.efSearch
		req.Params = &pb.SearchParams{HnswEf: &ef}
	}

	resp, err := s.points.Search(s.withAuth(ctx), req)
	if err != nil {
		return nil, &index.ServiceError{Op: "search", Message: err.Error()}
	}

	hits := make([]core.SearchHit, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		payload := r.GetPayload()
		id := payload[index.FieldID].GetStringValue()
		if id == "" {
			id = strconv.FormatUint(r.GetId().GetNum(), 10)
		}
		hits[i] = core.SearchHit{
			ID:       id,
			Score:    float64(r.GetScore()),
			JSONData: payload[index.FieldJSONData].GetStringValue(),
		}
	}
	return hits, nil
}

// pointID uses numeric document ids directly and hashes anything else.
func pointID(id string) *pb.PointId {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		n = uint64(core.IDFromContent(id))
	}
	return &pb.PointId{PointIdOptions: &pb.PointId_Num{Num: n}}
}

func toDistance(m index.Metric) (pb.Distance, error) {
	switch m {
	case index.MetricCosine:
		return pb.Distance_Cosine, nil
	case index.MetricEuclidean:
		return pb.Distance_Euclid, nil
	case index.MetricDotProduct:
		return pb.Distance_Dot, nil
	default:
		return pb.Distance_UnknownDistance, fmt.Errorf("%w: unsupported metric %q", index.ErrInvalidSchema, m)
	}
}

func toHNSWConfig(p index.HNSWParameters) *pb.HnswConfigDiff {
	m := uint64(p.M)
	ef := uint64(p.EfConstruction)
	return &pb.HnswConfigDiff{M: &m, EfConstruct: &ef}
}
