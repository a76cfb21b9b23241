package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"threatingest/internal/threat"
)

const (
	jsonCodecName     = "json"
	ingestServiceName = "threatingest.v1.Ingest"
	ingestMethod      = "/" + ingestServiceName + "/Ingest"
)

var registerCodecOnce sync.Once

type jsonCodec struct{}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// EnsureJSONCodec registers the JSON codec the Ingest service speaks.
func EnsureJSONCodec() {
	registerCodecOnce.Do(func() {
		encoding.RegisterCodec(jsonCodec{})
	})
}

// IngestRequest names the object to process.
type IngestRequest struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// IngestResponse carries the number of indicators written.
type IngestResponse struct {
	Processed int `json:"processed"`
}

type ingestServer interface {
	Ingest(context.Context, *IngestRequest) (*IngestResponse, error)
}

// RegisterIngestServer registers the Ingest service on registrar.
func RegisterIngestServer(registrar grpc.ServiceRegistrar, srv ingestServer) {
	registrar.RegisterService(&ingestServiceDesc, srv)
}

type ingestService struct {
	srv *Server
}

func (i *ingestService) Ingest(ctx context.Context, req *IngestRequest) (*IngestResponse, error) {
	if req == nil || req.Bucket == "" || req.Key == "" {
		return nil, status.Error(codes.InvalidArgument, "bucket and key are required")
	}

	processed, err := i.srv.handler.Ingest(ctx, threat.ObjectRef{Bucket: req.Bucket, Key: req.Key})
	if err != nil {
		if errors.Is(err, threat.ErrDecode) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &IngestResponse{Processed: processed}, nil
}

var ingestServiceDesc = grpc.ServiceDesc{
	ServiceName: ingestServiceName,
	HandlerType: (*ingestServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ingest", Handler: ingestHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func ingestHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IngestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ingestServer).Ingest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ingestMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ingestServer).Ingest(ctx, req.(*IngestRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// IngestClient calls the Ingest service over a client connection.
type IngestClient struct {
	cc grpc.ClientConnInterface
}

func NewIngestClient(cc grpc.ClientConnInterface) *IngestClient {
	EnsureJSONCodec()
	return &IngestClient{cc: cc}
}

func (c *IngestClient) Ingest(ctx context.Context, req *IngestRequest, opts ...grpc.CallOption) (*IngestResponse, error) {
	out := new(IngestResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsonCodecName)}, opts...)
	if err := c.cc.Invoke(ctx, ingestMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
