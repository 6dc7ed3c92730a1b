package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "madiskarte.v1.MentorService"

const (
	MentorService_GetMarketTrends_FullMethodName              = "/" + ServiceName + "/GetMarketTrends"
	MentorService_CalculateProfitAdvice_FullMethodName        = "/" + ServiceName + "/CalculateProfitAdvice"
	MentorService_GetBusinessRegistrationGuide_FullMethodName = "/" + ServiceName + "/GetBusinessRegistrationGuide"
	MentorService_GeneratePlayStoreMetadata_FullMethodName    = "/" + ServiceName + "/GeneratePlayStoreMetadata"
	MentorService_StartMentorChat_FullMethodName              = "/" + ServiceName + "/StartMentorChat"
	MentorService_SendMentorMessage_FullMethodName            = "/" + ServiceName + "/SendMentorMessage"
	MentorService_GetChatHistory_FullMethodName               = "/" + ServiceName + "/GetChatHistory"
	MentorService_GetPublishingChecklist_FullMethodName       = "/" + ServiceName + "/GetPublishingChecklist"
	MentorService_EndMentorChat_FullMethodName                = "/" + ServiceName + "/EndMentorChat"
)

// MentorServiceServer is the server API for MentorService
type MentorServiceServer interface {
	GetMarketTrends(context.Context, *MarketTrendsRequest) (*MarketTrendsResponse, error)
	CalculateProfitAdvice(context.Context, *ProfitAdviceRequest) (*TextResponse, error)
	GetBusinessRegistrationGuide(context.Context, *RegistrationGuideRequest) (*TextResponse, error)
	GeneratePlayStoreMetadata(context.Context, *PlayStoreMetadataRequest) (*TextResponse, error)
	StartMentorChat(context.Context, *StartMentorChatRequest) (*StartMentorChatResponse, error)
	SendMentorMessage(context.Context, *SendMentorMessageRequest) (*SendMentorMessageResponse, error)
	GetChatHistory(context.Context, *GetChatHistoryRequest) (*GetChatHistoryResponse, error)
	GetPublishingChecklist(context.Context, *GetPublishingChecklistRequest) (*GetPublishingChecklistResponse, error)
	EndMentorChat(context.Context, *EndMentorChatRequest) (*EndMentorChatResponse, error)
}

// UnimplementedMentorServiceServer can be embedded to have forward compatible implementations
type UnimplementedMentorServiceServer struct{}

func (UnimplementedMentorServiceServer) GetMarketTrends(context.Context, *MarketTrendsRequest) (*MarketTrendsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMarketTrends not implemented")
}
func (UnimplementedMentorServiceServer) CalculateProfitAdvice(context.Context, *ProfitAdviceRequest) (*TextResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CalculateProfitAdvice not implemented")
}
func (UnimplementedMentorServiceServer) GetBusinessRegistrationGuide(context.Context, *RegistrationGuideRequest) (*TextResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBusinessRegistrationGuide not implemented")
}
func (UnimplementedMentorServiceServer) GeneratePlayStoreMetadata(context.Context, *PlayStoreMetadataRequest) (*TextResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GeneratePlayStoreMetadata not implemented")
}
func (UnimplementedMentorServiceServer) StartMentorChat(context.Context, *StartMentorChatRequest) (*StartMentorChatResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartMentorChat not implemented")
}
func (UnimplementedMentorServiceServer) SendMentorMessage(context.Context, *SendMentorMessageRequest) (*SendMentorMessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SendMentorMessage not implemented")
}
func (UnimplementedMentorServiceServer) GetChatHistory(context.Context, *GetChatHistoryRequest) (*GetChatHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetChatHistory not implemented")
}
func (UnimplementedMentorServiceServer) GetPublishingChecklist(context.Context, *GetPublishingChecklistRequest) (*GetPublishingChecklistResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPublishingChecklist not implemented")
}
func (UnimplementedMentorServiceServer) EndMentorChat(context.Context, *EndMentorChatRequest) (*EndMentorChatResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EndMentorChat not implemented")
}

// RegisterMentorServiceServer registers srv on s
func RegisterMentorServiceServer(s grpc.ServiceRegistrar, srv MentorServiceServer) {
	s.RegisterService(&MentorService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc's untyped handler shape
func unaryHandler[Req, Resp any](fullMethod string, call func(MentorServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MentorServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MentorServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MentorService_ServiceDesc is the grpc.ServiceDesc for MentorService
var MentorService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MentorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetMarketTrends",
			Handler:    unaryHandler(MentorService_GetMarketTrends_FullMethodName, MentorServiceServer.GetMarketTrends),
		},
		{
			MethodName: "CalculateProfitAdvice",
			Handler:    unaryHandler(MentorService_CalculateProfitAdvice_FullMethodName, MentorServiceServer.CalculateProfitAdvice),
		},
		{
			MethodName: "GetBusinessRegistrationGuide",
			Handler:    unaryHandler(MentorService_GetBusinessRegistrationGuide_FullMethodName, MentorServiceServer.GetBusinessRegistrationGuide),
		},
		{
			MethodName: "GeneratePlayStoreMetadata",
			Handler:    unaryHandler(MentorService_GeneratePlayStoreMetadata_FullMethodName, MentorServiceServer.GeneratePlayStoreMetadata),
		},
		{
			MethodName: "StartMentorChat",
			Handler:    unaryHandler(MentorService_StartMentorChat_FullMethodName, MentorServiceServer.StartMentorChat),
		},
		{
			MethodName: "SendMentorMessage",
			Handler:    unaryHandler(MentorService_SendMentorMessage_FullMethodName, MentorServiceServer.SendMentorMessage),
		},
		{
			MethodName: "GetChatHistory",
			Handler:    unaryHandler(MentorService_GetChatHistory_FullMethodName, MentorServiceServer.GetChatHistory),
		},
		{
			MethodName: "GetPublishingChecklist",
			Handler:    unaryHandler(MentorService_GetPublishingChecklist_FullMethodName, MentorServiceServer.GetPublishingChecklist),
		},
		{
			MethodName: "EndMentorChat",
			Handler:    unaryHandler(MentorService_EndMentorChat_FullMethodName, MentorServiceServer.EndMentorChat),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "madiskarte/v1/mentor",
}

// MentorServiceClient is the client API for MentorService
type MentorServiceClient interface {
	GetMarketTrends(ctx context.Context, in *MarketTrendsRequest, opts ...grpc.CallOption) (*MarketTrendsResponse, error)
	CalculateProfitAdvice(ctx context.Context, in *ProfitAdviceRequest, opts ...grpc.CallOption) (*TextResponse, error)
	GetBusinessRegistrationGuide(ctx context.Context, in *RegistrationGuideRequest, opts ...grpc.CallOption) (*TextResponse, error)
	GeneratePlayStoreMetadata(ctx context.Context, in *PlayStoreMetadataRequest, opts ...grpc.CallOption) (*TextResponse, error)
	StartMentorChat(ctx context.Context, in *StartMentorChatRequest, opts ...grpc.CallOption) (*StartMentorChatResponse, error)
	SendMentorMessage(ctx context.Context, in *SendMentorMessageRequest, opts ...grpc.CallOption) (*SendMentorMessageResponse, error)
	GetChatHistory(ctx context.Context, in *GetChatHistoryRequest, opts ...grpc.CallOption) (*GetChatHistoryResponse, error)
	GetPublishingChecklist(ctx context.Context, in *GetPublishingChecklistRequest, opts ...grpc.CallOption) (*GetPublishingChecklistResponse, error)
	EndMentorChat(ctx context.Context, in *EndMentorChatRequest, opts ...grpc.CallOption) (*EndMentorChatResponse, error)
}

type mentorServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMentorServiceClient returns a client that always speaks the JSON codec
func NewMentorServiceClient(cc grpc.ClientConnInterface) MentorServiceClient {
	return &mentorServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mentorServiceClient) GetMarketTrends(ctx context.Context, in *MarketTrendsRequest, opts ...grpc.CallOption) (*MarketTrendsResponse, error) {
	return invoke[MarketTrendsResponse](ctx, c.cc, MentorService_GetMarketTrends_FullMethodName, in, opts)
}

func (c *mentorServiceClient) CalculateProfitAdvice(ctx context.Context, in *ProfitAdviceRequest, opts ...grpc.CallOption) (*TextResponse, error) {
	return invoke[TextResponse](ctx, c.cc, MentorService_CalculateProfitAdvice_FullMethodName, in, opts)
}

func (c *mentorServiceClient) GetBusinessRegistrationGuide(ctx context.Context, in *RegistrationGuideRequest, opts ...grpc.CallOption) (*TextResponse, error) {
	return invoke[TextResponse](ctx, c.cc, MentorService_GetBusinessRegistrationGuide_FullMethodName, in, opts)
}

func (c *mentorServiceClient) GeneratePlayStoreMetadata(ctx context.Context, in *PlayStoreMetadataRequest, opts ...grpc.CallOption) (*TextResponse, error) {
	return invoke[TextResponse](ctx, c.cc, MentorService_GeneratePlayStoreMetadata_FullMethodName, in, opts)
}

func (c *mentorServiceClient) StartMentorChat(ctx context.Context, in *StartMentorChatRequest, opts ...grpc.CallOption) (*StartMentorChatResponse, error) {
	return invoke[StartMentorChatResponse](ctx, c.cc, MentorService_StartMentorChat_FullMethodName, in, opts)
}

func (c *mentorServiceClient) SendMentorMessage(ctx context.Context, in *SendMentorMessageRequest, opts ...grpc.CallOption) (*SendMentorMessageResponse, error) {
	return invoke[SendMentorMessageResponse](ctx, c.cc, MentorService_SendMentorMessage_FullMethodName, in, opts)
}

func (c *mentorServiceClient) GetChatHistory(ctx context.Context, in *GetChatHistoryRequest, opts ...grpc.CallOption) (*GetChatHistoryResponse, error) {
	return invoke[GetChatHistoryResponse](ctx, c.cc, MentorService_GetChatHistory_FullMethodName, in, opts)
}

func (c *mentorServiceClient) GetPublishingChecklist(ctx context.Context, in *GetPublishingChecklistRequest, opts ...grpc.CallOption) (*GetPublishingChecklistResponse, error) {
	return invoke[GetPublishingChecklistResponse](ctx, c.cc, MentorService_GetPublishingChecklist_FullMethodName, in, opts)
}

func (c *mentorServiceClient) EndMentorChat(ctx context.Context, in *EndMentorChatRequest, opts ...grpc.CallOption) (*EndMentorChatResponse, error) {
	return invoke[EndMentorChatResponse](ctx, c.cc, MentorService_EndMentorChat_FullMethodName, in, opts)
}
