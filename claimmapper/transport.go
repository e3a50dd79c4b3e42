package claimmapper

import (
	"context"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type tokensKey struct{}

// NewContext returns a copy of ctx carrying tokens
func NewContext(ctx context.Context, tokens *TokenSet) context.Context {
	return context.WithValue(ctx, tokensKey{}, tokens)
}

// TokensFromContext returns the TokenSet stored by the mapper, if any
func TokensFromContext(ctx context.Context) (*TokenSet, bool) {
	tokens, ok := ctx.Value(tokensKey{}).(*TokenSet)
	return tokens, ok && tokens != nil
}

// UnaryServerInterceptor creates a gRPC unary server interceptor
func (m *Mapper) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if m.skip(info.FullMethod) {
			return handler(ctx, req)
		}

		return handler(m.projectIncomingMetadata(ctx), req)
	}
}

// StreamServerInterceptor creates a gRPC stream server interceptor
func (m *Mapper) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if m.skip(info.FullMethod) {
			return handler(srv, ss)
		}

		wrappedStream := &wrappedServerStream{
			ServerStream: ss,
			ctx:          m.projectIncomingMetadata(ss.Context()),
		}

		return handler(srv, wrappedStream)
	}
}

func (m *Mapper) projectIncomingMetadata(ctx context.Context) context.Context {
	md, _ := metadata.FromIncomingContext(ctx)
	tokens := m.Tokens(MetadataHeaders(md))
	return NewContext(ctx, tokens)
}

// wrappedServerStream wraps a grpc.ServerStream to provide custom context
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// HeaderMatcher creates a header matcher for grpc-gateway that forwards the
// configured headers as metadata under their lower-cased names
func (m *Mapper) HeaderMatcher() func(string) (string, bool) {
	forwarded := make(map[string]string)
	for _, name := range []string{m.config.IdentifierHeader, m.config.TokenTypeHeader} {
		if name != "" {
			key := strings.ToLower(name)
			forwarded[key] = key
		}
	}

	return func(key string) (string, bool) {
		if mdKey, exists := forwarded[strings.ToLower(key)]; exists {
			return mdKey, true
		}
		return runtime.DefaultHeaderMatcher(key)
	}
}

// CreateGatewayMux creates a new gRPC gateway ServeMux with header forwarding
func CreateGatewayMux(mapper *Mapper, opts ...runtime.ServeMuxOption) *runtime.ServeMux {
	allOpts := []runtime.ServeMuxOption{
		runtime.WithIncomingHeaderMatcher(mapper.HeaderMatcher()),
	}
	allOpts = append(allOpts, opts...)

	return runtime.NewServeMux(allOpts...)
}

// Handler wraps next with claim projection from the request headers
func (m *Mapper) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		tokens := m.Tokens(HTTPHeaders(r.Header))
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), tokens)))
	})
}
