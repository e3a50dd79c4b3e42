package claimmapper

// Package claimmapper projects inbound request headers into token claims.
//
// An identity provider configures a mapper with two header names (an
// identifier header and a token type header), a destination claim name and
// the set of issued tokens that should carry the claim. On every token
// issuance the mapper reads the first value of each configured header and
// emits one ClaimWrite per header found.
//
// # Basic Usage
//
//	writes := claimmapper.Project(claimmapper.HTTPHeaders(r.Header), claimmapper.MapperConfig{
//		IdentifierHeader: "X-Id",
//		TokenTypeHeader:  "X-Token-Type",
//		ClaimName:        "custom_claim",
//		IncludeIn:        claimmapper.AccessToken,
//	})
//
//	tokens := claimmapper.NewTokenSet()
//	claimmapper.Apply(tokens, writes, claimmapper.NestedClaimMerger{})
//
// Both headers map to the same claim name, so when both are present the
// token type value is applied last and wins.
//
// # Transports
//
// A Mapper binds a configuration to gRPC interceptors, a grpc-gateway
// header matcher and net/http middleware:
//
//	mapper := claimmapper.NewBuilder().
//		IdentifierHeader("X-Id").
//		TokenTypeHeader("X-Token-Type").
//		ClaimName("custom_claim").
//		IncludeIn(claimmapper.AccessToken | claimmapper.IDToken).
//		Build()
//
//	grpcServer := grpc.NewServer(
//		grpc.UnaryInterceptor(mapper.UnaryServerInterceptor()),
//		grpc.StreamInterceptor(mapper.StreamServerInterceptor()),
//	)
//
// # Providers
//
// Hosts look mappers up by provider ID through a Registry. The header
// mapper registers itself in DefaultRegistry under ProviderID.
