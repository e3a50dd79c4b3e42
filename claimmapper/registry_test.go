package claimmapper

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_HeaderProvider(t *testing.T) {
	p, err := Lookup(ProviderID)
	require.NoError(t, err)

	assert.Equal(t, "oidc-custom-42-mapper", p.ID)
	assert.Equal(t, "Custom 42 mapper", p.DisplayType)
	assert.Equal(t, DisplayCategory, p.DisplayCategory)
	assert.Equal(t, "Add custom header value to token.", p.HelpText)
	assert.Equal(t, ConfigProperties(), p.Properties)

	projector, err := NewProjector(ProviderID, nil)
	require.NoError(t, err)

	writes := projector.Project(HTTPHeaders(http.Header{"X-Id": {"abc"}}), MapperConfig{
		IdentifierHeader: "X-Id",
		ClaimName:        "custom_claim",
		IncludeIn:        AccessToken,
	})
	assert.Equal(t, []ClaimWrite{{Name: "custom_claim", Value: "abc", IncludeIn: AccessToken}}, writes)
}

func TestRegistry_Register(t *testing.T) {
	factory := func(Logger) Projector { return ProjectorFunc(Project) }

	tests := []struct {
		name     string
		provider Provider
		wantErr  error
		wantAny  bool
	}{
		{name: "valid", provider: Provider{ID: "a", Factory: factory}},
		{name: "empty id", provider: Provider{Factory: factory}, wantAny: true},
		{name: "nil factory", provider: Provider{ID: "b"}, wantAny: true},
		{name: "duplicate", provider: Provider{ID: "a", Factory: factory}, wantErr: ErrProviderAlreadyRegistered},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.provider)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, []string{"a"}, r.IDs())
}

func TestRegistry_LookupAndUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(HeaderProvider()))

	_, err := r.Lookup("missing")
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = r.New("missing", nil)
	assert.ErrorIs(t, err, ErrProviderNotFound)

	require.NoError(t, r.Unregister(ProviderID))
	assert.Empty(t, r.IDs())
	assert.ErrorIs(t, r.Unregister(ProviderID), ErrProviderNotFound)
}

func TestRegistry_PropertiesNotShared(t *testing.T) {
	r := NewRegistry()
	props := ConfigProperties()
	require.NoError(t, r.Register(Provider{ID: "a", Properties: props, Factory: HeaderProvider().Factory}))

	props[0].Label = "changed before lookup"
	p, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, ConfigProperties(), p.Properties)

	p.Properties[1].Label = "changed after lookup"
	p.Properties = append(p.Properties, ConfigProperty{Name: "extra"})

	again, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, ConfigProperties(), again.Properties)

	shared, err := Lookup(ProviderID)
	require.NoError(t, err)
	shared.Properties[1].Label = "changed"
	shared, err = Lookup(ProviderID)
	require.NoError(t, err)
	assert.Equal(t, "Identifier Header name", shared.Properties[1].Label)
}

func TestRegistry_IDsSorted(t *testing.T) {
	r := NewRegistry()
	factory := func(Logger) Projector { return ProjectorFunc(Project) }
	for _, id := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Register(Provider{ID: id, Factory: factory}))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.IDs())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(HeaderProvider()))

	headers := HTTPHeaders(http.Header{"X-Id": {"abc"}, "X-Token-Type": {"bearer"}})
	cfg := MapperConfig{
		IdentifierHeader: "X-Id",
		TokenTypeHeader:  "X-Token-Type",
		ClaimName:        "custom_claim",
		IncludeIn:        AccessToken,
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			projector, err := r.New(ProviderID, NoOpLogger{})
			if !assert.NoError(t, err) {
				return
			}
			writes := projector.Project(headers, cfg)
			assert.Len(t, writes, 2)
		}()
	}
	wg.Wait()
}
