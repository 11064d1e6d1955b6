package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/labstack/echo/v4"

	"storefront.GO/api"
	"storefront.GO/graphql"
	gqlmodels "storefront.GO/graphql/models"
	gqlregistry "storefront.GO/graphql/registry"
	entity "storefront.GO/model/entity"
	catalogService "storefront.GO/service/catalog"
	storefrontService "storefront.GO/service/storefront"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// RootResolver is the root for graphql-go. Reads go through the shared warm
// cache when present, the remote endpoints otherwise.
type RootResolver struct {
	Hub *storefrontService.Hub
}

// ProductsArgs matches the products query arguments.
type ProductsArgs struct {
	Search   *string
	Sort     *string
	Recent   *string
	PageSize *int32
}

func (r *RootResolver) products(ctx context.Context) ([]entity.Product, error) {
	if cached, ok := catalogService.Cached(); ok {
		return cached, nil
	}
	return r.Hub.CatalogClient.Fetch(ctx)
}

func (r *RootResolver) Products(ctx context.Context, args ProductsArgs) ([]gqlmodels.Product, error) {
	products, err := r.products(ctx)
	if err != nil {
		return nil, err
	}

	search, sortMode, recent := "", "", ""
	if args.Search != nil {
		search = *args.Search
	}
	if args.Sort != nil {
		sortMode = *args.Sort
	}
	if args.Recent != nil {
		recent = *args.Recent
	}
	out := storefrontService.Derive(products, 0, search,
		entity.ParseRecentFilter(recent), entity.ParseSortMode(sortMode))

	pageSize := 20
	if args.PageSize != nil && *args.PageSize > 0 {
		pageSize = int(*args.PageSize)
	}
	if pageSize < len(out) {
		out = out[:pageSize]
	}

	result := make([]gqlmodels.Product, 0, len(out))
	for _, p := range out {
		result = append(result, gqlmodels.FromProduct(p))
	}
	return result, nil
}

func (r *RootResolver) Product(ctx context.Context, args struct{ ID string }) (*gqlmodels.Product, error) {
	products, err := r.products(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == args.ID {
			out := gqlmodels.FromProduct(p)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *RootResolver) Cart(ctx context.Context, args struct{ UID string }) (gqlmodels.Cart, error) {
	items, err := r.Hub.CartClient.Fetch(ctx, args.UID)
	if err != nil {
		return gqlmodels.Cart{}, err
	}
	return gqlmodels.FromCart(args.UID, items), nil
}

// Extension dispatches to init-registered custom resolvers; the result is
// returned JSON-encoded.
func (r *RootResolver) Extension(ctx context.Context, args struct {
	Name     string
	ArgsJson *string
}) (string, error) {
	resolverArgs := map[string]interface{}{}
	if args.ArgsJson != nil && *args.ArgsJson != "" {
		if err := json.Unmarshal([]byte(*args.ArgsJson), &resolverArgs); err != nil {
			return "", err
		}
	}
	v, err := gqlregistry.Resolve(ctx, args.Name, resolverArgs)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// NewSchema parses the storefront schema against the root resolver.
func NewSchema(hub *storefrontService.Hub) *gql.Schema {
	return gql.MustParseSchema(graphql.Schema, &RootResolver{Hub: hub}, gql.UseFieldResolvers())
}

// RegisterGraphQLRoutes mounts /graphql on the root Echo instance.
func RegisterGraphQLRoutes(e *echo.Echo, hub *storefrontService.Hub) {
	schema := NewSchema(hub)
	e.POST("/graphql", echo.WrapHandler(&relay.Handler{Schema: schema}))
}
