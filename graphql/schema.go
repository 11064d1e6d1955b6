package graphql

// Schema is the storefront read surface. Products resolve through the same
// derivation pipeline the page uses; extension is the escape hatch for
// init-registered custom resolvers.
const Schema = `
schema {
	query: Query
}

type Query {
	products(search: String, sort: String, recent: String, pageSize: Int): [Product!]!
	product(id: String!): Product
	cart(uid: String!): Cart!
	extension(name: String!, argsJson: String): String!
}

type Product {
	id: String!
	name: String!
	price: String!
	priceValue: Int!
	description: String!
	colors: [String!]!
	sizes: [String!]!
	justIn: Boolean!
	img: String!
}

type Cart {
	uid: String!
	totalQty: Int!
	items: [CartItem!]!
}

type CartItem {
	productId: String!
	name: String!
	price: Int!
	qty: Int!
}
`
