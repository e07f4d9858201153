package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public paths: signed stock-level check, read-only GraphQL, version
	return []string{"/stock-level", "/graphql", "/playground", "/version"}
}

// Permission resources gating the mutating API groups. Token-auth callers
// need the matching ACL resource; basic/key auth implies full access.
const (
	ResourceStockManage      = "stock/manage"
	ResourceOrdersManage     = "orders/manage"
	ResourcePurchasingManage = "purchasing/manage"
)
