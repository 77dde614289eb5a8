package persistence

import "github.com/paymentecho/backend/internal/domain/shared"

// sortColumns maps the wire-level sort field names (camelCase, as clients
// send them) to their columns. It doubles as the whitelist: only these
// names ever reach the SQL string.
var sortColumns = map[string]string{
	"id":            "id",
	"amount":        "amount",
	"currency":      "currency",
	"status":        "status",
	"name":          "name",
	"accountNumber": "account_number",
	"bankCode":      "bank_code",
	"email":         "email",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

// defaultSortColumn backs any sort field not present in the whitelist.
var defaultSortColumn = sortColumns[shared.DefaultSort().Field]

// orderExpr renders a SortSpec as a GORM order clause. GORM's Order()
// treats its argument as raw SQL, so the field must resolve through the
// whitelist; unknown fields fall back to the default column instead of
// being concatenated into the query.
func orderExpr(spec shared.SortSpec) string {
	col, ok := sortColumns[spec.Field]
	if !ok {
		col = defaultSortColumn
	}
	if spec.Desc {
		return col + " DESC"
	}
	return col + " ASC"
}
