package http

const (
	TransactionIDParam = "id"

	PageQueryParam = "page"
	SizeQueryParam = "size"
)
