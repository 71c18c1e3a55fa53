package domain

import "errors"

var (
	// ErrCatalogNotFound indicates the service/question catalog could not be loaded.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrDraftNotFound is returned when an order draft has not been started.
	ErrDraftNotFound = errors.New("order draft not found")
	// ErrServiceNotFound indicates a selected service ID is not in the catalog.
	ErrServiceNotFound = errors.New("service not found")
	// ErrNoServicesSelected is returned on submission with an empty selection.
	ErrNoServicesSelected = errors.New("no services selected")
	// ErrInvalidResponse indicates a response without a question ID.
	ErrInvalidResponse = errors.New("response is missing a question id")
)
