package console

import (
	"errors"
	"fmt"

	"github.com/georgemunganga/copydesk/internal/modules/catalog"
)

// MessageFor turns any command failure into the single line shown in the error
// banner.
func MessageFor(err error) string {
	var (
		vErr    *catalog.ValidationError
		httpErr *catalog.HTTPError
		netErr  *catalog.NetworkError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &vErr):
		if vErr.Field == "name" {
			return "Please provide a product name first."
		}
		return fmt.Sprintf("Invalid %s: %s.", vErr.Field, vErr.Message)
	case errors.Is(err, catalog.ErrGenerationUnavailable):
		return "The generation backend is unavailable: the API has no writer credential configured. Write the description manually or try again later."
	case errors.As(err, &httpErr):
		return fmt.Sprintf("Failed to %s (%d): %s", httpErr.Op, httpErr.Status, httpErr.Detail)
	case errors.As(err, &netErr):
		return fmt.Sprintf("Failed to %s: the product API could not be reached.", netErr.Op)
	default:
		return "Unexpected error: " + err.Error()
	}
}
