package appointment

import (
	"strconv"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
)

// The two stores share no transaction. Every driver failure is
// re-wrapped here with enough context (store, step) for out-of-band
// reconciliation; raw driver errors never escape the use cases.

func storageErr(store, step string, err error) *httperr.BusinessError {
	return httperr.ErrStorage("storage_failure", "Storage operation failed.", err).
		WithDetail("store", store).
		WithDetail("step", step)
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
